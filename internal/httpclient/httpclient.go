package httpclient

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// Default returns an HTTP client with timeouts so that dead upstreams don't
// hang a probe or batch run forever.
func Default() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			ResponseHeaderTimeout: 15 * time.Second,
			ExpectContinueTimeout: 5 * time.Second,
			IdleConnTimeout:       30 * time.Second,
		},
	}
}

// ForStreaming returns a client with no overall timeout (a throughput probe
// may legitimately run for the full benchmark window) but a
// ResponseHeaderTimeout so a dead upstream still fails fast.
func ForStreaming() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			ResponseHeaderTimeout: 15 * time.Second,
			ExpectContinueTimeout: 5 * time.Second,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// ForProbe returns a client tuned for the stream-validation pipeline: a
// fixed connect budget (connectTimeout) separate from the overall request
// budget (total), via a custom net.Dialer rather than one blanket Timeout,
// so a slow TCP handshake and a slow body don't share one clock. HTTP/2 is
// configured explicitly since several providers serve manifests over h2
// and the zero-value Transport only negotiates it opportunistically.
func ForProbe(total, connectTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: total,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       30 * time.Second,
	}
	_ = http2.ConfigureTransport(transport)
	return &http.Client{
		Timeout:   total,
		Transport: transport,
	}
}

// HostLimiter throttles outbound requests per host, independent of
// HostSemaphore's concurrency cap: a limiter bounds rate (requests/sec),
// the semaphore bounds concurrency (requests in flight).
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewHostLimiter returns a limiter allowing rps requests/sec per host with
// the given burst.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until host is permitted to send another request.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiterFor(host).Wait(ctx)
}

func (h *HostLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(h.rps, h.burst)
	h.limiters[host] = l
	return l
}
