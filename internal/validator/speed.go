package validator

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/commis/streamdir/internal/httpclient"
)

const speedSampleBytes = 512 * 1024

// benchmarkSpeed downloads up to speedSampleBytes from each reachable
// segment URL, timing each fetch, and returns the aggregate throughput in
// KB/s across all of them. Returns 0 if no bytes were read. The clock starts
// once the response headers arrive, not at request dispatch, so connection
// setup and time-to-first-byte aren't counted as transfer time.
func benchmarkSpeed(ctx context.Context, client *http.Client, urls []string) float64 {
	var totalBytes int64
	var totalElapsed time.Duration

	for _, target := range urls {
		if err := hostLimiter.Wait(ctx, hostOf(target)); err != nil {
			continue
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			continue
		}
		resp, err := httpclient.DoWithRetry(ctx, client, req, httpclient.DefaultRetryPolicy)
		if err != nil {
			continue
		}
		start := time.Now()
		n, _ := io.CopyN(io.Discard, resp.Body, speedSampleBytes)
		resp.Body.Close()
		totalBytes += n
		totalElapsed += time.Since(start)
	}

	if totalElapsed <= 0 {
		return 0
	}
	return (float64(totalBytes) / totalElapsed.Seconds()) / 1024
}
