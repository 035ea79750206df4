// Package validator runs the multi-stage stream-validation pipeline against
// one URL: a fast MP4 path, or the full HLS manifest/structure/segment/
// throughput/metadata sequence.
package validator

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/commis/streamdir/internal/httpclient"
	"github.com/commis/streamdir/internal/log"
	"github.com/commis/streamdir/internal/safeurl"
)

// Options configures one validation run.
type Options struct {
	CheckManifest      bool // run the full HLS pipeline beyond the fast MP4 path
	SegmentTestCount   int  // max TS segments sampled in the reachability stage
	ConnectTimeout     time.Duration
	ProbeTimeout       time.Duration // overall per-URL budget
	ExtractChannelName bool          // run the metadata-extraction stage when name is unknown
}

// Result is the outcome of validating one URL.
type Result struct {
	Valid       bool
	Reason      string
	SpeedKBs    float64
	ChannelName string
}

// Validate runs the pipeline against streamURL, bounded by opts.ProbeTimeout
// for the whole call, mirroring the original's single-worker
// ThreadPoolExecutor-with-timeout wrapper.
func Validate(ctx context.Context, streamURL string, opts Options) Result {
	logger := log.WithComponent("validator")
	if !safeurl.IsHTTPOrHTTPS(streamURL) {
		return Result{Valid: false, Reason: "unsafe URL scheme"}
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeoutOrDefault(opts.ProbeTimeout))
	defer cancel()

	client := httpclient.ForProbe(opts.ProbeTimeout, connectTimeoutOrDefault(opts.ConnectTimeout))

	done := make(chan Result, 1)
	go func() { done <- validate(ctx, client, streamURL, opts) }()

	select {
	case r := <-done:
		if !r.Valid {
			logger.Debug().Str("url", streamURL).Str("reason", r.Reason).Msg("validation failed")
		}
		return r
	case <-ctx.Done():
		logger.Debug().Str("url", streamURL).Msg("validation timed out")
		return Result{Valid: false, Reason: "timed out"}
	}
}

func validate(ctx context.Context, client *http.Client, streamURL string, opts Options) Result {
	switch {
	case strings.HasSuffix(streamURL, ".mp4"):
		ok := checkMP4(ctx, client, streamURL)
		return Result{Valid: ok, Reason: reasonFor(ok, "mp4 sniff failed")}
	case strings.Contains(streamURL, ".m3u8"):
		return validateHLS(ctx, client, streamURL, opts)
	default:
		return Result{Valid: false, Reason: "unsupported URL (neither .mp4 nor .m3u8)"}
	}
}

func reasonFor(ok bool, failMsg string) string {
	if ok {
		return ""
	}
	return failMsg
}

func probeTimeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

func connectTimeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Second
	}
	return d
}
