package validator

import (
	"context"
	"net/http"
	"strings"

	"github.com/commis/streamdir/internal/httpclient"
	"github.com/commis/streamdir/internal/safeurl"
	"golang.org/x/sync/errgroup"
)

// extractSegmentURIs returns every non-comment, non-blank line of an HLS
// media playlist — the segment URIs in document order.
func extractSegmentURIs(manifest string) []string {
	var uris []string
	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		uris = append(uris, line)
	}
	return uris
}

// checkSegments HEADs up to maxCount segment URIs concurrently and reports
// ok if at least one responds 200, returning the URLs that did for reuse in
// the throughput benchmark.
func checkSegments(ctx context.Context, client *http.Client, baseURL string, uris []string, maxCount int) (ok bool, reason string, reachable []string) {
	if maxCount <= 0 {
		maxCount = 3
	}
	if len(uris) > maxCount {
		uris = uris[:maxCount]
	}
	if len(uris) == 0 {
		return false, "no ts segments found", nil
	}

	results := make([]string, len(uris))
	g, gctx := errgroup.WithContext(ctx)
	for i, uri := range uris {
		i, uri := i, uri
		g.Go(func() error {
			full := uri
			if !strings.HasPrefix(uri, "http") {
				full = resolveRelative(baseURL, uri)
			}
			if headOK(gctx, client, full) {
				results[i] = full
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r != "" {
			reachable = append(reachable, r)
		}
	}
	if len(reachable) == 0 {
		return false, "all ts segments are not available", nil
	}
	return true, "", reachable
}

func headOK(ctx context.Context, client *http.Client, target string) bool {
	if !safeurl.IsHTTPOrHTTPS(target) {
		return false
	}
	if err := hostLimiter.Wait(ctx, hostOf(target)); err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false
	}
	resp, err := httpclient.DoWithRetry(ctx, client, req, httpclient.DefaultRetryPolicy)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
