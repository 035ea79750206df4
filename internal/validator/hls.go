package validator

import (
	"context"
	"net/http"
	"strings"
)

// validateHLS runs the full HLS pipeline: manifest fetch (with single-level
// variant follow), structural check, segment reachability, throughput
// benchmark, and metadata extraction.
func validateHLS(ctx context.Context, client *http.Client, streamURL string, opts Options) Result {
	if !opts.CheckManifest {
		return Result{Valid: true}
	}

	manifest, resolvedURL, ok := fetchManifest(ctx, client, streamURL)
	if !ok {
		return Result{Valid: false, Reason: "manifest fetch failed"}
	}

	if valid, reason := checkStructure(manifest); !valid {
		return Result{Valid: false, Reason: reason}
	}

	baseURL := resolvedURL[:strings.LastIndex(resolvedURL, "/")+1]
	uris := extractSegmentURIs(manifest)
	segOK, reason, reachable := checkSegments(ctx, client, baseURL, uris, opts.SegmentTestCount)
	if !segOK {
		return Result{Valid: false, Reason: reason}
	}

	speed := benchmarkSpeed(ctx, client, reachable)

	var name string
	if opts.ExtractChannelName {
		name = extractChannelName(ctx, client, manifest, resolvedURL)
	}

	return Result{Valid: true, SpeedKBs: speed, ChannelName: name}
}
