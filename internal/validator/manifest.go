package validator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/commis/streamdir/internal/httpclient"
	"github.com/commis/streamdir/internal/safeurl"
)

// variantPattern pulls the URI line following an #EXT-X-STREAM-INF tag out
// of a master playlist.
var variantPattern = regexp.MustCompile(`(?m)^#EXT-X-STREAM-INF:.*?\n(.+)$`)

// fetchManifest retrieves the playlist at streamURL and, if it is a master
// playlist (contains #EXT-X-STREAM-INF), follows the first variant exactly
// once — deeper nesting is not chased, per the frozen single-level
// variant-follow policy. Returns the final manifest text and the URL it was
// actually fetched from (needed to resolve relative segment URIs).
func fetchManifest(ctx context.Context, client *http.Client, streamURL string) (content, resolvedURL string, ok bool) {
	body, err := getText(ctx, client, streamURL)
	if err != nil {
		return "", "", false
	}

	if strings.Contains(body, "#EXT-X-STREAM-INF") {
		if m := variantPattern.FindStringSubmatch(body); m != nil {
			variant := strings.TrimSpace(m[1])
			variantURL := resolveRelative(streamURL, variant)
			if childBody, err := getText(ctx, client, variantURL); err == nil {
				return childBody, variantURL, true
			}
		}
	}
	return body, streamURL, true
}

func resolveRelative(base, ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func getText(ctx context.Context, client *http.Client, target string) (string, error) {
	if !safeurl.IsHTTPOrHTTPS(target) {
		return "", errUnsafeScheme
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpclient.DoWithRetry(ctx, client, req, httpclient.DefaultRetryPolicy)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", errStatus(resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type errStatus int

func (e errStatus) Error() string { return "validator: unexpected status" }

var errUnsafeScheme = errors.New("validator: unsafe URL scheme")
