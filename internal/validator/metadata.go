package validator

import (
	"context"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/commis/streamdir/internal/format"
)

// extractChannelName implements the metadata fallback chain: first an
// EXTINF tvg-name or display name from the manifest, then the filename in
// the stream's Content-Disposition header.
func extractChannelName(ctx context.Context, client *http.Client, manifest, streamURL string) string {
	if name := extractFromEXTINF(manifest); name != "" {
		return name
	}
	return extractFromContentDisposition(ctx, client, streamURL)
}

func extractFromEXTINF(manifest string) string {
	var best string
	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#EXTINF") {
			continue
		}
		body := strings.TrimPrefix(line, "#EXTINF:")
		attrs, display := format.ParseEXTINF(body)
		if name := attrs["name"]; name != "" {
			return name
		}
		if display != "" && len(display) > len(best) {
			best = display
		}
	}
	return best
}

var contentDispositionFilename = regexp.MustCompile(`filename="?([^";]+)"?`)

func extractFromContentDisposition(ctx context.Context, client *http.Client, streamURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, streamURL, nil)
	if err != nil {
		return ""
	}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	m := contentDispositionFilename.FindStringSubmatch(cd)
	if m == nil {
		return ""
	}
	name := strings.Trim(m[1], `";`)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
