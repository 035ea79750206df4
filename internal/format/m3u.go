package format

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/commis/streamdir/internal/safeurl"
)

const maxLineSize = 1 << 20 // 1 MiB per line

// ParseM3UReader streams an M3U document, pairing each #EXTINF tag with the
// URL line that follows it.
func ParseM3UReader(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)

	var entries []Entry
	var attrs map[string]string
	var name string
	pending := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#EXTM3U") {
			continue
		}
		if strings.HasPrefix(line, "#EXTINF:") {
			attrs, name = ParseEXTINF(strings.TrimPrefix(line, "#EXTINF:"))
			pending = true
			continue
		}
		if !pending {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{
			CategoryHint: attrs["title"],
			ChannelName:  resolveM3UName(attrs, name),
			URL:          line,
		})
		pending = false
	}
	return entries, sc.Err()
}

// resolveM3UName applies the metadata-extraction precedence tvg-name then
// display name, falling back to the raw EXTINF name.
func resolveM3UName(attrs map[string]string, fallback string) string {
	if v := attrs["name"]; v != "" {
		return v
	}
	return fallback
}

// FetchM3U fetches url with client (httpclient-provided) and parses it.
func FetchM3U(ctx context.Context, client *http.Client, url string) ([]Entry, error) {
	if !safeurl.IsHTTPOrHTTPS(url) {
		return nil, fmt.Errorf("format: unsafe scheme for %q", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("format: fetch %q: status %d", url, resp.StatusCode)
	}
	return ParseM3UReader(decodeBody(resp))
}
