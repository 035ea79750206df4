package format

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/commis/streamdir/internal/safeurl"
)

// selfHostedFallbackURL is the fixed self-hosted channel list merged into
// every sitemap crawl, mirroring the original parser's hardcoded
// "homegrown" source.
const selfHostedFallbackURL = "http://107.174.95.154/tvbox/json/live.txt"

// sitemapTargetSuffix is the only kind of <loc> entry a sitemap crawl
// follows; everything else in the sitemap is unrelated to channel data.
const sitemapTargetSuffix = "iptv4.txt"

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// FetchSitemap fetches a sitemap XML document at sitemapURL, follows every
// <loc> ending in "iptv4.txt", fetches and parses each as TXT, fetches and
// parses the fixed self-hosted fallback URL the same way, and returns every
// entry found. When filterIgnored is non-nil, entries from sitemap targets
// whose category it reports as ignored are dropped (the self-hosted
// fallback is never filtered).
func FetchSitemap(ctx context.Context, client *http.Client, sitemapURL string, filterIgnored func(category string) bool) ([]Entry, error) {
	targets, err := fetchSitemapTargets(ctx, client, sitemapURL)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, target := range targets {
		text, err := fetchText(ctx, client, target)
		if err != nil {
			continue
		}
		entries = append(entries, filterEntries(ParseTXT(text), filterIgnored)...)
	}

	text, err := fetchText(ctx, client, selfHostedFallbackURL)
	if err == nil {
		entries = append(entries, ParseTXT(text)...)
	}
	return entries, nil
}

func filterEntries(entries []Entry, filterIgnored func(string) bool) []Entry {
	if filterIgnored == nil {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if !filterIgnored(e.CategoryHint) {
			out = append(out, e)
		}
	}
	return out
}

func fetchSitemapTargets(ctx context.Context, client *http.Client, sitemapURL string) ([]string, error) {
	body, err := fetchRaw(ctx, client, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var doc urlset
	if err := xml.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("format: decode sitemap: %w", err)
	}
	var targets []string
	for _, u := range doc.URLs {
		loc := strings.TrimSpace(u.Loc)
		if strings.HasSuffix(loc, sitemapTargetSuffix) {
			targets = append(targets, loc)
		}
	}
	return targets, nil
}

func fetchRaw(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
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
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("format: fetch %q: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

func fetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	if !safeurl.IsHTTPOrHTTPS(url) {
		return "", fmt.Errorf("format: unsafe scheme for %q", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("format: fetch %q: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(decodeBody(resp))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
