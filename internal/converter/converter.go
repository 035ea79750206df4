// Package converter round-trips channel data between TXT and M3U,
// applying channel/category name canonicalization along the way — the
// one path where provider-specific aliases get folded to a single name.
package converter

import (
	"strings"

	"github.com/commis/streamdir/internal/category"
	"github.com/commis/streamdir/internal/channel"
	"github.com/commis/streamdir/internal/format"
)

// M3UToTXT parses m3uData and re-renders it as TXT, canonicalizing
// channel and category names along the way. Returns "" when no channel
// is parsed.
func M3UToTXT(m3uData string, cats *category.Manager) string {
	reg := parseM3UToRegistry(m3uData, cats)
	if reg == nil {
		return ""
	}
	return reg.SerializeTXT()
}

// TXTToM3U parses txtData and re-renders it as M3U, applying the same
// canonicalization as M3UToTXT.
func TXTToM3U(txtData string, cats *category.Manager) string {
	reg := parseTXTToRegistry(txtData, cats)
	if reg == nil {
		return ""
	}
	return reg.SerializeM3U()
}

func parseM3UToRegistry(m3uData string, cats *category.Manager) *channel.Registry {
	reg := channel.New(cats)
	var channelName, groupTitle, channelID string

	for _, raw := range strings.Split(m3uData, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "#EXTM3U"):
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			body := strings.TrimPrefix(line, "#EXTINF:")
			attrs, name := format.ParseEXTINF(body)
			name = strings.ReplaceAll(strings.TrimSpace(name), "频道", "")
			channelName = category.CanonicalizeChannel(name)
			channelID = attrs["id"]
			if channelID == "" {
				channelID = "0"
			}
			groupTitle = category.CanonicalizeCategory(attrs["title"])
		case strings.HasPrefix(line, "http:") || strings.HasPrefix(line, "https:"):
			if channelName == "" {
				continue
			}
			reg.Add(groupTitle, channelName, line, channelID, "")
		}
	}
	return reg
}

func parseTXTToRegistry(txtData string, cats *category.Manager) *channel.Registry {
	reg := channel.New(cats)
	groupTitle := ""

	for _, raw := range strings.Split(strings.TrimSpace(txtData), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "#genre#") {
			groupTitle = category.CanonicalizeCategory(format.CleanCategoryLabel(strings.TrimSuffix(line, "#genre#")))
			continue
		}
		name, url, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		reg.Add(groupTitle, category.CanonicalizeChannel(name), url, "", "")
	}
	return reg
}
