// Package format parses TXT, M3U and sitemap channel-list documents into a
// uniform stream of (category hint, channel name, url) entries.
package format

import (
	"regexp"
	"strings"
)

// Entry is one parsed channel-url pairing plus the category hint (if any)
// in effect when it was read.
type Entry struct {
	CategoryHint string
	ChannelName  string
	URL          string
}

// attrPattern extracts quoted key="value" pairs from an EXTINF tag body.
// \w does not match '-', so a provider attribute like tvg-id="42" is
// captured under the key "id", and group-title="News" under "title" —
// this is intentional: it lets one pattern read both the tvg-* and
// group-title families of attributes without per-attribute cases.
var attrPattern = regexp.MustCompile(`(\w+)="((?:[^"\\]|\\.)*)"`)

// ParseEXTINF splits an EXTINF tag body (everything after "#EXTINF:") into
// its attribute map and trailing display name.
func ParseEXTINF(body string) (attrs map[string]string, name string) {
	paramStr := body
	name = ""
	if i := strings.LastIndex(body, ","); i >= 0 {
		paramStr = body[:i]
		name = strings.TrimSpace(body[i+1:])
	}

	attrs = make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(paramStr, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs, name
}

// categoryCleanPattern strips emoji ranges, commas, the "#genre#" suffix
// and surrounding whitespace from a TXT group header line.
var categoryCleanPattern = regexp.MustCompile(
	`(?:[\x{1F000}-\x{1FFFF}\x{2500}-\x{2BEF}\x{2E00}-\x{2E7F}\x{3000}-\x{3300},\s]|#genre#)+`)

// CleanCategoryLabel normalizes a raw "<label>,#genre#" header line (or bare
// label) to its display form.
func CleanCategoryLabel(line string) string {
	return strings.TrimSpace(categoryCleanPattern.ReplaceAllString(line, " "))
}
