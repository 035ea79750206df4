// Package merger narrows a channel dataset down to the handful of hosts
// that serve the most channels, on the theory that a host carrying many
// channels is more likely to still be alive tomorrow than one carrying
// a handful of straggler URLs.
package merger

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/commis/streamdir/internal/category"
)

// Entry is one (category, channel name, URL) triple going into a merge.
type Entry struct {
	Category string
	Name     string
	URL      string
}

// HostCount pairs a host with the number of channels it serves.
type HostCount struct {
	Host  string
	Count int
}

// Merger picks the top hosts by channel count and keeps only the entries
// served by one of them, plus anything under an ignored category.
type Merger struct {
	categories *category.Manager
	entries    []Entry

	hostCache map[string]string
	hostCount map[string]int
	topHosts  []HostCount
	filtered  map[string][]Entry
	order     []string
}

// New returns a Merger over entries, resolving ignore status against cats.
func New(cats *category.Manager, entries []Entry) *Merger {
	return &Merger{
		categories: cats,
		entries:    entries,
		hostCache:  make(map[string]string),
	}
}

// extractHost pulls the host:port portion out of a stream URL, caching the
// result since the same URL is looked at repeatedly across the merge.
func (m *Merger) extractHost(rawURL string) string {
	if h, ok := m.hostCache[rawURL]; ok {
		return h
	}
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	m.hostCache[rawURL] = host
	return host
}

func (m *Merger) countHosts() map[string]int {
	if m.hostCount != nil {
		return m.hostCount
	}
	counts := make(map[string]int)
	for _, e := range m.entries {
		if host := m.extractHost(e.URL); host != "" {
			counts[host]++
		}
	}
	m.hostCount = counts
	return counts
}

// TopHosts returns the n hosts with the most channels, highest first. Ties
// keep their first-seen order, matching a stable top-n selection.
func (m *Merger) TopHosts(n int) []HostCount {
	if m.topHosts != nil {
		return m.topHosts
	}
	counts := m.countHosts()

	seen := make([]string, 0, len(counts))
	for _, e := range m.entries {
		host := m.extractHost(e.URL)
		if host == "" {
			continue
		}
		if _, ok := counts[host]; ok {
			already := false
			for _, s := range seen {
				if s == host {
					already = true
					break
				}
			}
			if !already {
				seen = append(seen, host)
			}
		}
	}

	all := make([]HostCount, 0, len(seen))
	for _, host := range seen {
		all = append(all, HostCount{Host: host, Count: counts[host]})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })

	if n > 0 && n < len(all) {
		all = all[:n]
	}
	m.topHosts = all
	return all
}

// filterEntries keeps entries served by a top host, or whose category is
// ignored outright (ignored categories bypass the host filter entirely).
func (m *Merger) filterEntries(topN int) map[string][]Entry {
	if m.filtered != nil {
		return m.filtered
	}
	m.TopHosts(topN)

	topSet := make(map[string]struct{}, len(m.topHosts))
	for _, h := range m.topHosts {
		topSet[h.Host] = struct{}{}
	}

	filtered := make(map[string][]Entry)
	var order []string
	for _, e := range m.entries {
		_, inTop := topSet[m.extractHost(e.URL)]
		if !inTop && !m.categories.IsIgnored(e.Category) {
			continue
		}
		if _, ok := filtered[e.Category]; !ok {
			order = append(order, e.Category)
		}
		filtered[e.Category] = append(filtered[e.Category], e)
	}
	m.filtered = filtered
	m.order = order
	return filtered
}

// FormatOutput runs the merge (defaulting to the top 3 hosts) and renders
// the result as a TXT-style document: a host-count banner, then one
// "<category>,#genre#" block per surviving category.
func (m *Merger) FormatOutput(topN int) string {
	if topN <= 0 {
		topN = 3
	}
	filtered := m.filterEntries(topN)

	var lines []string
	lines = append(lines, "#========================")
	for _, h := range m.topHosts {
		lines = append(lines, fmt.Sprintf("#%s: %d", h.Host, h.Count))
	}
	lines = append(lines, "#========================")

	for _, cat := range m.order {
		icon := ""
		if d, ok := m.categories.Get(cat); ok {
			icon = d.Icon
		}
		lines = append(lines, fmt.Sprintf("%s%s,#genre#", icon, cat))
		for _, e := range filtered[cat] {
			lines = append(lines, fmt.Sprintf("%s,%s", e.Name, e.URL))
		}
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
