package merger

import (
	"strings"
	"testing"

	"github.com/commis/streamdir/internal/category"
)

func newTestCategories() *category.Manager {
	cats := category.New()
	cats.Update(
		category.Descriptor{Name: "央视", Icon: "📺"},
		category.Descriptor{Name: "小众"},
	)
	cats.SetIgnored("小众")
	return cats
}

func TestTopHostsOrdersByCount(t *testing.T) {
	cats := newTestCategories()
	entries := []Entry{
		{Category: "央视", Name: "CCTV1", URL: "http://a.example:80/1.m3u8"},
		{Category: "央视", Name: "CCTV2", URL: "http://a.example:80/2.m3u8"},
		{Category: "央视", Name: "CCTV3", URL: "http://b.example:80/3.m3u8"},
	}
	m := New(cats, entries)
	top := m.TopHosts(2)
	if len(top) != 2 {
		t.Fatalf("TopHosts() len = %d, want 2", len(top))
	}
	if top[0].Host != "a.example:80" || top[0].Count != 2 {
		t.Errorf("top[0] = %+v, want a.example:80/2", top[0])
	}
}

func TestFormatOutputKeepsIgnoredCategoryRegardlessOfHost(t *testing.T) {
	cats := newTestCategories()
	entries := []Entry{
		{Category: "央视", Name: "CCTV1", URL: "http://a.example/1.m3u8"},
		{Category: "央视", Name: "CCTV2", URL: "http://a.example/2.m3u8"},
		{Category: "小众", Name: "Obscure", URL: "http://rare-host.example/z.m3u8"},
	}
	m := New(cats, entries)
	out := m.FormatOutput(1)
	if !strings.Contains(out, "Obscure,http://rare-host.example/z.m3u8") {
		t.Errorf("expected ignored-category entry to survive the host filter, got:\n%s", out)
	}
	if !strings.Contains(out, "a.example: 2") {
		t.Errorf("expected host stat line for a.example, got:\n%s", out)
	}
}

func TestFormatOutputDropsNonTopHostChannels(t *testing.T) {
	cats := newTestCategories()
	entries := []Entry{
		{Category: "央视", Name: "CCTV1", URL: "http://a.example/1.m3u8"},
		{Category: "央视", Name: "CCTV2", URL: "http://a.example/2.m3u8"},
		{Category: "央视", Name: "Straggler", URL: "http://lonely-host.example/z.m3u8"},
	}
	m := New(cats, entries)
	out := m.FormatOutput(1)
	if strings.Contains(out, "Straggler") {
		t.Errorf("expected straggler host's channel to be dropped, got:\n%s", out)
	}
}

func TestFormatOutputIncludesCategoryIcon(t *testing.T) {
	cats := newTestCategories()
	entries := []Entry{
		{Category: "央视", Name: "CCTV1", URL: "http://a.example/1.m3u8"},
	}
	m := New(cats, entries)
	out := m.FormatOutput(1)
	if !strings.Contains(out, "📺央视,#genre#") {
		t.Errorf("expected icon-prefixed category header, got:\n%s", out)
	}
}
