package channel

import (
	"strings"
	"testing"

	"github.com/commis/streamdir/internal/category"
)

func newTestRegistry() *Registry {
	ResetInterning()
	cats := category.New()
	cats.Update(category.Descriptor{Name: "news"}, category.Descriptor{Name: "sports"})
	return New(cats)
}

func TestAddSkipsExcludedChannel(t *testing.T) {
	cats := category.New()
	cats.Update(category.Descriptor{Name: "premium", Excludes: []string{"Blocked"}})
	r := New(cats)

	r.Add("premium", "Blocked", "http://host/blocked.m3u8", "", "")
	if r.TotalCount() != 0 {
		t.Errorf("TotalCount() = %d, want 0 for excluded channel", r.TotalCount())
	}
}

func TestAddGroupsByResolvedCategory(t *testing.T) {
	r := newTestRegistry()
	r.Add("news", "CNN", "http://host/cnn.m3u8", "", "")

	ch, ok := r.Get("news", "CNN")
	if !ok {
		t.Fatal("Get(news, CNN) not found")
	}
	if ch.Count() != 1 {
		t.Errorf("Count() = %d, want 1", ch.Count())
	}
}

func TestTotalCountSkipsIgnoredGroup(t *testing.T) {
	cats := category.New()
	cats.Update(category.Descriptor{Name: "overseas"})
	cats.SetIgnored("overseas")
	r := New(cats)
	r.Add("overseas", "RT", "http://host/rt.m3u8", "", "")

	if got := r.TotalCount(); got != 0 {
		t.Errorf("TotalCount() = %d, want 0 for ignored category", got)
	}
}

func TestSerializeTXTGroupsWithGenreHeader(t *testing.T) {
	r := newTestRegistry()
	r.Add("news", "CNN", "http://host/cnn.m3u8", "", "")

	out := r.SerializeTXT()
	if !strings.Contains(out, "news,#genre#") {
		t.Errorf("SerializeTXT() missing genre header: %q", out)
	}
	if !strings.Contains(out, "CNN,http://host/cnn.m3u8") {
		t.Errorf("SerializeTXT() missing channel line: %q", out)
	}
}

func TestSerializeM3UHeaderWithoutPlayback(t *testing.T) {
	r := newTestRegistry()
	out := r.SerializeM3U()
	if !strings.HasPrefix(out, "#EXTM3U") {
		t.Errorf("SerializeM3U() = %q, want #EXTM3U prefix", out)
	}
	if strings.Contains(out, "x-tvg-url") {
		t.Error("SerializeM3U() should omit x-tvg-url when no playback URL is set")
	}
}

func TestSerializeM3UHeaderWithPlayback(t *testing.T) {
	r := newTestRegistry()
	r.SetPlayback("http://playback/live")
	r.Add("news", "CNN", "http://host/cnn.m3u8", "", "")

	out := r.SerializeM3U()
	if !strings.Contains(out, `x-tvg-url="http://playback/live"`) {
		t.Errorf("SerializeM3U() missing x-tvg-url: %q", out)
	}
	if !strings.Contains(out, `catchup="append"`) {
		t.Errorf("SerializeM3U() missing catchup attr: %q", out)
	}
}

func TestGroupsFollowsCategoryOrder(t *testing.T) {
	r := newTestRegistry()
	r.Add("sports", "ESPN", "http://host/espn.m3u8", "", "")
	r.Add("news", "CNN", "http://host/cnn.m3u8", "", "")

	groups := r.Groups()
	newsIdx, sportsIdx := -1, -1
	for i, g := range groups {
		switch g {
		case "news":
			newsIdx = i
		case "sports":
			sportsIdx = i
		}
	}
	if newsIdx == -1 || sportsIdx == -1 || newsIdx > sportsIdx {
		t.Errorf("Groups() = %v, want news before sports (category registration order)", groups)
	}
}
