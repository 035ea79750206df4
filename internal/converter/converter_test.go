package converter

import (
	"strings"
	"testing"

	"github.com/commis/streamdir/internal/category"
	"github.com/commis/streamdir/internal/channel"
)

func newTestCategories() *category.Manager {
	cats := category.New()
	cats.Update(category.Descriptor{Name: "央视"})
	return cats
}

func TestM3UToTXTRoundTrip(t *testing.T) {
	channel.ResetInterning()
	m3u := `#EXTM3U
#EXTINF:-1 tvg-id="1" tvg-name="CCTV1综合" group-title="央视频道",CCTV1综合频道
http://a.example/cctv1.m3u8
`
	cats := newTestCategories()
	got := M3UToTXT(m3u, cats)
	if !strings.Contains(got, "央视,#genre#") {
		t.Errorf("expected canonicalized category header, got:\n%s", got)
	}
	if !strings.Contains(got, "CCTV1,http://a.example/cctv1.m3u8") {
		t.Errorf("expected canonicalized channel alias with 频道 suffix stripped, got:\n%s", got)
	}
}

func TestTXTToM3URoundTrip(t *testing.T) {
	channel.ResetInterning()
	txt := "央视频道,#genre#\nCCTV1综合,http://a.example/cctv1.m3u8\n"
	cats := newTestCategories()
	got := TXTToM3U(txt, cats)
	if !strings.Contains(got, `group-title="央视"`) {
		t.Errorf("expected canonicalized group-title attribute, got:\n%s", got)
	}
	if !strings.Contains(got, "http://a.example/cctv1.m3u8") {
		t.Errorf("expected channel URL preserved, got:\n%s", got)
	}
}

func TestM3UToTXTEmptyOnNoChannels(t *testing.T) {
	channel.ResetInterning()
	cats := newTestCategories()
	got := M3UToTXT("#EXTM3U\n", cats)
	if got != "" {
		t.Errorf("M3UToTXT() = %q, want empty for a manifest with no channels", got)
	}
}
