package channel

import (
	"strings"
	"testing"
)

func TestURLInterningSharesInstance(t *testing.T) {
	ResetInterning()
	a := Intern("http://host/stream.m3u8")
	b := Intern("http://host/stream.m3u8")
	if a != b {
		t.Error("Intern() returned distinct instances for the same URL")
	}
	a.SetSpeed(512.34)
	if got := b.SpeedKBs(); got != 512.3 {
		t.Errorf("SpeedKBs() via aliased handle = %v, want 512.3", got)
	}
}

func TestSetSpeedIgnoresZero(t *testing.T) {
	ResetInterning()
	e := Intern("http://host/a.m3u8")
	e.SetSpeed(100)
	e.SetSpeed(0)
	if got := e.SpeedKBs(); got != 100 {
		t.Errorf("SpeedKBs() after zero sample = %v, want 100 (unchanged)", got)
	}
}

func TestNewDefaultsNameFromID(t *testing.T) {
	c := New("42", "")
	if c.Name() != "频道-42" {
		t.Errorf("Name() = %q, want 频道-42", c.Name())
	}
}

func TestNewClearsIDWhenEqualToName(t *testing.T) {
	c := New("CCTV1", "CCTV1")
	if c.ID() != "" {
		t.Errorf("ID() = %q, want empty when id == name", c.ID())
	}
}

func TestTXTOrdersBySpeed(t *testing.T) {
	ResetInterning()
	c := New("", "CNN")
	fast := Intern("http://host/fast.m3u8")
	fast.SetSpeed(900)
	slow := Intern("http://host/slow.m3u8")
	slow.SetSpeed(100)
	c.AddURL(fast)
	c.AddURL(slow)

	lines := strings.Split(c.TXT(), "\n")
	if len(lines) != 2 {
		t.Fatalf("TXT() lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "slow.m3u8") {
		t.Errorf("TXT() first line = %q, want slowest stream first", lines[0])
	}
}

func TestM3UIncludesTvgFields(t *testing.T) {
	ResetInterning()
	c := New("id1", "ESPN")
	c.SetLogo("http://logo/espn.png")
	c.AddURL(Intern("http://host/espn.m3u8"))

	m3u := c.M3U("sports")
	if !strings.Contains(m3u, `tvg-id="id1"`) {
		t.Errorf("M3U() missing tvg-id: %q", m3u)
	}
	if !strings.Contains(m3u, `tvg-logo="http://logo/espn.png"`) {
		t.Errorf("M3U() missing tvg-logo: %q", m3u)
	}
	if !strings.Contains(m3u, `group-title="sports"`) {
		t.Errorf("M3U() missing group-title: %q", m3u)
	}
}

func TestMergeKeepsFirstResolutionAndLastSpeed(t *testing.T) {
	ResetInterning()
	e := Intern("http://host/a.m3u8")
	e.Merge(100, "1280x720")
	e.Merge(200, "1920x1080")
	if got := e.SpeedKBs(); got != 200 {
		t.Errorf("SpeedKBs() = %v, want 200 (last-writer-wins)", got)
	}
	if got := e.Resolution(); got != "1280x720" {
		t.Errorf("Resolution() = %q, want 1280x720 (first-non-empty-wins)", got)
	}
}

func TestRemoveURL(t *testing.T) {
	ResetInterning()
	c := New("", "CNN")
	c.AddURL(Intern("http://host/a.m3u8"))
	c.RemoveURL("http://host/a.m3u8")
	if c.Count() != 0 {
		t.Errorf("Count() after RemoveURL = %d, want 0", c.Count())
	}
}
