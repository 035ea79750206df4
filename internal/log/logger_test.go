package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigureWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})

	WithComponent("test").Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("expected component field in log line, got %q", out)
	}
	if !strings.Contains(out, `"service":"streamdir"`) {
		t.Errorf("expected service field in log line, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message in log line, got %q", out)
	}
}

func TestEnsureInitializedDefaultsToInfo(t *testing.T) {
	mu.Lock()
	initialized = false
	mu.Unlock()

	l := Base()
	if l.GetLevel().String() == "" {
		t.Fatal("expected a configured level after lazy init")
	}
}
