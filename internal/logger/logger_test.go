package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"WARN":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigure_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termfolio.log")
	closer, err := Configure("debug", path)
	if err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = closer.Close()
		_, _ = Configure("info", "")
	})

	Debug("fetch index", "kind", "blogs")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "fetch index") || !strings.Contains(string(raw), "kind=blogs") {
		t.Fatalf("expected structured log line, got %q", string(raw))
	}
}
