package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(&bytes.Buffer{})

	tests := []struct {
		name      string
		level     Level
		emit      func(Logger)
		wantEmpty bool
	}{
		{"debug hidden at notice", Notice, func(l Logger) { l.Debugf("hidden %d", 1) }, true},
		{"notice shown at notice", Notice, func(l Logger) { l.Noticef("shown %d", 2) }, false},
		{"info shown at debug", Debug, func(l Logger) { l.Info("shown") }, false},
		{"warning hidden at error", Error, func(l Logger) { l.Warning("hidden") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)
			tt.emit(New("test"))
			if got := buf.Len() == 0; got != tt.wantEmpty {
				t.Errorf("Expected empty=%t, got output %q", tt.wantEmpty, buf.String())
			}
		})
	}
}

func TestLoggerIncludesModule(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(&bytes.Buffer{})
	SetLevel(Info)

	New("bvh").Infof("built %d nodes", 7)

	out := buf.String()
	if !strings.Contains(out, "[bvh]") || !strings.Contains(out, "built 7 nodes") {
		t.Errorf("Unexpected log line %q", out)
	}
	if GetLevel() != Info {
		t.Errorf("Expected level Info, got %v", GetLevel())
	}
}
