package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("nonsense", &buf))

	Debug("should be suppressed")
	Info("should appear")

	out := buf.String()
	if strings.Contains(out, "should be suppressed") {
		t.Fatalf("unknown level must fall back to info: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("info must be logged at the fallback level: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		logFunc func(string, ...any)
		msg     string
		want    bool
	}{
		{"debug at debug", "debug", Debug, "dbg", true},
		{"debug at info", "info", Debug, "dbg", false},
		{"warn at error", "error", Warn, "wrn", false},
		{"error at error", "error", Error, "err", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetDefault(New(tt.level, &buf))

			tt.logFunc(tt.msg)
			got := strings.Contains(buf.String(), tt.msg)
			if got != tt.want {
				t.Fatalf("logged=%v, want %v: %s", got, tt.want, buf.String())
			}
		})
	}
}

func TestJSONAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	Info("analysis started", "analysis_id", "an-1", "concurrency", 150)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "analysis started" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["analysis_id"] != "an-1" {
		t.Fatalf("unexpected analysis_id: %v", entry["analysis_id"])
	}
	if entry["concurrency"] != float64(150) {
		t.Fatalf("unexpected concurrency: %v", entry["concurrency"])
	}
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	With("component", "capd").Info("serving")

	out := buf.String()
	if !strings.Contains(out, "component") || !strings.Contains(out, "capd") {
		t.Fatalf("expected bound attributes in output: %s", out)
	}
}

func TestNewTextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewText("info", &buf)

	log.Info("text line")
	if !strings.Contains(buf.String(), "text line") {
		t.Fatalf("expected the message in text output: %s", buf.String())
	}
}

func TestNewDev(t *testing.T) {
	var buf bytes.Buffer
	log := NewDev("debug", &buf)

	log.Debug("dev line")
	if !strings.Contains(buf.String(), "dev line") {
		t.Fatalf("expected the message in dev output: %s", buf.String())
	}
}
