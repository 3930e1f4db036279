package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	return m
}

func TestNew(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "discard",
	}
	l := New(cfg, "esplora")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "esplora" {
		t.Errorf("expected service 'esplora', got %q", l.service)
	}
	if !l.DebugEnabled() {
		t.Error("expected debug to be enabled")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "discard"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if l.DebugEnabled() {
		t.Error("invalid level should fall back to info")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	if l.DebugEnabled() {
		t.Error("nop logger should not emit debug events")
	}
	l.Debug("ignored", Fields("a", 1))
	l.Error("ignored")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "esplora", &buf)

	l.Debug("exchange complete", Fields(FieldOperation, "tx_info", FieldStatus, 200))

	m := decodeLine(t, &buf)
	if m["message"] != "exchange complete" {
		t.Errorf("message = %v", m["message"])
	}
	if m[FieldService] != "esplora" {
		t.Errorf("service = %v", m[FieldService])
	}
	if m[FieldOperation] != "tx_info" {
		t.Errorf("operation = %v", m[FieldOperation])
	}
	if m[FieldStatus] != float64(200) {
		t.Errorf("status = %v", m[FieldStatus])
	}
	if m["level"] != "debug" {
		t.Errorf("level = %v", m["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "", &buf)

	l.Debug("dropped")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	cl := l.WithComponent("transport")
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("hello")
	m := decodeLine(t, &buf)
	if m[FieldComponent] != "transport" {
		t.Errorf("component = %v", m[FieldComponent])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithFields(map[string]interface{}{FieldRequestID: "abc"}).Info("hello")
	m := decodeLine(t, &buf)
	if m[FieldRequestID] != "abc" {
		t.Errorf("request_id = %v", m[FieldRequestID])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, &buf)
	if m[FieldError] != "boom" {
		t.Errorf("error = %v", m[FieldError])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "esplora", &buf)
	l.Info("ready", Fields(FieldBaseURL, "https://blockstream.info/api"))

	out := buf.String()
	if !strings.Contains(out, "[ESP][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "base_url:") {
		t.Errorf("expected field name, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color codes, got %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("Level = %q", cfg.Level)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps on")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, ""},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, "logging.level"},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, "logging.format"},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, "logging.output"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
}
