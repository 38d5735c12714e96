package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "groupchain", &buf)
	l.WithComponent("chain").Debug("concat finished", Fields(FieldGroups, 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "concat finished" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry[FieldComponent] != "chain" {
		t.Errorf("expected component=chain, got %v", entry[FieldComponent])
	}
	if entry[FieldGroups] != float64(3) {
		t.Errorf("expected groups=3, got %v", entry[FieldGroups])
	}
	if entry["service"] != "groupchain" {
		t.Errorf("expected service=groupchain, got %v", entry["service"])
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "svc", &buf)
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info/debug to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "invalid-level", Format: "json"}, "test", &buf)
	l.Info("still logged")
	if !strings.Contains(buf.String(), "still logged") {
		t.Error("expected invalid level to fall back to info")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test")
	cl := l.WithComponent("handler")
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(errors.New("boom")).Error("failed")
	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected key and error fields, got %q", out)
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "groupchain", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[GRO][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
}

func TestInitAndGlobal(t *testing.T) {
	Init(&Config{Level: "info", Format: "json"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
	global.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"invalid output", Config{Output: "syslog"}, true},
		{"empty uses defaults", Config{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)

	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults(t *testing.T) {
	Init(&Config{Level: "info", Format: "json"})
	RegisterDefaults("chain", "storage")
	for _, name := range []string{"chain", "storage"} {
		if Get(name) == nil {
			t.Errorf("expected non-nil logger for %q", name)
		}
	}
	registered := Registered()
	for _, name := range []string{"chain", "storage"} {
		if !slices.Contains(registered, name) {
			t.Errorf("expected %q in %v", name, registered)
		}
	}
	if !slices.IsSorted(registered) {
		t.Errorf("expected sorted names, got %v", registered)
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want map[string]interface{}
	}{
		{"pairs", []interface{}{"a", 1, "b", "x"}, map[string]interface{}{"a": 1, "b": "x"}},
		{"odd trailing key dropped", []interface{}{"a", 1, "b"}, map[string]interface{}{"a": 1}},
		{"non-string key formatted", []interface{}{42, 1, "b", 2}, map[string]interface{}{"42": 1, "b": 2}},
		{"empty", nil, map[string]interface{}{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fields(tc.in...)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("key %q: got %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("export", errors.New("disk full"))
	if ef[FieldOperation] != "export" || ef[FieldError] != "disk full" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("concat", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
	merged := MergeWithError(nil, errors.New("x"))
	if merged[FieldError] != "x" {
		t.Errorf("expected error=x, got %v", merged)
	}
	if got := MergeWithError(Fields(FieldPath, "out.json"), nil); len(got) != 1 {
		t.Errorf("nil error should add nothing, got %v", got)
	}
}
