package gologger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewJSONLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "debug")

	logger.WithContext(context.Background()).Info("notify dispatched", "service_key", "svc")
	logger.WithFields(map[string]any{"room_id": "42", "state": "dispatched"}).Warn("slow post")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["msg"] != "notify dispatched" || lines[0]["service_key"] != "svc" {
		t.Fatalf("unexpected first line %#v", lines[0])
	}
	if lines[1]["level"] != "warn" || lines[1]["room_id"] != "42" || lines[1]["state"] != "dispatched" {
		t.Fatalf("unexpected second line %#v", lines[1])
	}
}

func TestNewJSONLogger_HonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "warning")
	logger.Debug("hidden")
	logger.Trace("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["msg"] != "shown" {
		t.Fatalf("expected only the warn line, got %#v", lines)
	}
}

func TestNewJSONLogger_FatalUsesExitOption(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	logger := NewJSONLogger(&buf, "info", glog.WithExitFunc(func(c int) { code = c }))
	logger.Fatal("boom")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestResolve_NamesLoggersFromProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewJSONLogger(&buf, "info")

	_, resolved := Resolve("hook-notify.webhooks", provider, nil)
	resolved.Info("notify dispatched", "service_key", "svc-1")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %#v", lines)
	}
	if lines[0]["logger"] != "hook-notify.webhooks" || lines[0]["service_key"] != "svc-1" {
		t.Fatalf("expected named logger attribute, got %#v", lines[0])
	}
}

func TestResolve_NilInputsReturnNop(t *testing.T) {
	_, resolved := Resolve("hook-notify.webhooks", nil, nil)
	if resolved == nil {
		t.Fatalf("expected nop logger")
	}
	resolved.Info("discarded")
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   glog.Trace,
		" DEBUG ": glog.Debug,
		"warning": glog.Warn,
		"error":   glog.Error,
		"":        glog.Info,
		"verbose": glog.Info,
	}
	for input, want := range cases {
		if got := NormalizeLevel(input); got != want {
			t.Fatalf("level %q: expected %q, got %q", input, want, got)
		}
	}
}
