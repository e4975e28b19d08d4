// Package gologger builds the go-logger loggers used across hook-notify.
package gologger

import (
	"io"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// NormalizeLevel maps config values onto go-logger level names. Unknown
// values fall back to info.
func NormalizeLevel(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return glog.Info
	}
}

// NewJSONLogger returns a root JSON logger writing to w. The result is also
// the provider for named package loggers.
func NewJSONLogger(w io.Writer, level string, opts ...glog.Option) *glog.BaseLogger {
	if w == nil {
		w = os.Stderr
	}
	options := []glog.Option{
		glog.WithLoggerTypeJSON(),
		glog.WithLevel(NormalizeLevel(level)),
		glog.WithWriter(w),
	}
	options = append(options, opts...)
	return glog.NewLogger(options...)
}
