package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerHonorsLevel(t *testing.T) {
	cases := []struct {
		level   string
		debugOn bool
		infoOn  bool
		warnOn  bool
	}{
		{level: "debug", debugOn: true, infoOn: true, warnOn: true},
		{level: "info", debugOn: false, infoOn: true, warnOn: true},
		{level: "warn", debugOn: false, infoOn: false, warnOn: true},
		{level: "", debugOn: false, infoOn: true, warnOn: true},
		{level: "bogus", debugOn: false, infoOn: true, warnOn: true},
	}
	for _, tc := range cases {
		logger := newLogger(tc.level)
		core := logger.Core()
		if core.Enabled(zapcore.DebugLevel) != tc.debugOn ||
			core.Enabled(zapcore.InfoLevel) != tc.infoOn ||
			core.Enabled(zapcore.WarnLevel) != tc.warnOn {
			t.Fatalf("level %q: unexpected enabled levels", tc.level)
		}
	}
}
