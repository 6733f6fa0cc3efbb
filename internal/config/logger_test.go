package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"debug uppercase", "DEBUG", zapcore.DebugLevel},
		{"info lowercase", "info", zapcore.InfoLevel},
		{"info uppercase", "INFO", zapcore.InfoLevel},
		{"warn lowercase", "warn", zapcore.WarnLevel},
		{"warning", "warning", zapcore.WarnLevel},
		{"error lowercase", "error", zapcore.ErrorLevel},
		{"error uppercase", "ERROR", zapcore.ErrorLevel},
		{"invalid string", "invalid", zapcore.InfoLevel},
		{"empty string", "", zapcore.InfoLevel},
		{"padded", "  debug ", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLogLevel(tt.level)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{
			name:    "debug level",
			cfg:     LogConfig{Level: "debug"},
			wantErr: false,
		},
		{
			name:    "info level",
			cfg:     LogConfig{Level: "info"},
			wantErr: false,
		},
		{
			name:    "warn level",
			cfg:     LogConfig{Level: "warn"},
			wantErr: false,
		},
		{
			name:    "error level",
			cfg:     LogConfig{Level: "error"},
			wantErr: false,
		},
		{
			name:    "default level (empty)",
			cfg:     LogConfig{Level: ""},
			wantErr: false,
		},
		{
			name:    "console format at info",
			cfg:     LogConfig{Level: "info", Format: "console"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("NewLogger() returned nil logger")
			}
			if logger != nil {
				logger.Sync()
			}
		})
	}
}

func TestLogEncoding(t *testing.T) {
	tests := []struct {
		format string
		level  zapcore.Level
		want   string
	}{
		{"", zapcore.InfoLevel, LogFormatJSON},
		{"", zapcore.DebugLevel, LogFormatConsole},
		{"json", zapcore.DebugLevel, LogFormatJSON},
		{"Console", zapcore.ErrorLevel, LogFormatConsole},
		{"yaml", zapcore.InfoLevel, LogFormatJSON},
	}
	for _, tt := range tests {
		if got := logEncoding(tt.format, tt.level); got != tt.want {
			t.Errorf("logEncoding(%q, %v) = %q, want %q", tt.format, tt.level, got, tt.want)
		}
	}
}

func TestNewLogger_AppFieldAndOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger(LogConfig{Level: "info", Format: "json", App: "naver-proxy", Output: path})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("started")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(data, &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, data)
	}
	if line["app"] != "naver-proxy" {
		t.Errorf("app = %v, want naver-proxy", line["app"])
	}
	if line["msg"] != "started" {
		t.Errorf("msg = %v, want started", line["msg"])
	}
	if _, ok := line["timestamp"]; !ok {
		t.Error("timestamp key missing")
	}
}

func TestOutputPaths(t *testing.T) {
	if got := outputPaths(""); len(got) != 1 || got[0] != "stderr" {
		t.Errorf("outputPaths(\"\") = %v, want [stderr]", got)
	}
	if got := outputPaths("stdout"); got[0] != "stdout" {
		t.Errorf("outputPaths(stdout) = %v", got)
	}
}
