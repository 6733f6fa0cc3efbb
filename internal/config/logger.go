package config

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	defaultAppName = "naver-search"
)

// NewLogger собирает zap-логгер по LogConfig.
// Логи всегда уходят в Output (по умолчанию stderr): stdout занят выводом `search --json`.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level := parseLogLevel(cfg.Level)

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      level == zapcore.DebugLevel,
		Encoding:         logEncoding(cfg.Format, level),
		EncoderConfig:    encoderConfig(logEncoding(cfg.Format, level)),
		OutputPaths:      outputPaths(cfg.Output),
		ErrorOutputPaths: []string{"stderr"},
	}
	if !zcfg.Development {
		zcfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	app := strings.TrimSpace(cfg.App)
	if app == "" {
		app = defaultAppName
	}
	return logger.With(zap.String("app", app)), nil
}

// logEncoding: явный LOG_FORMAT важнее, иначе debug - console, остальное - json
func logEncoding(format string, level zapcore.Level) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case LogFormatConsole:
		return LogFormatConsole
	case LogFormatJSON:
		return LogFormatJSON
	}
	if level == zapcore.DebugLevel {
		return LogFormatConsole
	}
	return LogFormatJSON
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	if encoding == LogFormatConsole {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		return ec
	}

	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.CallerKey = "caller"
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return ec
}

func outputPaths(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return []string{"stderr"}
	}
	return []string{output}
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
