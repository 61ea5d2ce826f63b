package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// loggerEncodingName selects the human-readable console encoder.
	loggerEncodingName = "console"
	// loggerMessageKey is the only encoder key the application logger emits.
	loggerMessageKey = "message"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
func NewApplicationLogger() (*zap.Logger, error) {
	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Encoding = loggerEncodingName
	loggerConfiguration.DisableCaller = true
	loggerConfiguration.DisableStacktrace = true
	loggerConfiguration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	loggerConfiguration.EncoderConfig.TimeKey = EmptyString
	loggerConfiguration.EncoderConfig.LevelKey = EmptyString
	loggerConfiguration.EncoderConfig.NameKey = EmptyString
	loggerConfiguration.EncoderConfig.CallerKey = EmptyString
	loggerConfiguration.EncoderConfig.MessageKey = loggerMessageKey
	loggerConfiguration.EncoderConfig.StacktraceKey = EmptyString
	return loggerConfiguration.Build()
}
