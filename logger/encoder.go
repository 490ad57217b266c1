package logger

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// newConsoleEncoder builds the human-readable encoder used outside --json mode:
// short clock time, coloured level, logger name, message, then fields.
func newConsoleEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout(time.TimeOnly),
		EncodeDuration:   zapcore.MillisDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewConsoleEncoder(cfg)
}
