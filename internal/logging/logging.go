package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to w at the named level.
// An empty level yields a no-op logger.
func New(level string, w io.Writer) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "off" {
		return zap.NewNop(), nil
	}

	atom := zap.NewAtomicLevel()
	if err := atom.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		TimeKey:     "time",
		LevelKey:    "level",
		EncodeTime:  zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), atom)
	return zap.New(core), nil
}

// Or returns logger, or a no-op logger when it is nil.
func Or(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
