package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOptions окружение и уровень логирования из конфига
type LoggerOptions struct {
	Environment string
	// Пустой уровень: info в production, debug в остальных окружениях
	Level string
}

// NewLogger собирает логгер поверх stdout: JSON в production, консоль в остальных окружениях
func NewLogger(opts LoggerOptions) (*zap.Logger, error) {
	production := opts.Environment == "production"

	level := zapcore.DebugLevel
	if production {
		level = zapcore.InfoLevel
	}
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	core := zapcore.NewCore(newEncoder(production), zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))

	zapOpts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", "pt_scheduler"), zap.String("env", opts.Environment)),
	}
	if !production {
		zapOpts = append(zapOpts, zap.Development())
	}

	return zap.New(core, zapOpts...).Named("pt_scheduler"), nil
}

func newEncoder(production bool) zapcore.Encoder {
	if production {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeDuration = zapcore.MillisDurationEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapcore.NewConsoleEncoder(cfg)
}
