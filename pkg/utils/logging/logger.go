package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logsDir is where per-run log files are written.
const logsDir = "logs"

// InitLogger initializes a zap logger for one CLI run. Console output is
// human-readable at Info level; a JSON file under logs/, named after the
// run, captures Debug and above. The run ID is attached to every entry and
// returned so callers can correlate persisted rosters with their log file.
func InitLogger(env string) (*zap.Logger, string, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	runID := uuid.New().String()
	logFile, err := os.Create(filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", env, runID)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	core := zapcore.NewTee(
		consoleCore(zapcore.InfoLevel),
		fileCore(logFile, zapcore.DebugLevel),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("app", "optiroster"),
			zap.String("env", env),
			zap.String("run_id", runID),
		),
	)

	return logger, runID, nil
}

// consoleCore writes colored, human-readable entries to stdout.
func consoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stdout), level)
}

// fileCore writes JSON entries to the per-run log file.
func fileCore(file *os.File, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(file), level)
}
