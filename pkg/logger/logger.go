package logger

import (
	"os"
	"path/filepath"

	"github.com/Payphone-Digital/accounts/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	l, err := New(cfg.App.Environment, cfg.App.LogsPath)
	if err != nil {
		return err
	}

	Logger = l
	Sugar = Logger.Sugar()
	return nil
}

// New builds a JSON logger writing to stdout, errors also to stderr. When
// logsPath is set, info.log and error.log are appended under it as well.
func New(environment, logsPath string) (*zap.Logger, error) {
	// Configure log level based on environment
	zapLevel := zapcore.DebugLevel
	if environment == "production" {
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	infoSink := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	errorSink := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}

	if logsPath != "" {
		if err := os.MkdirAll(logsPath, 0755); err != nil {
			return nil, err
		}

		infoFile, err := os.OpenFile(filepath.Join(logsPath, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}

		errorFile, err := os.OpenFile(filepath.Join(logsPath, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			infoFile.Close()
			return nil, err
		}

		infoSink = append(infoSink, zapcore.AddSync(infoFile))
		errorSink = append(errorSink, zapcore.AddSync(errorFile))
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if environment == "production" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	infoCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(infoSink...),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l < zapcore.ErrorLevel
		}),
	)

	errorCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(errorSink...),
		zapcore.ErrorLevel,
	)

	core := zapcore.NewTee(infoCore, errorCore)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// GetLogger returns the structured logger. Before InitLogger runs (tests,
// tooling) it returns a no-op logger.
func GetLogger() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// SetLogger replaces the global logger, mostly for tests that observe output.
func SetLogger(l *zap.Logger) {
	Logger = l
	if l != nil {
		Sugar = l.Sugar()
	}
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogRequest logs HTTP request information
func LogRequest(method, path string, statusCode int, duration int64, clientIP string, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", duration),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

// LogPanic logs panic and recovers
func LogPanic(recovered interface{}) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogAuth logs authentication events
func LogAuth(userID, action string, success bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.Bool("success", success),
	}, fields...)

	if success {
		GetLogger().Info("Authentication success", allFields...)
	} else {
		GetLogger().Warn("Authentication failure", allFields...)
	}
}
