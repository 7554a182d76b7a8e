package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// Init builds the process logger. Development gets a console encoder at debug level,
// everything else JSON at info level.
func Init(environment string) {
	level := zapcore.InfoLevel
	encoding := "json"
	if environment == "development" {
		level = zapcore.DebugLevel
		encoding = "console"
	}

	config := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "message",
			LevelKey:     "level",
			TimeKey:      "time",
			CallerKey:    "caller",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		os.Stderr.WriteString("logger init failed: " + err.Error() + "\n")
		return
	}

	log = l.Sugar()
}

// Sync flushes buffered entries.
func Sync() error {
	return log.Sync()
}

func Debug(msg string, args ...any) {
	log.Debugw(msg, fields(args)...)
}

func Info(msg string, args ...any) {
	log.Infow(msg, fields(args)...)
}

func Warn(msg string, args ...any) {
	log.Warnw(msg, fields(args)...)
}

func Error(msg string, args ...any) {
	log.Errorw(msg, fields(args)...)
}

func Fatal(msg string, args ...any) {
	log.Fatalw(msg, fields(args)...)
}

// fields accepts both key/value pairs and a single bare value such as an error.
func fields(args []any) []any {
	if len(args) == 1 {
		return []any{"error", args[0]}
	}
	return args
}
