package logger

import (
	"os"

	"gitlab.com/markorv.net/isaharness/internal/adapter/logging"
)

var Logger = logging.NewZapLoggerWithLevel(os.Getenv("LOG_LEVEL"))

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}

// Init replaces the global logger once the log level is known
func Init(level string) {
	Logger = logging.NewZapLoggerWithLevel(level)
}
