package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
)

// Setup initializes Logrus via a rotating file so terminal output stays
// clean while every request still leaves a trace.
func Setup(logFile, level string) {
	// 1) Lumberjack for file rotation
	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 7,  // keep up to 7 old files
		MaxAge:     7,  // days
		Compress:   true,
	}

	// 2) Configure Logrus to write to that file
	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(parseLevel(level))
}

func parseLevel(level string) logrus.Level {
	if lv, err := logrus.ParseLevel(level); err == nil {
		return lv
	}
	return logrus.InfoLevel
}

// L returns the standard Logrus logger the rest of the client logs through.
func L() *logrus.Logger {
	return logrus.StandardLogger()
}
