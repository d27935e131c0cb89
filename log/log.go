// Package log provides a structured logging infrastructure with optional filesystem-based persistence.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/where"
)

// enabled indicates whether log emissions reach any output.
var enabled bool

// Setup initializes the logging subsystem from global configuration.
// File logging takes precedence over console logging; with both disabled every emission is discarded.
func Setup() error {
	var out io.Writer

	switch {
	case viper.GetBool(key.LogsWrite):
		dir := where.Logs()
		if dir == "" {
			return errors.New("log directory path is empty")
		}

		path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	case viper.GetBool(key.LogsConsole):
		out = os.Stderr
	default:
		enabled = false
		return nil
	}

	enabled = true
	logrus.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Enabled reports whether logging produces output.
func Enabled() bool {
	return enabled
}

// WithFields returns a logrus entry carrying the given structured fields.
// The entry writes to the discarded output when logging is disabled.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if !enabled {
		return discard.WithFields(fields)
	}
	return logrus.WithFields(fields)
}

var discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Level: logrus.PanicLevel, Hooks: make(logrus.LevelHooks)}

// Severity-Specific Log Emissions - these functions proxy messages to the configured backend when logging is enabled.

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
