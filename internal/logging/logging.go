// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abinexis/homepage-admin/internal/config"
)

// Setup configures the standard logrus logger. It returns a closer for the
// log file, which is a no-op when file logging is off.
func Setup(cfg config.LogConfig, environment string) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(formatter(cfg.Format, environment))

	if cfg.File == "" {
		logrus.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: 7,
		MaxAge:     7,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	return file, nil
}

func formatter(format, environment string) logrus.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &logrus.JSONFormatter{}
	case "text":
		return &logrus.TextFormatter{FullTimestamp: true}
	}
	if environment == "production" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
