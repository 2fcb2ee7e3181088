package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"utsavdarshan/config"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Setup points the standard logrus logger at a rotating file, and at stdout
// too when cfg.Stdout is set. Production uses JSON lines.
func Setup(cfg config.LogConfig, production bool) {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			logrus.WithError(err).Warn("logger: cannot create log directory, using stdout")
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB, // megabytes
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays, // days
				Compress:   cfg.Compress,
			}
			out = rotator
			if cfg.Stdout {
				out = io.MultiWriter(os.Stdout, rotator)
			}
		}
	}
	logrus.SetOutput(out)

	if production {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("logger: unknown level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
