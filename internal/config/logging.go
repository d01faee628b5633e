package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// SetupLogging configures every given logger the same way: level from the
// config (debug is forced in development), colored text in development and
// JSON in production, plus an optional rotating file.
func SetupLogging(c *Config, loggers ...*logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	if c.Development() && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}

	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if c.Development() {
		formatter = &logrus.TextFormatter{ForceColors: true}
	}

	var hook logrus.Hook
	if c.Log.File != "" {
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSize,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAge,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
	}

	for _, log := range loggers {
		log.SetLevel(level)
		log.SetFormatter(formatter)
		if hook != nil {
			log.AddHook(hook)
		}
	}
	return nil
}
