package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

func (c *LogConfig) validate() error {
	el := errors.NewErrorList()

	if c.Level != "" {
		var lvl slog.Level
		err := lvl.UnmarshalText([]byte(c.Level))
		if err != nil {
			el.Add(fmt.Errorf("log.level: %w", err))
		}
	}

	switch c.Format {
	case "", "text", "json":
	default:
		el.Add(fmt.Errorf("log.format must be text or json"))
	}

	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		el.Add(fmt.Errorf("log rotation limits must not be negative"))
	}

	return el.Err()
}

// buildLogger returns a logger writing to stderr, or to a rotating file when
// one is configured.
func (c *LogConfig) buildLogger() (*slog.Logger, error) {
	var lvl slog.Level
	if c.Level != "" {
		err := lvl.UnmarshalText([]byte(c.Level))
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}

	var out io.Writer = os.Stderr
	if c.File != "" {
		out = &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	}
	return slog.New(slog.NewTextHandler(out, opts)), nil
}
