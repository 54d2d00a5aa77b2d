package config

import (
	"fmt"
	"io"
	"log/slog"
)

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
	return l, nil
}

// SetupLogging installs a text handler on w as the default slog logger.
func SetupLogging(w io.Writer, level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
	return nil
}
