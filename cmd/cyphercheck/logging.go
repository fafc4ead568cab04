package main

import (
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/guillermoBallester/cyphercheck/internal/config"
	"github.com/lmittmann/tint"
)

// newLogger writes to w, which is stderr in production: stdout carries the
// report and the MCP stdio transport.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))
}

// redactURI hides the password in a URI's userinfo, if any.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
