// Package sentryx wires error reporting; every helper is a no-op until Init
// succeeds with a DSN.
package sentryx

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/d60-Lab/starlog/config"
)

var enabled bool

func Init(cfg config.SentryConfig) error {
	if cfg.DSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return err
	}
	enabled = true
	return nil
}

func Enabled() bool { return enabled }

// Capture 上报一个被吞掉的错误，附带调用者身份
func Capture(ctx context.Context, err error, owner string) {
	if !enabled || err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if owner != "" {
			scope.SetUser(sentry.User{ID: owner})
		}
		hub.CaptureException(err)
	})
}

func Flush(timeout time.Duration) {
	if enabled {
		sentry.Flush(timeout)
	}
}
