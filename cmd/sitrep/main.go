// Command sitrep collects the current report files and emails them to the
// configured recipients. It is meant to run from a scheduler.
//
// Exit codes: 0 on success or when there is nothing to send, 1 on invalid
// configuration or any unexpected failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/dmitrymomot/sitrep"
	"github.com/dmitrymomot/sitrep/pkg/email"
	"github.com/dmitrymomot/sitrep/pkg/logger"
)

const (
	exitOK    = 0
	exitError = 1
)

// newSender builds the delivery backend for a validated config.
var newSender = func(cfg sitrep.Config) (email.EmailSender, error) {
	if cfg.OutputDir != "" {
		return email.NewDevSender(cfg.OutputDir), nil
	}
	return email.NewResendClient(cfg.Email)
}

func main() {
	os.Exit(run(context.Background(), nil, os.Stderr))
}

// run performs one delivery cycle and returns the process exit code.
// A nil environ means the process environment plus an optional .env file.
func run(parent context.Context, environ map[string]string, stderr io.Writer) (code int) {
	log := slog.Default()
	withStack := false
	defer func() {
		if r := recover(); r != nil {
			attrs := []any{slog.String("panic", fmt.Sprint(r))}
			if withStack {
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			}
			log.Error("unexpected failure", attrs...)
			code = exitError
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = sitrep.WithRunID(ctx)

	cfg, cfgErr := loadConfig(environ)
	withStack = cfg.IsDebug()
	log = newLogger(cfg, stderr)

	if cfgErr != nil {
		log.ErrorContext(ctx, "configuration error", logger.Error(cfgErr))
		return exitError
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to create email sender", logger.Error(err))
		return exitError
	}

	log.InfoContext(ctx, "starting report delivery",
		logger.Event("run.start"),
		slog.String("period", cfg.ReportPeriod),
		logger.Count(len(cfg.Recipients)),
	)

	summary, err := sitrep.New(cfg, sender, sitrep.WithLogger(log)).Run(ctx)
	switch {
	case errors.Is(err, sitrep.ErrNothingToSend):
		return exitOK
	case err != nil:
		attrs := []any{logger.Errors(err, context.Cause(ctx))}
		if withStack {
			attrs = append(attrs, slog.String("stack", string(debug.Stack())))
		}
		log.ErrorContext(ctx, "report delivery failed", attrs...)
		return exitError
	}

	// Failed deliveries are reported but do not change the exit status.
	if summary.Sent() == 0 && summary.Failed() > 0 {
		log.WarnContext(ctx, "no recipient received the report", logger.Event("run.undelivered"))
	}
	return exitOK
}

func loadConfig(environ map[string]string) (sitrep.Config, error) {
	if environ == nil {
		return sitrep.LoadConfig()
	}
	return sitrep.ConfigFromEnv(environ)
}

func newLogger(cfg sitrep.Config, w io.Writer) *slog.Logger {
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		format = logger.FormatTerminal
	}
	log := logger.New(
		logger.WithFormat(format),
		logger.WithOutput(w),
		logger.WithDebug(cfg.IsDebug()),
		logger.WithService("sitrep"),
		logger.WithContextExtractors(runID),
	)
	logger.SetAsDefault(log)
	return log
}

func runID(ctx context.Context) (slog.Attr, bool) {
	id := sitrep.RunIDFromContext(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.RunID(id), true
}
