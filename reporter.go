package sitrep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sitrep/pkg/content"
	"github.com/dmitrymomot/sitrep/pkg/email"
	"github.com/dmitrymomot/sitrep/pkg/email/templates"
	"github.com/dmitrymomot/sitrep/pkg/logger"
	"github.com/dmitrymomot/sitrep/pkg/markdown"
)

// Reporter runs one collect, render and deliver cycle.
type Reporter struct {
	cfg      Config
	sender   email.EmailSender
	log      *slog.Logger
	renderer *markdown.Renderer
	now      func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRenderer replaces the default Markdown renderer.
func WithRenderer(m *markdown.Renderer) Option {
	return func(r *Reporter) {
		if m != nil {
			r.renderer = m
		}
	}
}

// WithClock overrides the time source used for subjects and the footer.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Reporter. The config is expected to be validated already.
func New(cfg Config, sender email.EmailSender, opts ...Option) *Reporter {
	r := &Reporter{
		cfg:      cfg,
		sender:   sender,
		log:      slog.Default(),
		renderer: markdown.NewRenderer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("reporter"))
	return r
}

// Run delivers the current report to every recipient.
//
// It returns ErrNothingToSend when there is no content; nothing is sent in
// that case. Per-recipient failures are reported in the Summary only.
func (r *Reporter) Run(ctx context.Context) (Summary, error) {
	if r.sender == nil {
		return Summary{}, errors.New("sitrep: nil email sender")
	}

	dir := content.ResolveDir(r.cfg.ReportsDir, r.cfg.ReportPeriod)
	r.log.DebugContext(ctx, "collecting reports", logger.Path(dir))

	c, err := content.Collect(dir)
	if err != nil {
		if errors.Is(err, content.ErrNoContent) {
			r.log.WarnContext(ctx, "no report content found, nothing to send", logger.Path(dir))
			return Summary{}, ErrNothingToSend
		}
		return Summary{}, err
	}
	r.log.InfoContext(ctx, "collected reports", logger.Path(dir), logger.Count(len(c.Files)))

	res := r.renderer.Render(c.Body, c.Dir)
	if res.Err != nil {
		r.log.WarnContext(ctx, "markdown rendering failed, sending escaped source", logger.Error(res.Err))
	}

	now := r.now()
	subject := Subject(r.cfg.Subject, c.Subject, r.cfg.ReportPeriod, now)

	doc, err := templates.Render(ctx, templates.Report(templates.ReportData{
		Title:       subject,
		Period:      PeriodLabel(r.cfg.ReportPeriod),
		Body:        res.HTML,
		GeneratedAt: now,
	}))
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	msg := Message{
		Subject:     subject,
		HTML:        doc,
		Attachments: LoadAttachments(ctx, r.log, res.Attachments),
	}
	r.log.DebugContext(ctx, "report ready",
		slog.String("subject", subject),
		slog.Int("attachments", len(msg.Attachments)),
	)

	return Dispatch(ctx, r.sender, r.log, msg, r.cfg.Recipients), nil
}
