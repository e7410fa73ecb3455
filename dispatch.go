package sitrep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sitrep/pkg/email"
	"github.com/dmitrymomot/sitrep/pkg/logger"
	"github.com/dmitrymomot/sitrep/pkg/markdown"
)

// SendResult is the outcome of one delivery.
type SendResult struct {
	Recipient string
	Success   bool
	// Detail is empty on success and holds the failure reason otherwise.
	Detail string
}

// Summary lists delivery results in recipient order.
type Summary struct {
	Results []SendResult
}

// Sent returns the number of successful deliveries.
func (s Summary) Sent() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of failed deliveries.
func (s Summary) Failed() int {
	return len(s.Results) - s.Sent()
}

// Message is the email shared by every recipient.
type Message struct {
	Subject     string
	HTML        string
	Attachments []email.Attachment
}

// Dispatch sends msg to each recipient in order, one request each.
// A failed delivery is logged and recorded; the remaining recipients are
// still attempted. Dispatch never returns an error.
func Dispatch(ctx context.Context, sender email.EmailSender, log *slog.Logger, msg Message, recipients []string) Summary {
	if log == nil {
		log = slog.Default()
	}

	summary := Summary{Results: make([]SendResult, 0, len(recipients))}
	for _, to := range recipients {
		if !email.IsValidAddress(to) {
			log.WarnContext(ctx, "recipient does not look like an email address, sending anyway", logger.Recipient(to))
		}

		start := time.Now()
		err := send(ctx, sender, email.SendEmailParams{
			SendTo:      to,
			Subject:     msg.Subject,
			BodyHTML:    msg.HTML,
			Attachments: msg.Attachments,
		})

		res := SendResult{Recipient: to, Success: err == nil}
		if err != nil {
			res.Detail = err.Error()
			log.ErrorContext(ctx, "email delivery failed",
				logger.Event("email.failed"),
				logger.Recipient(to),
				logger.Error(err),
			)
		} else {
			log.InfoContext(ctx, "email sent",
				logger.Success(),
				logger.Event("email.sent"),
				logger.Recipient(to),
				logger.Duration(time.Since(start).Round(time.Millisecond)),
			)
		}
		summary.Results = append(summary.Results, res)
	}

	level := slog.LevelInfo
	if summary.Failed() > 0 {
		level = slog.LevelWarn
	}
	log.Log(ctx, level, "delivery finished",
		logger.Group("delivery",
			slog.Int("sent", summary.Sent()),
			slog.Int("failed", summary.Failed()),
			logger.Count(len(recipients)),
		),
	)
	return summary
}

// send isolates a panicking sender to the recipient being processed.
func send(ctx context.Context, sender email.EmailSender, params email.SendEmailParams) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: sender panicked: %v", email.ErrFailedToSendEmail, r)
		}
	}()
	return sender.SendEmail(ctx, params)
}

// LoadAttachments reads the images discovered by the renderer.
// Files that cannot be read are logged and left out.
func LoadAttachments(ctx context.Context, log *slog.Logger, found []markdown.Attachment) []email.Attachment {
	if len(found) == 0 {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}

	out := make([]email.Attachment, 0, len(found))
	for _, a := range found {
		att, err := email.NewInlineAttachment(a.Path, a.MIMEType, a.ContentID)
		if err != nil {
			log.WarnContext(ctx, "skipping attachment", logger.Path(a.Path), logger.Error(err))
			continue
		}
		out = append(out, att)
	}
	return out
}
