// Package sitrep turns a directory of Markdown reports into a styled HTML
// email and delivers it to every configured recipient.
//
// A run collects the report files, renders them with goldmark, wraps the
// fragment in a self-contained HTML document and sends one request per
// recipient through an email.EmailSender.
//
// Basic usage:
//
//	cfg, err := sitrep.LoadConfig()
//	if err != nil {
//		// errors.Is(err, sitrep.ErrConfiguration)
//	}
//
//	sender, err := email.NewResendClient(cfg.Email)
//	if err != nil {
//		// handle error
//	}
//
//	summary, err := sitrep.New(cfg, sender, sitrep.WithLogger(log)).Run(ctx)
//	switch {
//	case errors.Is(err, sitrep.ErrNothingToSend):
//		// no content, nothing was sent
//	case err != nil:
//		// fatal
//	}
//	log.Info("done", "sent", summary.Sent(), "failed", summary.Failed())
//
// Delivery failures never abort a run. They are logged and reported in the
// returned Summary.
package sitrep
