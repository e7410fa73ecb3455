// Package email provides a small interface for sending transactional emails,
// a Resend HTTP implementation and a disk-backed sender for dry runs.
//
// # Architecture
//
// The package is built around the EmailSender interface:
//   - NewResendClient posts each email as JSON to the Resend /emails endpoint
//     with bearer-token authorization and a bounded request timeout.
//   - NewDevSender writes each email as an HTML file plus JSON metadata.
//
// Both implementations validate SendEmailParams before doing any work.
//
// # Usage
//
//	client, err := email.NewResendClient(email.Config{
//	    APIKey:      "re_123",
//	    SenderEmail: "Reports <reports@example.com>",
//	})
//	if err != nil {
//	    // Handle configuration error
//	}
//
//	chart, err := email.NewInlineAttachment("reports/weekly/chart.png", "image/png", cid)
//	if err != nil {
//	    // Unreadable file
//	}
//
//	err = client.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:      "team@example.com",
//	    Subject:     "Weekly Sitrep",
//	    BodyHTML:    htmlContent,
//	    Attachments: []email.Attachment{chart},
//	})
//
// Rendering the report document lives in the templates subpackage:
//
//	html, err := templates.Render(ctx, templates.Report(data))
//
// # Configuration
//
// Config is meant to be embedded in an app config parsed by caarlos0/env:
//   - APIKey (RESEND_API_KEY): provider key, required for Resend
//   - SenderEmail (SENDER_EMAIL): from address, required for Resend
//   - APIURL (RESEND_API_URL): base URL, defaults to https://api.resend.com
//   - Timeout (EMAIL_TIMEOUT): per-request timeout, defaults to 10s
//
// # Error Handling
//
// The package provides sentinel errors for common failure scenarios:
//   - ErrInvalidConfig: Configuration validation failed
//   - ErrInvalidParams: Email parameters validation failed
//   - ErrFailedToSendEmail: Email delivery failed (non-2xx status or transport error)
//   - ErrAttachment: An attachment file could not be read
//
// All errors can be checked using errors.Is():
//
//	if errors.Is(err, email.ErrFailedToSendEmail) {
//	    // Log and move on to the next recipient
//	}
package email
