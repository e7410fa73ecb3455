package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo      string       `json:"send_to"`               // Email address of the recipient
	Subject     string       `json:"subject"`               // Subject of the email
	BodyHTML    string       `json:"body_html"`             // HTML body of the email
	Attachments []Attachment `json:"attachments,omitempty"` // Optional inline attachments
}

// Validate checks that the recipient, subject and body are present.
// The recipient is not checked for syntax; the provider decides whether an
// address can receive mail.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}

// IsValidAddress reports whether s parses as an RFC 5322 address, with or
// without a display name. It is advisory only.
func IsValidAddress(s string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil
}
