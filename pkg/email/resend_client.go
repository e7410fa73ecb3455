package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

type resendClient struct {
	httpClient *http.Client
	endpoint   string
	config     Config
}

// ResendOption configures the Resend client.
type ResendOption func(*resendClient)

// WithHTTPClient replaces the HTTP client used for delivery.
// The client's own Timeout applies instead of Config.Timeout.
func WithHTTPClient(c *http.Client) ResendOption {
	return func(rc *resendClient) {
		if c != nil {
			rc.httpClient = c
		}
	}
}

type resendRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type resendErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NewResendClient creates a Resend-backed email sender.
// The API key and sender address are required; a zero Timeout falls back to
// DefaultTimeout so a request can never hang indefinitely.
func NewResendClient(cfg Config, opts ...ResendOption) (EmailSender, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.SenderEmail) == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &resendClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.APIURL, "/") + "/emails",
		config:     cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewResendClient creates a Resend client that panics on invalid config.
func MustNewResendClient(cfg Config, opts ...ResendOption) EmailSender {
	client, err := NewResendClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail posts one email to the Resend /emails endpoint.
// Every non-2xx status and every transport failure is reported as
// ErrFailedToSendEmail joined with the cause.
func (c *resendClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(resendRequest{
		From:        c.config.SenderEmail,
		To:          []string{params.SendTo},
		Subject:     params.Subject,
		HTML:        params.BodyHTML,
		Attachments: params.Attachments,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Join(ErrFailedToSendEmail, responseError(resp.StatusCode, excerpt))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func responseError(status int, body []byte) error {
	var re resendErrorResponse
	if err := json.Unmarshal(body, &re); err == nil && re.Message != "" {
		return fmt.Errorf("resend error: %d - %s", status, re.Message)
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("resend error: %d - %s", status, msg)
}
