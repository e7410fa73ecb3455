package email

import "time"

// DefaultAPIURL is the Resend API base URL.
const DefaultAPIURL = "https://api.resend.com"

// DefaultTimeout bounds every delivery request.
const DefaultTimeout = 10 * time.Second

// Config holds email provider configuration.
// Embed it in an app config for env parsing with caarlos0/env.
// APIKey and SenderEmail are required by NewResendClient; the dev sender
// needs neither.
type Config struct {
	APIKey      string        `env:"RESEND_API_KEY"`
	SenderEmail string        `env:"SENDER_EMAIL"`
	APIURL      string        `env:"RESEND_API_URL" envDefault:"https://api.resend.com"`
	Timeout     time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}
