package sitrep

import (
	"strings"

	"github.com/dmitrymomot/sitrep/pkg/config"
	"github.com/dmitrymomot/sitrep/pkg/email"
	"github.com/dmitrymomot/sitrep/pkg/logger"
)

// Config is the complete job configuration. It is built once at startup and
// passed explicitly to everything that needs it.
type Config struct {
	Email email.Config

	// LegacyAPIKey is accepted when RESEND_API_KEY is unset.
	LegacyAPIKey string `env:"API_KEY"`

	// RecipientList is the raw RECIPIENT_EMAIL value; Recipients is derived from it.
	RecipientList string   `env:"RECIPIENT_EMAIL"`
	Recipients    []string `env:"-"`

	ReportPeriod string `env:"REPORT_PERIOD" envDefault:"Weekly"`
	ReportsDir   string `env:"REPORTS_DIR" envDefault:"./reports"`
	Subject      string `env:"REPORT_SUBJECT"`

	// OutputDir switches delivery to files on disk.
	OutputDir string `env:"EMAIL_OUTPUT_DIR"`

	DebugValue string `env:"DEBUG"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"terminal"`
}

// LoadConfig reads the process environment, after loading .env if present.
// The parsed config is returned even when validation fails so the caller can
// still honor DEBUG and LOG_FORMAT while reporting the error.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return cfg, configParseError(err)
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

// ConfigFromEnv works like LoadConfig but reads only the given variables.
func ConfigFromEnv(environ map[string]string) (Config, error) {
	var cfg Config
	if err := config.LoadFrom(&cfg, environ); err != nil {
		return cfg, configParseError(err)
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

func configParseError(err error) error {
	e := NewConfigError()
	e.Add("environment", err.Error())
	return e
}

func (c *Config) normalize() {
	c.Email.APIKey = strings.TrimSpace(c.Email.APIKey)
	if c.Email.APIKey == "" {
		c.Email.APIKey = strings.TrimSpace(c.LegacyAPIKey)
	}
	c.Email.SenderEmail = strings.TrimSpace(c.Email.SenderEmail)
	c.Recipients = ParseRecipients(c.RecipientList)
	c.ReportPeriod = strings.TrimSpace(c.ReportPeriod)
	if c.ReportPeriod == "" {
		c.ReportPeriod = DefaultPeriod
	}
}

// Validate reports every missing required setting in one ConfigError.
func (c Config) Validate() error {
	e := NewConfigError()
	if c.Email.APIKey == "" {
		e.Add("RESEND_API_KEY", "is required")
	}
	if c.Email.SenderEmail == "" {
		e.Add("SENDER_EMAIL", "is required")
	}
	if len(c.Recipients) == 0 {
		e.Add("RECIPIENT_EMAIL", "is required")
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		e.Add("LOG_FORMAT", "must be one of terminal, text, json")
	}
	if e.IsEmpty() {
		return nil
	}
	return e
}

// IsDebug reports whether DEBUG holds a truthy value.
func (c Config) IsDebug() bool {
	switch strings.ToLower(strings.TrimSpace(c.DebugValue)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
