package sitrep_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitrep"
)

func validEnv() map[string]string {
	return map[string]string{
		"RESEND_API_KEY":  "re_test",
		"SENDER_EMAIL":    "reports@example.com",
		"RECIPIENT_EMAIL": "team@example.com",
	}
}

func TestParseRecipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain address", "a@example.com", []string{"a@example.com"}},
		{"trimmed address", "  a@example.com \n", []string{"a@example.com"}},
		{"json array", `["a@example.com","b@example.com"]`, []string{"a@example.com", "b@example.com"}},
		{"json array drops blanks", `["a@example.com", "  ", ""]`, []string{"a@example.com"}},
		{"malformed json is literal", "not-json[", []string{"not-json["}},
		{"broken array is literal", `["a@example.com"`, []string{`["a@example.com"`}},
		{"array of non-strings is literal", `[1,2]`, []string{`[1,2]`}},
		{"empty", "", nil},
		{"whitespace", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sitrep.ParseRecipients(tt.raw))
		})
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := sitrep.ConfigFromEnv(validEnv())
	require.NoError(t, err)

	assert.Equal(t, "re_test", cfg.Email.APIKey)
	assert.Equal(t, "reports@example.com", cfg.Email.SenderEmail)
	assert.Equal(t, []string{"team@example.com"}, cfg.Recipients)
	assert.Equal(t, "Weekly", cfg.ReportPeriod)
	assert.Equal(t, "./reports", cfg.ReportsDir)
	assert.Equal(t, "https://api.resend.com", cfg.Email.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "terminal", cfg.LogFormat)
	assert.False(t, cfg.IsDebug())
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Parallel()

	env := validEnv()
	env["RECIPIENT_EMAIL"] = `["a@example.com","b@example.com"]`
	env["REPORT_PERIOD"] = "monthly"
	env["REPORTS_DIR"] = "/srv/reports"
	env["EMAIL_TIMEOUT"] = "3s"
	env["REPORT_SUBJECT"] = "Custom"
	env["LOG_FORMAT"] = "json"
	env["DEBUG"] = "1"

	cfg, err := sitrep.ConfigFromEnv(env)
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients)
	assert.Equal(t, "monthly", cfg.ReportPeriod)
	assert.Equal(t, "/srv/reports", cfg.ReportsDir)
	assert.Equal(t, 3*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "Custom", cfg.Subject)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.IsDebug())
}

func TestConfigFromEnv_LegacyAPIKey(t *testing.T) {
	t.Parallel()

	env := validEnv()
	delete(env, "RESEND_API_KEY")
	env["API_KEY"] = "legacy"

	cfg, err := sitrep.ConfigFromEnv(env)
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Email.APIKey)

	env["RESEND_API_KEY"] = "preferred"
	cfg, err = sitrep.ConfigFromEnv(env)
	require.NoError(t, err)
	assert.Equal(t, "preferred", cfg.Email.APIKey)
}

func TestConfigFromEnv_MissingRequired(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"RESEND_API_KEY", "SENDER_EMAIL", "RECIPIENT_EMAIL"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			env := validEnv()
			delete(env, name)

			_, err := sitrep.ConfigFromEnv(env)
			require.Error(t, err)
			assert.ErrorIs(t, err, sitrep.ErrConfiguration)
			assert.Contains(t, err.Error(), name)

			var cerr sitrep.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.True(t, cerr.Has(name))
		})
	}
}

func TestConfigFromEnv_EmptyEnvironment(t *testing.T) {
	t.Parallel()

	cfg, err := sitrep.ConfigFromEnv(nil)
	require.ErrorIs(t, err, sitrep.ErrConfiguration)
	assert.Equal(t,
		"sitrep: invalid configuration: RECIPIENT_EMAIL: is required, RESEND_API_KEY: is required, SENDER_EMAIL: is required",
		err.Error(),
	)
	assert.Equal(t, "Weekly", cfg.ReportPeriod)
}

func TestConfigFromEnv_BlankValuesAreMissing(t *testing.T) {
	t.Parallel()

	env := validEnv()
	env["SENDER_EMAIL"] = "   "
	env["RECIPIENT_EMAIL"] = `[" "]`

	_, err := sitrep.ConfigFromEnv(env)
	require.ErrorIs(t, err, sitrep.ErrConfiguration)
	assert.Contains(t, err.Error(), "SENDER_EMAIL")
	assert.Contains(t, err.Error(), "RECIPIENT_EMAIL")
}

func TestConfigFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	env := validEnv()
	env["EMAIL_TIMEOUT"] = "soon"
	_, err := sitrep.ConfigFromEnv(env)
	assert.ErrorIs(t, err, sitrep.ErrConfiguration)

	env = validEnv()
	env["LOG_FORMAT"] = "xml"
	_, err = sitrep.ConfigFromEnv(env)
	require.ErrorIs(t, err, sitrep.ErrConfiguration)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoadConfig_ProcessEnvironment(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_env")
	t.Setenv("SENDER_EMAIL", "reports@example.com")
	t.Setenv("RECIPIENT_EMAIL", "ops@example.com")
	t.Setenv("REPORT_PERIOD", "daily")

	cfg, err := sitrep.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "re_env", cfg.Email.APIKey)
	assert.Equal(t, []string{"ops@example.com"}, cfg.Recipients)
	assert.Equal(t, "daily", cfg.ReportPeriod)
}

func TestConfig_IsDebug(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"OFF":   false,
		"no":    false,
		"1":     true,
		"true":  true,
		"yes":   true,
	} {
		cfg := sitrep.Config{DebugValue: value}
		assert.Equal(t, want, cfg.IsDebug(), "DEBUG=%q", value)
	}
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	e := sitrep.NewConfigError()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "sitrep: invalid configuration", e.Error())

	e.Add("B_VAR", "is required")
	e.Add("A_VAR", "is invalid")
	e.Add("A_VAR", "second message")

	assert.False(t, e.IsEmpty())
	assert.True(t, e.Has("A_VAR"))
	assert.False(t, e.Has("C_VAR"))
	assert.Equal(t, "is invalid", e.Get("A_VAR"))
	assert.Equal(t, "sitrep: invalid configuration: A_VAR: is invalid, B_VAR: is required", e.Error())
	assert.ErrorIs(t, e, sitrep.ErrConfiguration)
}
