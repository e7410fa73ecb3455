package sitrep_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitrep"
	"github.com/dmitrymomot/sitrep/pkg/email"
)

type resendRecorder struct {
	mu       sync.Mutex
	requests []map[string]any
	fail     map[string]bool
}

func (r *resendRecorder) handler(w http.ResponseWriter, req *http.Request) {
	raw, _ := io.ReadAll(req.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	r.mu.Lock()
	r.requests = append(r.requests, body)
	r.mu.Unlock()

	to := ""
	if list, ok := body["to"].([]any); ok && len(list) == 1 {
		to, _ = list[0].(string)
	}
	w.Header().Set("Content-Type", "application/json")
	if r.fail[to] {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"name":"validation_error","message":"rejected"}`)
		return
	}
	_, _ = io.WriteString(w, `{"id":"email-id"}`)
}

func newRecorder(t *testing.T, fail ...string) (*resendRecorder, *httptest.Server) {
	t.Helper()
	rec := &resendRecorder{fail: map[string]bool{}}
	for _, f := range fail {
		rec.fail[f] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	t.Cleanup(srv.Close)
	return rec, srv
}

func reporterConfig(t *testing.T, apiURL, dir string, recipients ...string) sitrep.Config {
	t.Helper()
	raw, err := json.Marshal(recipients)
	require.NoError(t, err)

	cfg, err := sitrep.ConfigFromEnv(map[string]string{
		"RESEND_API_KEY":  "re_test",
		"SENDER_EMAIL":    "reports@example.com",
		"RECIPIENT_EMAIL": string(raw),
		"RESEND_API_URL":  apiURL,
		"REPORTS_DIR":     dir,
	})
	require.NoError(t, err)
	return cfg
}

func newReporter(t *testing.T, cfg sitrep.Config, buf *bytes.Buffer) *sitrep.Reporter {
	t.Helper()
	sender, err := email.NewResendClient(cfg.Email)
	require.NoError(t, err)
	return sitrep.New(cfg, sender,
		sitrep.WithLogger(testLogger(buf)),
		sitrep.WithClock(func() time.Time { return time.Date(2024, 3, 8, 9, 30, 0, 0, time.Local) }),
	)
}

func TestReporter_Run_OnePostPerRecipient(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01-summary.md"), []byte("# Summary\n\nAll good."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-notes.html"), []byte("<p>raw html</p>"), 0o644))

	rec, srv := newRecorder(t)
	cfg := reporterConfig(t, srv.URL, dir, "a@example.com", "b@example.com")

	var buf bytes.Buffer
	summary, err := newReporter(t, cfg, &buf).Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Sent())
	assert.Equal(t, 0, summary.Failed())
	require.Len(t, rec.requests, 2)

	for i, to := range []string{"a@example.com", "b@example.com"} {
		body := rec.requests[i]
		assert.Equal(t, []any{to}, body["to"])
		assert.Equal(t, "reports@example.com", body["from"])
		assert.Equal(t, "Weekly Sitrep - 2024-03-08", body["subject"])

		html, _ := body["html"].(string)
		assert.Contains(t, html, "<!doctype html>")
		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, "All good.")
		assert.Contains(t, html, "<p>raw html</p>")
		assert.Contains(t, html, "Generated 2024-03-08 09:30:00")
		assert.NotContains(t, body, "attachments")
	}
}

func TestReporter_Run_EveryRecipientIsPosted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		recipients string
		want       []string
	}{
		{"punycode and single-label domains", `["ops@example.xn--p1ai","admin@localhost"]`, []string{"ops@example.xn--p1ai", "admin@localhost"}},
		{"malformed list is one literal recipient", "[broken", []string{"[broken"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "report.md"), []byte("hello"), 0o644))
			rec, srv := newRecorder(t)

			cfg, err := sitrep.ConfigFromEnv(map[string]string{
				"RESEND_API_KEY":  "re_test",
				"SENDER_EMAIL":    "reports@example.com",
				"RECIPIENT_EMAIL": tt.recipients,
				"RESEND_API_URL":  srv.URL,
				"REPORTS_DIR":     dir,
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.Recipients)

			var buf bytes.Buffer
			summary, err := newReporter(t, cfg, &buf).Run(t.Context())
			require.NoError(t, err)

			require.Len(t, rec.requests, len(tt.want), "exactly one POST per recipient")
			for i, to := range tt.want {
				assert.Equal(t, []any{to}, rec.requests[i]["to"])
			}
			assert.Equal(t, len(tt.want), summary.Sent())
		})
	}
}

func TestReporter_Run_NothingToSend(t *testing.T) {
	t.Parallel()

	tests := map[string]func(t *testing.T) string{
		"missing directory": func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") },
		"empty directory":   func(t *testing.T) string { return t.TempDir() },
		"whitespace only": func(t *testing.T) string {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("  \n\n "), 0o644))
			return dir
		},
		"no matching files": func(t *testing.T) string {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644))
			return dir
		},
	}

	for name, mkdir := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec, srv := newRecorder(t)
			cfg := reporterConfig(t, srv.URL, mkdir(t), "a@example.com")

			var buf bytes.Buffer
			summary, err := newReporter(t, cfg, &buf).Run(t.Context())
			require.ErrorIs(t, err, sitrep.ErrNothingToSend)
			assert.Empty(t, summary.Results)
			assert.Empty(t, rec.requests)
			assert.Contains(t, buf.String(), "nothing to send")
		})
	}
}

func TestReporter_Run_FailedRecipientDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.md"), []byte("hello"), 0o644))

	rec, srv := newRecorder(t, "a@example.com")
	cfg := reporterConfig(t, srv.URL, dir, "a@example.com", "b@example.com")

	var buf bytes.Buffer
	summary, err := newReporter(t, cfg, &buf).Run(t.Context())
	require.NoError(t, err)

	assert.Len(t, rec.requests, 2)
	require.Len(t, summary.Results, 2)
	assert.False(t, summary.Results[0].Success)
	assert.Contains(t, summary.Results[0].Detail, "rejected")
	assert.True(t, summary.Results[1].Success)
}

func TestReporter_Run_LocalImageAttachment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.md"),
		[]byte("![Chart](chart.png)\n\n![Again](chart.png)\n\n![Gone](missing.png)\n\n![Remote](https://example.com/r.png)"), 0o644))

	rec, srv := newRecorder(t)
	cfg := reporterConfig(t, srv.URL, dir, "a@example.com")

	var buf bytes.Buffer
	_, err := newReporter(t, cfg, &buf).Run(t.Context())
	require.NoError(t, err)
	require.Len(t, rec.requests, 1)

	body := rec.requests[0]
	html, _ := body["html"].(string)
	assert.Contains(t, html, "(attached: chart.png)")
	assert.Contains(t, html, "[image not found: Gone]")
	assert.Contains(t, html, `<img src="https://example.com/r.png" alt="Remote">`)

	atts, ok := body["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, atts, 1)
	att := atts[0].(map[string]any)
	assert.Equal(t, "chart.png", att["filename"])
	assert.Equal(t, "cG5nLWJ5dGVz", att["content"])
	assert.Equal(t, "image/png", att["type"])
	assert.Equal(t, "inline", att["disposition"])
	assert.NotEmpty(t, att["content_id"])
}

func TestReporter_Run_SubjectAndPeriodDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "root.md"), []byte("root content"), 0o644))
	monthly := filepath.Join(base, "monthly")
	require.NoError(t, os.Mkdir(monthly, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(monthly, "m.md"),
		[]byte("---\nsubject: March in review\n---\nmonthly content"), 0o644))

	sender := &MockEmailSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.Subject == "March in review" &&
			bytes.Contains([]byte(p.BodyHTML), []byte("monthly content")) &&
			!bytes.Contains([]byte(p.BodyHTML), []byte("root content")) &&
			bytes.Contains([]byte(p.BodyHTML), []byte("Monthly report"))
	})).Return(nil).Once()

	cfg, err := sitrep.ConfigFromEnv(map[string]string{
		"RESEND_API_KEY":  "re_test",
		"SENDER_EMAIL":    "reports@example.com",
		"RECIPIENT_EMAIL": "a@example.com",
		"REPORT_PERIOD":   "Monthly",
		"REPORTS_DIR":     base,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	summary, err := sitrep.New(cfg, sender, sitrep.WithLogger(testLogger(&buf))).Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent())
	sender.AssertExpectations(t)
}

func TestReporter_Run_SubjectOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.md"), []byte("---\nsubject: ignored\n---\nbody"), 0o644))

	sender := &MockEmailSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.Subject == "Ops digest"
	})).Return(nil).Once()

	cfg, err := sitrep.ConfigFromEnv(map[string]string{
		"RESEND_API_KEY":  "re_test",
		"SENDER_EMAIL":    "reports@example.com",
		"RECIPIENT_EMAIL": "a@example.com",
		"REPORTS_DIR":     dir,
		"REPORT_SUBJECT":  "Ops digest",
	})
	require.NoError(t, err)

	_, err = sitrep.New(cfg, sender).Run(t.Context())
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestReporter_Run_NilSender(t *testing.T) {
	t.Parallel()

	_, err := sitrep.New(sitrep.Config{}, nil).Run(t.Context())
	require.Error(t, err)
	assert.NotErrorIs(t, err, sitrep.ErrNothingToSend)
}
