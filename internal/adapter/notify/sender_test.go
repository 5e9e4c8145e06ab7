package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/retry"
)

// recordingSender fails the first failures calls, then records messages.
type recordingSender struct {
	failures int
	err      error
	calls    int
	sent     []Message
}

func (r *recordingSender) Name() string { return "recording" }

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.calls++
	if r.calls <= r.failures {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestNotifier_SendsOneMessagePerDestination(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, 1, nil)

	err := n.Notify(context.Background(), "me@example.com", sampleResults())
	require.NoError(t, err)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Flights to Barcelona", sender.sent[0].Subject)
	assert.Equal(t, "Flights to Paris", sender.sent[1].Subject)
}

func TestNotifier_EmptyResultsSendNothing(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, 1, nil)

	require.NoError(t, n.Notify(context.Background(), "me@example.com", domain.NewGroupedResults()))
	assert.Zero(t, sender.calls)
}

func TestNotifier_SingleAttemptFailureIsReported(t *testing.T) {
	sender := &recordingSender{failures: 1, err: errors.New("connection refused")}
	n := NewNotifier(sender, 1, nil)

	err := n.Notify(context.Background(), "me@example.com", sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Flights to Barcelona")
	assert.Contains(t, err.Error(), "connection refused")

	// The second destination is still delivered.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Flights to Paris", sender.sent[0].Subject)
}

func TestNotifier_RetriesTransientFailure(t *testing.T) {
	sender := &recordingSender{failures: 1, err: errors.New("421 busy")}
	n := NewNotifier(sender, 2, nil)
	n.retry = n.retry.WithInitialDelay(0)

	err := n.Notify(context.Background(), "me@example.com", sampleResults())
	require.NoError(t, err)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, 3, sender.calls)
}

func TestNotifier_PermanentFailureNotRetried(t *testing.T) {
	sender := &recordingSender{failures: 1, err: retry.NewPermanent(errors.New("bad address"))}
	n := NewNotifier(sender, 5, nil)
	n.retry = n.retry.WithInitialDelay(0)

	err := n.Notify(context.Background(), "me@example.com", sampleResults())
	require.Error(t, err)
	assert.Equal(t, 2, sender.calls)
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func(c *Config)
		wantName string
		wantErr  string
	}{
		{name: "default is log", cfg: func(c *Config) {}, wantName: ProviderLog},
		{name: "empty is log", cfg: func(c *Config) { c.Provider = "" }, wantName: ProviderLog},
		{name: "smtp", cfg: func(c *Config) { c.Provider = "smtp"; c.SMTP.Host = "smtp.example.com" }, wantName: ProviderSMTP},
		{name: "smtp upper case", cfg: func(c *Config) { c.Provider = "SMTP"; c.SMTP.Host = "smtp.example.com" }, wantName: ProviderSMTP},
		{name: "smtp without host", cfg: func(c *Config) { c.Provider = "smtp" }, wantErr: "SMTP_HOST"},
		{name: "resend", cfg: func(c *Config) { c.Provider = "resend"; c.ResendAPIKey = "re_123" }, wantName: ProviderResend},
		{name: "resend without key", cfg: func(c *Config) { c.Provider = "resend" }, wantErr: "RESEND_API_KEY"},
		{name: "unknown", cfg: func(c *Config) { c.Provider = "pigeon" }, wantErr: "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.cfg(&cfg)

			sender, err := NewSender(cfg, logger.Nop())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, sender.Name())
		})
	}
}

func TestLogSender_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)

	err := NewLogSender(log).Send(context.Background(), Message{
		To:      "me@example.com",
		Subject: "Flights to Rome",
		Text:    "Flights to Rome:\n",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"subject":"Flights to Rome"`)
	assert.Contains(t, out, `"to":"me@example.com"`)
}
