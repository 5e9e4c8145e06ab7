package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/retry"
)

// Provider names accepted in Config.Provider.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// SMTPConfig holds the SMTP server settings.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// Config selects and configures the delivery channel.
type Config struct {
	Provider     string `env:"NOTIFY_PROVIDER" envDefault:"log"`
	From         string `env:"NOTIFY_FROM" envDefault:"flight-finder@localhost"`
	MaxAttempts  int    `env:"NOTIFY_MAX_ATTEMPTS" envDefault:"1"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	SMTP         SMTPConfig
}

// DefaultConfig returns a log-only configuration.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderLog,
		From:        "flight-finder@localhost",
		MaxAttempts: 1,
		SMTP: SMTPConfig{
			Port:    587,
			Timeout: 10 * time.Second,
		},
	}
}

// NewSender builds the Sender named by cfg.Provider.
func NewSender(cfg Config, log *logger.Logger) (Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderSMTP:
		return NewSMTPSender(cfg.SMTP, cfg.From)
	case ProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("notify: resend provider requires RESEND_API_KEY")
		}
		return NewResendSender(cfg.ResendAPIKey, cfg.From), nil
	case ProviderLog, "":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("notify: unknown provider %q", cfg.Provider)
	}
}

// Notifier implements domain.Notifier on top of a Sender.
type Notifier struct {
	sender Sender
	retry  retry.Config
	log    *logger.Logger
}

// NewNotifier creates a Notifier that tries each message up to maxAttempts times.
func NewNotifier(sender Sender, maxAttempts int, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{
		sender: sender,
		retry:  retry.DeliveryConfig(maxAttempts),
		log:    log.WithComponent("notify"),
	}
}

// Notify sends one message per destination. A failed message does not stop
// the others; all failures are returned together.
func (n *Notifier) Notify(ctx context.Context, recipient string, results domain.GroupedResults) error {
	messages, err := ComposeMessages(recipient, results)
	if err != nil {
		return err
	}

	var errs []error
	for _, msg := range messages {
		cfg := n.retry
		cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
			n.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Str("subject", msg.Subject).
				Msg("delivery failed, retrying")
		}

		err := retry.Do(ctx, func() error { return n.sender.Send(ctx, msg) }, cfg)
		if err != nil {
			n.log.Error().Err(err).Str("sender", n.sender.Name()).Str("subject", msg.Subject).Msg("delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", msg.Subject, err))
			continue
		}
		n.log.Info().Str("sender", n.sender.Name()).Str("subject", msg.Subject).Msg("notification sent")
	}
	return errors.Join(errs...)
}
