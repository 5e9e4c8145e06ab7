package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/flight-search/flight-finder/internal/infrastructure/retry"
)

// SMTPSender sends messages over SMTP with STARTTLS and plain authentication.
type SMTPSender struct {
	cfg  SMTPConfig
	from string
}

// NewSMTPSender checks the settings and returns a sender. No connection is
// made until the first Send.
func NewSMTPSender(cfg SMTPConfig, from string) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify: smtp provider requires SMTP_HOST")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{cfg: cfg, from: from}, nil
}

func (s *SMTPSender) Name() string {
	return ProviderSMTP
}

// Send dials the server and delivers msg. Address errors are permanent.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return retry.NewPermanent(err)
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("create mail client: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func (s *SMTPSender) buildMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	m.SetGenHeader(mail.HeaderXMailer, "flight-finder")
	m.SetDate()
	m.SetMessageID()
	return m, nil
}
