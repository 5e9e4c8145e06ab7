package notify

import (
	"context"

	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a LogSender. A nil logger discards everything.
func NewLogSender(log *logger.Logger) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Name() string {
	return ProviderLog
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("notification")
	return nil
}
