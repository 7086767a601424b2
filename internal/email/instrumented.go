package email

import (
	"context"

	"github.com/ignite/newsletter/internal/domain"
)

// Sender is the outbound email contract the instrumentation wraps.
type Sender interface {
	Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error
}

// SendRecorder receives one event per send attempt.
type SendRecorder interface {
	RecordEmailSent()
	RecordEmailFailed()
}

// InstrumentedSender decorates a Sender with send-outcome metrics.
type InstrumentedSender struct {
	next Sender
	rec  SendRecorder
}

func NewInstrumentedSender(next Sender, rec SendRecorder) *InstrumentedSender {
	return &InstrumentedSender{next: next, rec: rec}
}

func (s *InstrumentedSender) Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error {
	err := s.next.Send(ctx, recipient, subject, htmlBody)
	if err != nil {
		s.rec.RecordEmailFailed()
		return err
	}
	s.rec.RecordEmailSent()
	return nil
}
