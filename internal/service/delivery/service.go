// Package delivery implements the credential-gated newsletter broadcast:
// authenticate the caller, load every confirmed subscriber, and send the
// issue to each one sequentially, recording a per-recipient outcome row.
package delivery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Outcome is the terminal state of one recipient's send attempt.
type Outcome string

const (
	OutcomeSent   Outcome = "sent"
	OutcomeFailed Outcome = "failed"
)

// Issue is one newsletter edition to broadcast.
type Issue struct {
	Subject string
	Content string
}

// Service broadcasts newsletter issues to confirmed subscribers.
type Service struct {
	repo     Repository
	sender   EmailSender
	verifier Verifier
}

func NewService(repo Repository, sender EmailSender, verifier Verifier) *Service {
	return &Service{repo: repo, sender: sender, verifier: verifier}
}

// Deliver authenticates the caller and fans the issue out to every confirmed
// subscriber, one send at a time, in the order the store returns them.
//
// A failed send never aborts the loop: the remaining recipients still get
// their copy, and each attempt is recorded under one delivery id. If any
// recipient failed, Deliver returns ErrDeliveryFailed after the loop ends.
// Auth errors are returned as-is so the transport layer can map them.
func (s *Service) Deliver(ctx context.Context, authHeader string, issue Issue) error {
	userID, err := s.verifier.VerifyBasicAuth(ctx, authHeader)
	if err != nil {
		return err
	}

	subscribers, err := s.repo.ListConfirmed(ctx)
	if err != nil {
		return fmt.Errorf("listing confirmed subscribers: %w", err)
	}

	deliveryID := uuid.New()
	logger.Info("delivery started",
		"delivery_id", deliveryID.String(),
		"user_id", userID.String(),
		"recipients", len(subscribers),
	)

	failed := 0
	for _, sub := range subscribers {
		outcome, sendErr := OutcomeSent, ""
		if err := s.sender.Send(ctx, sub.Email, issue.Subject, issue.Content); err != nil {
			outcome, sendErr = OutcomeFailed, err.Error()
			failed++
			logger.Error("send failed",
				"delivery_id", deliveryID.String(),
				"email", sub.Email.String(),
				"error", err.Error(),
			)
		}
		s.recordOutcome(ctx, deliveryID, sub.Email, outcome, sendErr)
	}

	logger.Info("delivery finished",
		"delivery_id", deliveryID.String(),
		"sent", len(subscribers)-failed,
		"failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d recipients", ErrDeliveryFailed, failed, len(subscribers))
	}
	return nil
}

// recordOutcome writes the audit row. The outcome store is an audit trail;
// a write failure must not fail the broadcast, so it is logged and dropped.
func (s *Service) recordOutcome(ctx context.Context, deliveryID uuid.UUID, email domain.EmailAddress, outcome Outcome, sendErr string) {
	if err := s.repo.RecordOutcome(ctx, deliveryID, email, outcome, sendErr); err != nil {
		logger.Warn("outcome record failed",
			"delivery_id", deliveryID.String(),
			"email", email.String(),
			"error", err.Error(),
		)
	}
}
