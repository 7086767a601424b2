// Package subscription implements the subscriber lifecycle: double opt-in
// signup and token-based confirmation.
//
// The service layer owns all business rules for the pending_confirmation →
// confirmed state machine. It depends on the repository interface defined in
// this package and never imports from api/. The repository implementation
// lives in repository/postgres/.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/email"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// Service implements subscribe and confirm. All methods are safe for
// concurrent use; conflicting writes (two subscribes racing on one email)
// are serialized by the store's uniqueness constraint, not by locks here.
type Service struct {
	repo      Repository
	sender    EmailSender
	templates *email.Templates
	baseURL   string
}

// NewService creates a subscription service. baseURL is the externally
// reachable root of this service, used to build confirmation links.
func NewService(repo Repository, sender EmailSender, templates *email.Templates, baseURL string) *Service {
	return &Service{repo: repo, sender: sender, templates: templates, baseURL: baseURL}
}

// Subscribe validates the raw input, persists a new pending subscriber and
// its confirmation token atomically, and then sends the confirmation email.
//
// The email is sent only after the transaction commits. If the send fails
// the caller gets ErrNotification, but the subscriber row and token are
// already durable: the signup is not lost, only the notification.
func (s *Service) Subscribe(ctx context.Context, rawName, rawEmail string) error {
	name, err := domain.ParseSubscriberName(rawName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubscriber, err)
	}
	addr, err := domain.ParseEmailAddress(rawEmail)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubscriber, err)
	}

	sub := &domain.Subscriber{
		ID:           uuid.New(),
		Email:        addr,
		Name:         name,
		Status:       domain.StatusPendingConfirmation,
		SubscribedAt: time.Now().UTC(),
	}

	token, err := generateToken(domain.TokenLength)
	if err != nil {
		return fmt.Errorf("generating confirmation token: %w", err)
	}

	if err := s.repo.CreateWithToken(ctx, sub, token); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("persisting subscriber: %w", err)
	}

	logger.Info("subscriber created",
		"subscriber_id", sub.ID.String(),
		"email", addr.String(),
	)

	body, err := s.templates.RenderConfirmation(name.String(), s.confirmationLink(token))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	if err := s.sender.Send(ctx, addr, email.ConfirmationSubject, body); err != nil {
		logger.Error("confirmation email failed",
			"subscriber_id", sub.ID.String(),
			"error", err.Error(),
		)
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}

	return nil
}

// Confirm resolves a token and transitions its subscriber to confirmed.
// The two store operations are not one atomic unit; that is fine because the
// update is idempotent and distinct tokens touch disjoint subscriber rows.
func (s *Service) Confirm(ctx context.Context, token string) error {
	id, err := s.repo.SubscriberIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnknownToken) {
			return err
		}
		return fmt.Errorf("resolving token: %w", err)
	}

	if err := s.repo.MarkConfirmed(ctx, id); err != nil {
		return fmt.Errorf("confirming subscriber: %w", err)
	}

	logger.Info("subscriber confirmed", "subscriber_id", id.String())
	return nil
}

func (s *Service) confirmationLink(token string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s",
		s.baseURL, url.QueryEscape(token))
}
