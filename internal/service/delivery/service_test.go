package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/domain"
)

type recordedOutcome struct {
	deliveryID uuid.UUID
	email      string
	outcome    Outcome
	sendErr    string
}

type fakeRepo struct {
	confirmed []domain.Subscriber
	listErr   error
	recordErr error
	outcomes  []recordedOutcome
}

func (f *fakeRepo) ListConfirmed(ctx context.Context) ([]domain.Subscriber, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.confirmed, nil
}

func (f *fakeRepo) RecordOutcome(ctx context.Context, deliveryID uuid.UUID, email domain.EmailAddress, outcome Outcome, sendErr string) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.outcomes = append(f.outcomes, recordedOutcome{deliveryID, email.String(), outcome, sendErr})
	return nil
}

type fakeSender struct {
	sent        []string
	lastSubject string
	lastBody    string
	failFor     map[string]error
}

func (f *fakeSender) Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error {
	if err, ok := f.failFor[recipient.String()]; ok {
		return err
	}
	f.sent = append(f.sent, recipient.String())
	f.lastSubject, f.lastBody = subject, htmlBody
	return nil
}

type fakeVerifier struct {
	userID uuid.UUID
	err    error
	called bool
}

func (f *fakeVerifier) VerifyBasicAuth(ctx context.Context, header string) (uuid.UUID, error) {
	f.called = true
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.userID, nil
}

func confirmedSubscribers(t *testing.T, addrs ...string) []domain.Subscriber {
	t.Helper()
	subs := make([]domain.Subscriber, 0, len(addrs))
	for _, a := range addrs {
		email, err := domain.ParseEmailAddress(a)
		if err != nil {
			t.Fatalf("ParseEmailAddress(%q): %v", a, err)
		}
		subs = append(subs, domain.Subscriber{
			ID:     uuid.New(),
			Email:  email,
			Status: domain.StatusConfirmed,
		})
	}
	return subs
}

var testIssue = Issue{Subject: "Issue #1", Content: "<p>hello</p>"}

func TestDeliver(t *testing.T) {
	repo := &fakeRepo{confirmed: confirmedSubscribers(t, "a@example.com", "b@example.com", "c@example.com")}
	sender := &fakeSender{}
	svc := NewService(repo, sender, &fakeVerifier{userID: uuid.New()})

	if err := svc.Deliver(context.Background(), "Basic abc", testIssue); err != nil {
		t.Fatalf("Deliver() error: %v", err)
	}

	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent = %v, want %v", sender.sent, want)
	}
	for i, addr := range want {
		if sender.sent[i] != addr {
			t.Errorf("send order: sent[%d] = %q, want %q", i, sender.sent[i], addr)
		}
	}
	if sender.lastSubject != testIssue.Subject || sender.lastBody != testIssue.Content {
		t.Errorf("sent (%q, %q), want the issue's subject and content", sender.lastSubject, sender.lastBody)
	}

	if len(repo.outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(repo.outcomes))
	}
	deliveryID := repo.outcomes[0].deliveryID
	for _, o := range repo.outcomes {
		if o.deliveryID != deliveryID {
			t.Errorf("all outcomes must share one delivery id, got %s and %s", deliveryID, o.deliveryID)
		}
		if o.outcome != OutcomeSent || o.sendErr != "" {
			t.Errorf("outcome for %s = %s (%q), want sent", o.email, o.outcome, o.sendErr)
		}
	}
}

func TestDeliver_ContinuesPastFailures(t *testing.T) {
	repo := &fakeRepo{confirmed: confirmedSubscribers(t, "a@example.com", "b@example.com", "c@example.com")}
	sender := &fakeSender{failFor: map[string]error{"b@example.com": errors.New("provider 503")}}
	svc := NewService(repo, sender, &fakeVerifier{userID: uuid.New()})

	err := svc.Deliver(context.Background(), "Basic abc", testIssue)
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("Deliver() = %v, want ErrDeliveryFailed", err)
	}
	if !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("error %q should report 1 of 3 recipients", err)
	}

	// c still got its copy despite b failing.
	if len(sender.sent) != 2 || sender.sent[1] != "c@example.com" {
		t.Fatalf("sent = %v, want a and c", sender.sent)
	}

	if len(repo.outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(repo.outcomes))
	}
	b := repo.outcomes[1]
	if b.email != "b@example.com" || b.outcome != OutcomeFailed {
		t.Errorf("outcomes[1] = %+v, want failed row for b", b)
	}
	if !strings.Contains(b.sendErr, "provider 503") {
		t.Errorf("failed outcome should carry the send error, got %q", b.sendErr)
	}
}

func TestDeliver_AuthFailure(t *testing.T) {
	repo := &fakeRepo{confirmed: confirmedSubscribers(t, "a@example.com")}
	sender := &fakeSender{}
	svc := NewService(repo, sender, &fakeVerifier{err: auth.ErrInvalidCredentials})

	err := svc.Deliver(context.Background(), "Basic bogus", testIssue)
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("Deliver() = %v, want ErrInvalidCredentials passed through", err)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing may be sent when auth fails")
	}
	if len(repo.outcomes) != 0 {
		t.Error("no outcomes may be recorded when auth fails")
	}
}

func TestDeliver_ListFailure(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("connection reset")}
	svc := NewService(repo, &fakeSender{}, &fakeVerifier{userID: uuid.New()})

	err := svc.Deliver(context.Background(), "Basic abc", testIssue)
	if err == nil || errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("Deliver() = %v, want wrapped store error", err)
	}
}

func TestDeliver_OutcomeWriteFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{
		confirmed: confirmedSubscribers(t, "a@example.com"),
		recordErr: errors.New("disk full"),
	}
	sender := &fakeSender{}
	svc := NewService(repo, sender, &fakeVerifier{userID: uuid.New()})

	if err := svc.Deliver(context.Background(), "Basic abc", testIssue); err != nil {
		t.Fatalf("Deliver() error: %v, audit write failures must not fail the broadcast", err)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent = %v, want the one recipient", sender.sent)
	}
}

func TestDeliver_NoConfirmedSubscribers(t *testing.T) {
	repo := &fakeRepo{}
	sender := &fakeSender{}
	svc := NewService(repo, sender, &fakeVerifier{userID: uuid.New()})

	if err := svc.Deliver(context.Background(), "Basic abc", testIssue); err != nil {
		t.Fatalf("Deliver() with zero recipients error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent = %v, want none", sender.sent)
	}
}

func ExampleService_Deliver() {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeSender{}, &fakeVerifier{userID: uuid.New()})

	err := svc.Deliver(context.Background(), "Basic dXNlcjpwYXNz", Issue{Subject: "Issue #1", Content: "<p>hi</p>"})
	fmt.Println(err)
	// Output: <nil>
}
