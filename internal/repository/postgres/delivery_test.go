package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/service/delivery"
)

func TestListConfirmed(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "subscribed_at", "status"}).
		AddRow(uuid.New(), "a@example.com", "alice", now.Add(-time.Hour), "confirmed").
		AddRow(uuid.New(), "b@example.com", "bob", now, "confirmed")
	mock.ExpectQuery("SELECT id, email, name, subscribed_at, status").
		WithArgs(domain.StatusConfirmed).
		WillReturnRows(rows)

	repo := NewDeliveryRepo(db)
	subs, err := repo.ListConfirmed(context.Background())
	if err != nil {
		t.Fatalf("ListConfirmed() error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("subscribers = %d, want 2", len(subs))
	}
	if subs[0].Email.String() != "a@example.com" || subs[1].Email.String() != "b@example.com" {
		t.Errorf("order = [%s, %s], want store order", subs[0].Email, subs[1].Email)
	}
}

func TestListConfirmed_SkipsUnparseableRows(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "subscribed_at", "status"}).
		AddRow(uuid.New(), "not-an-email", "mallory", now, "confirmed").
		AddRow(uuid.New(), "ok@example.com", "olga", now, "confirmed")
	mock.ExpectQuery("SELECT id, email, name, subscribed_at, status").
		WillReturnRows(rows)

	repo := NewDeliveryRepo(db)
	subs, err := repo.ListConfirmed(context.Background())
	if err != nil {
		t.Fatalf("ListConfirmed() error: %v", err)
	}
	if len(subs) != 1 || subs[0].Email.String() != "ok@example.com" {
		t.Fatalf("subs = %+v, want only the parseable row", subs)
	}
}

func TestRecordOutcome(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	deliveryID := uuid.New()
	email, _ := domain.ParseEmailAddress("a@example.com")

	mock.ExpectExec("INSERT INTO delivery_outcomes").
		WithArgs(deliveryID, "a@example.com", delivery.OutcomeFailed, "provider 503").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewDeliveryRepo(db)
	err := repo.RecordOutcome(context.Background(), deliveryID, email, delivery.OutcomeFailed, "provider 503")
	if err != nil {
		t.Fatalf("RecordOutcome() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByUsername(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).
			AddRow(id, "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"))

	repo := NewUserRepo(db)
	u, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("GetByUsername() error: %v", err)
	}
	if u.ID != id || u.Username != "admin" {
		t.Errorf("user = %+v", u)
	}
}

func TestGetByUsername_StoreFailure(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("admin").
		WillReturnError(errors.New("connection reset"))

	repo := NewUserRepo(db)
	_, err := repo.GetByUsername(context.Background(), "admin")
	if err == nil || errors.Is(err, auth.ErrUnknownUser) {
		t.Fatalf("GetByUsername() = %v, want plain store error", err)
	}
}

func TestGetByUsername_Unknown(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}))

	repo := NewUserRepo(db)
	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, auth.ErrUnknownUser) {
		t.Fatalf("GetByUsername() = %v, want ErrUnknownUser", err)
	}
}
