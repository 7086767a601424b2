package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/domain"
)

// UserRepo implements auth.UserRepository against PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{Username: username}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, auth.ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
