package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, passwordHash, role)
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintUserEmail) {
			return nil, fmt.Errorf("create user %s: %w", email, database.ErrEmailExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
