package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
)

var userRowColumns = []string{"id", "email", "password_hash", "role", "created_at", "updated_at"}

func TestCreateUser(t *testing.T) {
	s, mock := newMockStore(t, 3)
	now := time.Now()

	mock.ExpectQuery(q(`INSERT INTO users (email, password_hash, role)`)).
		WithArgs("clerk@example.com", "hash", "clerk").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "clerk@example.com", "hash", "clerk", now, now))

	user, err := s.CreateUser(context.Background(), "clerk@example.com", "hash", models.UserRoleClerk)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.UserRoleClerk, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s, mock := newMockStore(t, 3)

	mock.ExpectQuery(q(`INSERT INTO users`)).
		WithArgs("clerk@example.com", "hash", "clerk").
		WillReturnError(&pq.Error{Code: "23505", Constraint: database.ConstraintUserEmail})

	_, err := s.CreateUser(context.Background(), "clerk@example.com", "hash", models.UserRoleClerk)
	require.ErrorIs(t, err, database.ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s, mock := newMockStore(t, 3)

	mock.ExpectQuery(q(`FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, database.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserRejectsUnknownRole(t *testing.T) {
	s, mock := newMockStore(t, 3)
	now := time.Now()

	mock.ExpectQuery(q(`FROM users WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(4), "root@example.com", "hash", "superuser", now, now))

	_, err := s.GetUser(context.Background(), 4)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
