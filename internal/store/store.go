// Package store persists the point-of-sale aggregates in PostgreSQL.
package store

import (
	"github.com/jmoiron/sqlx"

	"github.com/safar/pos-backend/internal/database"
)

type Store struct {
	db     *sqlx.DB
	txOpts database.TxOptions
}

func New(db *sqlx.DB, txOpts database.TxOptions) *Store {
	return &Store{db: db, txOpts: txOpts}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
