package store

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safar/pos-backend/internal/database"
)

// --- Test helpers ---

func newMockStore(t *testing.T, maxRetries int) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "postgres"), database.TxOptions{
		IsolationLevel: sql.LevelReadCommitted,
		MaxRetries:     maxRetries,
		BaseBackoff:    time.Millisecond,
	}), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

// moneyArg matches a driver value holding the given decimal amount,
// regardless of trailing zeros.
type moneyArg string

func (m moneyArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return got.Equal(decimal.RequireFromString(string(m)))
}

var productRowColumns = []string{"id", "sku", "name", "description", "unit_price", "tax_rate", "is_active", "created_at", "updated_at"}

func productRow(id int64, price, rate string, active bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productRowColumns).
		AddRow(id, "SKU-1", "Coffee", nil, price, rate, active, now, now)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
