package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
	// ErrorClassConflict marks an order number collision; a retry with a
	// freshly generated number is expected to succeed.
	ErrorClassConflict
	ErrorClassUnavailable
)

const (
	codeUniqueViolation = "23505"
	codeNumericOverflow = "22003"

	ConstraintOrderNo    = "uq_orders_order_no"
	ConstraintProductSKU = "uq_products_sku"
	ConstraintUserEmail  = "uq_users_email"
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	if errors.Is(err, ErrOrderNumberConflict) {
		return ErrorClassConflict
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03":
			return ErrorClassTransient
		case "23505", "23503", "23502", "23514":
			return ErrorClassPermanent
		}
		switch pqErr.Code.Class() {
		case "08", "57":
			return ErrorClassUnavailable
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return ErrorClassUnavailable
	}

	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	switch ClassifyError(err) {
	case ErrorClassTransient, ErrorClassDeadlock, ErrorClassSerialization, ErrorClassConflict:
		return true
	}
	return false
}

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool {
	return ClassifyError(err) == ErrorClassUnavailable
}

// IsUniqueViolation reports whether err is a unique violation on constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsNumericOverflow reports whether a value did not fit its numeric column.
func IsNumericOverflow(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeNumericOverflow
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrUserMismatch        = errors.New("order user does not match authenticated user")
	ErrProductUnavailable  = errors.New("product unavailable")
	ErrOrderNumberConflict = errors.New("order number already exists")
	ErrSKUExists           = errors.New("sku already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrAmountOutOfRange    = errors.New("order amount out of range")
)

// ProductUnavailableError reports a requested product that is missing or
// inactive. It matches ErrProductUnavailable.
type ProductUnavailableError struct {
	ProductID int64
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d unavailable", e.ProductID)
}

func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrProductUnavailable
}
