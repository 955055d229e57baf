package models

import (
	"database/sql/driver"
	"fmt"
)

type OrderStatus string

const (
	OrderStatusDraft    OrderStatus = "draft"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPaid, OrderStatusRefunded:
		return true
	}
	return false
}

func (s *OrderStatus) Scan(src any) error {
	v, err := scanEnum("order status", src)
	if err != nil {
		return err
	}
	if !OrderStatus(v).Valid() {
		return fmt.Errorf("scan order status: unknown value %q", v)
	}
	*s = OrderStatus(v)
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("order status: unknown value %q", string(s))
	}
	return string(s), nil
}

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodQR    PaymentMethod = "qr"
	PaymentMethodOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQR, PaymentMethodOther:
		return true
	}
	return false
}

func (m *PaymentMethod) Scan(src any) error {
	v, err := scanEnum("payment method", src)
	if err != nil {
		return err
	}
	if !PaymentMethod(v).Valid() {
		return fmt.Errorf("scan payment method: unknown value %q", v)
	}
	*m = PaymentMethod(v)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("payment method: unknown value %q", string(m))
	}
	return string(m), nil
}

type UserRole string

const (
	UserRoleClerk UserRole = "clerk"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == UserRoleClerk || r == UserRoleAdmin
}

func (r *UserRole) Scan(src any) error {
	v, err := scanEnum("user role", src)
	if err != nil {
		return err
	}
	if !UserRole(v).Valid() {
		return fmt.Errorf("scan user role: unknown value %q", v)
	}
	*r = UserRole(v)
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("user role: unknown value %q", string(r))
	}
	return string(r), nil
}

func scanEnum(name string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("scan %s: null value", name)
	default:
		return "", fmt.Errorf("scan %s: unsupported type %T", name, src)
	}
}
