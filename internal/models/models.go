package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID          int64           `json:"id" db:"id"`
	SKU         string          `json:"sku" db:"sku"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate" db:"tax_rate"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Order is the aggregate root. Items and Payments are owned by the order and
// are always loaded and written together with it.
type Order struct {
	ID           int64           `json:"id" db:"id"`
	OrderNo      string          `json:"order_no" db:"order_no"`
	UserID       int64           `json:"user_id" db:"user_id"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	TaxTotal     decimal.Decimal `json:"tax_total" db:"tax_total"`
	Total        decimal.Decimal `json:"total" db:"total"`
	PaidAmount   decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	ChangeAmount decimal.Decimal `json:"change_amount" db:"change_amount"`
	Status       OrderStatus     `json:"status" db:"status"`
	Memo         *string         `json:"memo,omitempty" db:"memo"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
	Items        []OrderItem     `json:"items" db:"-"`
	Payments     []Payment       `json:"payments" db:"-"`
}

// OrderItem snapshots the unit price at order time.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total" db:"line_total"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type Payment struct {
	ID            int64           `json:"id" db:"id"`
	OrderID       int64           `json:"order_id" db:"order_id"`
	Method        PaymentMethod   `json:"method" db:"method"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Summary holds the aggregate counters shown on the reports page.
type Summary struct {
	TotalProducts int64           `json:"total_products" db:"total_products"`
	TotalOrders   int64           `json:"total_orders" db:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" db:"total_revenue"`
	TotalPayments decimal.Decimal `json:"total_payments" db:"total_payments"`
}
