package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/pricing"
)

type CreateOrderRequest struct {
	// UserID, when set, must match the acting user.
	UserID   *int64
	Items    []OrderLineRequest
	Payments []pricing.Tender
	Memo     *string
}

type OrderLineRequest struct {
	ProductID int64
	Quantity  int
}

const orderColumns = `id, order_no, user_id, subtotal, tax_total, total, paid_amount, change_amount, status, memo, created_at, updated_at`

// CreateOrder prices the requested lines, reconciles the tenders and stores
// the order with its items and payments in one transaction. Every validation
// error is returned before the first row is written.
func (s *Store) CreateOrder(ctx context.Context, req CreateOrderRequest, actingUserID int64) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, database.ErrEmptyOrder
	}
	if req.UserID != nil && *req.UserID != actingUserID {
		return nil, database.ErrUserMismatch
	}

	var order *models.Order
	err := database.WithRetry(ctx, s.db, s.txOpts, func(tx *sqlx.Tx) error {
		o, err := assembleOrder(ctx, tx, req, actingUserID)
		if err != nil {
			return err
		}

		if err := insertOrder(ctx, tx, o); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func assembleOrder(ctx context.Context, tx *sqlx.Tx, req CreateOrderRequest, userID int64) (*models.Order, error) {
	products := make(map[int64]*models.Product, len(req.Items))
	items := make([]models.OrderItem, 0, len(req.Items))
	var totals pricing.Totals

	for _, line := range req.Items {
		p, ok := products[line.ProductID]
		if !ok {
			var err error
			p, err = getProduct(ctx, tx, line.ProductID)
			if err != nil {
				if errors.Is(err, database.ErrProductNotFound) {
					return nil, &database.ProductUnavailableError{ProductID: line.ProductID}
				}
				return nil, err
			}
			products[line.ProductID] = p
		}
		if !p.IsActive {
			return nil, &database.ProductUnavailableError{ProductID: p.ID}
		}

		priced := pricing.PriceLine(p.UnitPrice, p.TaxRate, line.Quantity)
		totals.Add(priced)

		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: priced.UnitPrice,
			LineTotal: priced.Total,
		})
	}

	total := totals.Total()
	rec, err := pricing.Reconcile(req.Payments, total)
	if err != nil {
		return nil, err
	}

	return &models.Order{
		OrderNo:      newOrderNumber(time.Now()),
		UserID:       userID,
		Subtotal:     totals.Subtotal,
		TaxTotal:     totals.TaxTotal,
		Total:        total,
		PaidAmount:   rec.PaidAmount,
		ChangeAmount: rec.ChangeAmount,
		Status:       rec.Status,
		Memo:         req.Memo,
		Items:        items,
		Payments:     rec.Payments,
	}, nil
}

func insertOrder(ctx context.Context, tx *sqlx.Tx, o *models.Order) error {
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO orders (order_no, user_id, subtotal, tax_total, total, paid_amount, change_amount, status, memo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		o.OrderNo, o.UserID, o.Subtotal, o.TaxTotal, o.Total, o.PaidAmount, o.ChangeAmount, o.Status, o.Memo,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintOrderNo) {
			return fmt.Errorf("insert order %s: %w", o.OrderNo, database.ErrOrderNumberConflict)
		}
		if database.IsNumericOverflow(err) {
			return fmt.Errorf("insert order: %w", database.ErrAmountOutOfRange)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			if database.IsNumericOverflow(err) {
				return fmt.Errorf("insert order item: %w", database.ErrAmountOutOfRange)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	for i := range o.Payments {
		p := &o.Payments[i]
		p.OrderID = o.ID
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO payments (order_id, method, amount, transaction_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			p.OrderID, p.Method, p.Amount, p.TransactionID,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			if database.IsNumericOverflow(err) {
				return fmt.Errorf("insert payment: %w", database.ErrAmountOutOfRange)
			}
			return fmt.Errorf("insert payment: %w", err)
		}
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	orders := []models.Order{order}
	if err := loadChildren(ctx, s.db, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// ListOrders returns every order, newest first, with items and payments.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if err := loadChildren(ctx, s.db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListOrdersPage returns at most limit orders older than the cursor.
func (s *Store) ListOrdersPage(ctx context.Context, cursor string, limit int) (*OrderPage, error) {
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if after == nil {
		err = s.db.SelectContext(ctx, &orders,
			`SELECT `+orderColumns+` FROM orders
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`, limit+1)
	} else {
		err = s.db.SelectContext(ctx, &orders,
			`SELECT `+orderColumns+` FROM orders
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`, after.CreatedAt, after.ID, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders page: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	if err := loadChildren(ctx, s.db, orders); err != nil {
		return nil, err
	}

	page := &OrderPage{Orders: orders, HasMore: hasMore}
	if hasMore && len(orders) > 0 {
		last := orders[len(orders)-1]
		page.NextCursor = EncodeCursor(OrderCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return page, nil
}

// loadChildren fetches the items and payments of orders by foreign key and
// attaches them in place.
func loadChildren(ctx context.Context, q sqlx.QueryerContext, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderItem{}
		orders[i].Payments = []models.Payment{}
	}

	var items []models.OrderItem
	err := sqlx.SelectContext(ctx, q, &items,
		`SELECT id, order_id, product_id, quantity, unit_price, line_total, created_at
		 FROM order_items
		 WHERE order_id = ANY($1)
		 ORDER BY id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	var payments []models.Payment
	err = sqlx.SelectContext(ctx, q, &payments,
		`SELECT id, order_id, method, amount, transaction_id, created_at
		 FROM payments
		 WHERE order_id = ANY($1)
		 ORDER BY id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}
	for _, p := range payments {
		i := index[p.OrderID]
		orders[i].Payments = append(orders[i].Payments, p)
	}

	return nil
}
