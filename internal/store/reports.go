package store

import (
	"context"
	"fmt"

	"github.com/safar/pos-backend/internal/models"
)

func (s *Store) Summarize(ctx context.Context) (*models.Summary, error) {
	var summary models.Summary
	err := s.db.GetContext(ctx, &summary, `
		SELECT
			(SELECT COUNT(*) FROM products)                 AS total_products,
			(SELECT COUNT(*) FROM orders)                   AS total_orders,
			(SELECT COALESCE(SUM(total), 0) FROM orders)    AS total_revenue,
			(SELECT COALESCE(SUM(amount), 0) FROM payments) AS total_payments`)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &summary, nil
}
