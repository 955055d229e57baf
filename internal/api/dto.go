package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/pricing"
)

// Money is rendered as a string with exactly two fractional digits.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(pricing.Scale)
}

type orderItemResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
	LineTotal string    `json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
}

type paymentResponse struct {
	ID            int64     `json:"id"`
	Method        string    `json:"method"`
	Amount        string    `json:"amount"`
	TransactionID *string   `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type orderResponse struct {
	ID           int64               `json:"id"`
	OrderNo      string              `json:"order_no"`
	UserID       int64               `json:"user_id"`
	Subtotal     string              `json:"subtotal"`
	TaxTotal     string              `json:"tax_total"`
	Total        string              `json:"total"`
	PaidAmount   string              `json:"paid_amount"`
	ChangeAmount string              `json:"change_amount"`
	Status       string              `json:"status"`
	Memo         *string             `json:"memo"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Items        []orderItemResponse `json:"items"`
	Payments     []paymentResponse   `json:"payments"`
}

func newOrderResponse(o *models.Order) orderResponse {
	resp := orderResponse{
		ID:           o.ID,
		OrderNo:      o.OrderNo,
		UserID:       o.UserID,
		Subtotal:     formatMoney(o.Subtotal),
		TaxTotal:     formatMoney(o.TaxTotal),
		Total:        formatMoney(o.Total),
		PaidAmount:   formatMoney(o.PaidAmount),
		ChangeAmount: formatMoney(o.ChangeAmount),
		Status:       string(o.Status),
		Memo:         o.Memo,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        make([]orderItemResponse, 0, len(o.Items)),
		Payments:     make([]paymentResponse, 0, len(o.Payments)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: formatMoney(it.UnitPrice),
			LineTotal: formatMoney(it.LineTotal),
			CreatedAt: it.CreatedAt,
		})
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:            p.ID,
			Method:        string(p.Method),
			Amount:        formatMoney(p.Amount),
			TransactionID: p.TransactionID,
			CreatedAt:     p.CreatedAt,
		})
	}
	return resp
}

func newOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return out
}

type productResponse struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UnitPrice   string  `json:"unit_price"`
	TaxRate     string  `json:"tax_rate"`
	IsActive    bool    `json:"is_active"`
}

func newProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   formatMoney(p.UnitPrice),
		TaxRate:     p.TaxRate.StringFixed(2),
		IsActive:    p.IsActive,
	}
}

type summaryResponse struct {
	TotalProducts int64  `json:"total_products"`
	TotalOrders   int64  `json:"total_orders"`
	TotalRevenue  string `json:"total_revenue"`
	TotalPayments string `json:"total_payments"`
}
