package pricing

import (
	"errors"
	"fmt"

	"github.com/safar/pos-backend/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

// Tender is one payment offered against an order.
type Tender struct {
	Method        models.PaymentMethod
	Amount        decimal.Decimal
	TransactionID *string
}

type Reconciliation struct {
	Payments     []models.Payment
	PaidAmount   decimal.Decimal
	ChangeAmount decimal.Decimal
	Status       models.OrderStatus
}

// Reconcile folds tenders into the payment set for an order of the given
// total. With no tenders the order is settled by a single cash payment.
func Reconcile(tenders []Tender, total decimal.Decimal) (Reconciliation, error) {
	if len(tenders) == 0 {
		total = Quantize(total)
		return Reconciliation{
			Payments: []models.Payment{{
				Method: models.PaymentMethodCash,
				Amount: total,
			}},
			PaidAmount:   total,
			ChangeAmount: Quantize(decimal.Zero),
			Status:       models.OrderStatusPaid,
		}, nil
	}

	payments := make([]models.Payment, 0, len(tenders))
	paid := Quantize(decimal.Zero)
	for i, t := range tenders {
		amount := Quantize(t.Amount)
		if !amount.IsPositive() {
			return Reconciliation{}, fmt.Errorf("tender %d (%s): %w", i, amount.StringFixed(Scale), ErrInvalidPaymentAmount)
		}

		method := t.Method
		if method == "" {
			method = models.PaymentMethodCash
		}

		payments = append(payments, models.Payment{
			Method:        method,
			Amount:        amount,
			TransactionID: t.TransactionID,
		})
		paid = Quantize(paid.Add(amount))
	}

	r := Reconciliation{
		Payments:     payments,
		PaidAmount:   paid,
		ChangeAmount: Quantize(decimal.Zero),
		Status:       models.OrderStatusDraft,
	}
	if paid.GreaterThanOrEqual(total) {
		r.Status = models.OrderStatusPaid
		r.ChangeAmount = Quantize(paid.Sub(total))
	}

	return r, nil
}
