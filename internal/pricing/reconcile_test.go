package pricing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/pos-backend/internal/models"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestReconcileNoTenders(t *testing.T) {
	for _, total := range []string{"220.00", "0.01", "15.5"} {
		r, err := Reconcile(nil, money(total))
		require.NoError(t, err)

		want := []models.Payment{{Method: models.PaymentMethodCash, Amount: money(total)}}
		if diff := cmp.Diff(want, r.Payments, decimalComparer); diff != "" {
			t.Errorf("payments mismatch (-want +got):\n%s", diff)
		}
		assertMoney(t, total, r.PaidAmount)
		assertMoney(t, "0.00", r.ChangeAmount)
		assert.Equal(t, models.OrderStatusPaid, r.Status)
	}
}

func TestReconcileExactPayment(t *testing.T) {
	r, err := Reconcile([]Tender{{Method: models.PaymentMethodCash, Amount: money("220.00")}}, money("220.00"))
	require.NoError(t, err)

	assertMoney(t, "220.00", r.PaidAmount)
	assertMoney(t, "0.00", r.ChangeAmount)
	assert.Equal(t, models.OrderStatusPaid, r.Status)
}

func TestReconcileUnderpaid(t *testing.T) {
	r, err := Reconcile([]Tender{{Method: models.PaymentMethodCard, Amount: money("100.00")}}, money("220.00"))
	require.NoError(t, err)

	assertMoney(t, "100.00", r.PaidAmount)
	assertMoney(t, "0.00", r.ChangeAmount)
	assert.False(t, r.ChangeAmount.IsNegative())
	assert.Equal(t, models.OrderStatusDraft, r.Status)
}

func TestReconcileSplitTenderWithChange(t *testing.T) {
	ref := "txn-42"
	tenders := []Tender{
		{Method: models.PaymentMethodCard, Amount: money("100.004"), TransactionID: &ref},
		{Method: models.PaymentMethodCash, Amount: money("150")},
		{Amount: money("0.005")},
	}

	r, err := Reconcile(tenders, money("220.00"))
	require.NoError(t, err)

	want := []models.Payment{
		{Method: models.PaymentMethodCard, Amount: money("100.00"), TransactionID: &ref},
		{Method: models.PaymentMethodCash, Amount: money("150.00")},
		{Method: models.PaymentMethodCash, Amount: money("0.01")},
	}
	if diff := cmp.Diff(want, r.Payments, decimalComparer); diff != "" {
		t.Errorf("payments mismatch (-want +got):\n%s", diff)
	}
	assertMoney(t, "250.01", r.PaidAmount)
	assertMoney(t, "30.01", r.ChangeAmount)
	assert.Equal(t, models.OrderStatusPaid, r.Status)
}

func TestReconcileRejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []string{"0", "0.004", "-5.00"} {
		tenders := []Tender{
			{Method: models.PaymentMethodCash, Amount: money("10.00")},
			{Method: models.PaymentMethodQR, Amount: money(amount)},
		}
		_, err := Reconcile(tenders, money("5.00"))
		require.ErrorIs(t, err, ErrInvalidPaymentAmount, "amount %s", amount)
	}
}
