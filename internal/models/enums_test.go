package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusScan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan([]byte("paid")))
	assert.Equal(t, OrderStatusPaid, s)

	require.NoError(t, s.Scan("draft"))
	assert.Equal(t, OrderStatusDraft, s)

	assert.Error(t, s.Scan("pending"))
	assert.Error(t, s.Scan(nil))
	assert.Error(t, s.Scan(42))
	assert.Equal(t, OrderStatusDraft, s, "failed scan must not modify the value")
}

func TestEnumValueRejectsUnknown(t *testing.T) {
	_, err := OrderStatus("shipped").Value()
	assert.Error(t, err)

	_, err = PaymentMethod("cheque").Value()
	assert.Error(t, err)

	_, err = UserRole("").Value()
	assert.Error(t, err)

	v, err := PaymentMethodQR.Value()
	require.NoError(t, err)
	assert.Equal(t, "qr", v)
}

func TestPaymentMethodScan(t *testing.T) {
	for _, raw := range []string{"cash", "card", "qr", "other"} {
		var m PaymentMethod
		require.NoError(t, m.Scan(raw))
		assert.Equal(t, PaymentMethod(raw), m)
	}

	var m PaymentMethod
	assert.Error(t, m.Scan("bitcoin"))
}

func TestUserRoleScan(t *testing.T) {
	var r UserRole
	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, UserRoleAdmin, r)
	assert.Error(t, r.Scan("owner"))
}
