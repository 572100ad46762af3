package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMode_UnmarshalAcceptsDisplayLabel(t *testing.T) {
	var m PaymentMode
	require.NoError(t, json.Unmarshal([]byte(`"Online Payment"`), &m))
	assert.Equal(t, PaymentModeOnlinePayment, m)
	assert.True(t, m.IsValid())
}

func TestPaymentMode_IsValid(t *testing.T) {
	for _, m := range PaymentModes {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, PaymentMode("Cheque").IsValid())
	assert.False(t, PaymentMode("").IsValid())
}

func TestPaymentMode_Scan(t *testing.T) {
	var m PaymentMode
	require.NoError(t, m.Scan([]byte("UPI")))
	assert.Equal(t, PaymentModeUPI, m)
	require.NoError(t, m.Scan(nil))
	assert.Equal(t, PaymentModeCash, m)
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, UserRoleAdmin.IsValid())
	assert.True(t, UserRoleCashier.IsValid())
	assert.False(t, UserRole("manager").IsValid())
}
