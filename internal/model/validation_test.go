package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	verr, ok := AsValidation(err)
	require.True(t, ok, "expected ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("store_admin1"))
	requireInvalid(t, ValidateUsername(""), "username")
	requireInvalid(t, ValidateUsername("ab"), "username")
	requireInvalid(t, ValidateUsername("bad name"), "username")
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	requireInvalid(t, ValidatePassword(""), "password")
	err := ValidatePassword("1234567")
	requireInvalid(t, err, "password")
	assert.Equal(t, "Password must be at least 8 characters long", err.Error())
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleAdmin))
	assert.NoError(t, ValidateRole(RoleUser))
	requireInvalid(t, ValidateRole("owner"), "role")
}

func TestValidateSKU(t *testing.T) {
	assert.NoError(t, ValidateSKU("BOLT10"))
	requireInvalid(t, ValidateSKU(""), "sku")
	requireInvalid(t, ValidateSKU("abc123"), "sku")
	requireInvalid(t, ValidateSKU("AB"), "sku")
	requireInvalid(t, ValidateSKU("BOLT-10"), "sku")
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.RequireFromString("0.01")))
	requireInvalid(t, ValidatePrice(decimal.Zero), "price")
	requireInvalid(t, ValidatePrice(decimal.NewFromInt(-3)), "price")
}

func TestValidateReorderFields(t *testing.T) {
	assert.NoError(t, ValidateReorderPoint(0))
	requireInvalid(t, ValidateReorderPoint(-1), "reorder_point")

	assert.NoError(t, ValidateReorderQuantity(0))
	requireInvalid(t, ValidateReorderQuantity(-1), "reorder_quantity")

	assert.NoError(t, ValidateOrderQuantity(1))
	requireInvalid(t, ValidateOrderQuantity(0), "reorder_quantity")
}

func TestValidateVendorContact(t *testing.T) {
	assert.NoError(t, ValidateVendorEmail("sales@acme.io"))
	err := ValidateVendorEmail("not-an-email")
	requireInvalid(t, err, "email")
	assert.Equal(t, "Invalid email format", err.Error())

	assert.NoError(t, ValidateVendorPhone("+15550001111"))
	assert.NoError(t, ValidateVendorPhone("5550001111"))
	requireInvalid(t, ValidateVendorPhone("555-000"), "phone")
	requireInvalid(t, ValidateVendorPhone("+1234567890123456"), "phone")
}

func TestValidateOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusOrdered, OrderStatusClosed} {
		assert.NoError(t, ValidateOrderStatus(s))
	}
	requireInvalid(t, ValidateOrderStatus("Pending"), "status")
}

func TestValidateTransaction(t *testing.T) {
	assert.NoError(t, ValidateTransactionType(TxIssue))
	assert.NoError(t, ValidateTransactionType(TxReceive))
	err := ValidateTransactionType("adjust")
	requireInvalid(t, err, "transaction_type")
	assert.Equal(t, "Transaction type must be 'issue' or 'receive'", err.Error())

	assert.NoError(t, ValidateTransactionQuantity(1))
	requireInvalid(t, ValidateTransactionQuantity(0), "quantity")
	err = ValidateTransactionQuantity(-5)
	requireInvalid(t, err, "quantity")
	assert.Contains(t, err.Error(), "greater than 0")
	assert.Contains(t, err.Error(), "transaction_type 'issue'")
}
