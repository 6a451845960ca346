package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStateTerminal(t *testing.T) {
	assert.False(t, StatePending.Terminal())
	assert.True(t, StateSuccess.Terminal())
	assert.True(t, StateRefunded.Terminal())
	assert.True(t, StateFailed.Terminal())
}

func TestIntentTargets(t *testing.T) {
	assert.Equal(t, StateSuccess, IntentCapture.TargetState())
	assert.Equal(t, StateRefunded, IntentRefund.TargetState())
	assert.Equal(t, BalanceCredit, IntentCapture.Direction())
	assert.Equal(t, BalanceDebit, IntentRefund.Direction())
}

func TestApplyBalance(t *testing.T) {
	m := &Merchant{AmountAccount: decimal.RequireFromString("10.00")}

	m.ApplyBalance(decimal.RequireFromString("0.10"), BalanceCredit)
	m.ApplyBalance(decimal.RequireFromString("0.20"), BalanceCredit)
	assert.True(t, m.AmountAccount.Equal(decimal.RequireFromString("10.30")))

	m.ApplyBalance(decimal.RequireFromString("10.31"), BalanceDebit)
	assert.True(t, m.AmountAccount.Equal(decimal.RequireFromString("-0.01")))
}

func TestCustomerChargeable(t *testing.T) {
	var nilCustomer *Customer
	assert.False(t, nilCustomer.Chargeable())
	assert.False(t, (&Customer{IsActive: false, HashCreditCard: "H"}).Chargeable())
	assert.False(t, (&Customer{IsActive: true}).Chargeable())
	assert.True(t, (&Customer{IsActive: true, HashCreditCard: "H"}).Chargeable())
}

func TestTransactionUpdateApplyTo(t *testing.T) {
	tx := &Transaction{
		MerchantID:     1,
		CustomerID:     2,
		Amount:         decimal.RequireFromString("100.00"),
		Currency:       "USD",
		State:          StatePending,
		HashCreditCard: "H",
		Token:          "tok",
	}

	amount := decimal.RequireFromString("50.00")
	state := StateFailed
	(&TransactionUpdate{Amount: &amount, State: &state}).ApplyTo(tx)

	assert.True(t, tx.Amount.Equal(amount))
	assert.Equal(t, StateFailed, tx.State)
	// Unset fields stay put.
	assert.Equal(t, int64(1), tx.MerchantID)
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, "tok", tx.Token)
}

func TestEntityUpdatesApplyOnlyNamedFields(t *testing.T) {
	c := &Customer{Name: "Alice", Email: "a@example.com", HashCreditCard: "H", IsActive: true}
	inactive := false
	(&CustomerUpdate{IsActive: &inactive}).ApplyTo(c)
	assert.False(t, c.IsActive)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, "H", c.HashCreditCard)

	m := &Merchant{Name: "Acme", Email: "m@example.com", IsActive: true, AmountAccount: decimal.RequireFromString("5.00")}
	name := "Acme Ltd"
	(&MerchantUpdate{Name: &name}).ApplyTo(m)
	assert.Equal(t, "Acme Ltd", m.Name)
	assert.True(t, m.AmountAccount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, m.IsActive)
}
