package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

func newTransactionServiceFixture(t *testing.T) (*fakeStore, *TransactionService, *domain.Customer, *domain.Merchant) {
	t.Helper()

	store := newFakeStore()

	customer := &domain.Customer{Name: "Alice", Email: "alice@example.com", HashCreditCard: "H", IsActive: true}
	require.NoError(t, store.Customers().CreateCustomer(customer))

	merchant := &domain.Merchant{Name: "Acme", Email: "acme@example.com", IsActive: true, AuthenticationKey: "key"}
	require.NoError(t, store.Merchants().CreateMerchant(merchant))

	return store, NewTransactionService(store, testLogger()), customer, merchant
}

func TestCreateTransaction_AssignsTokenAndPendingState(t *testing.T) {
	_, svc, customer, merchant := newTransactionServiceFixture(t)

	tx, err := svc.CreateTransaction(&CreateTransactionRequest{
		MerchantID:     merchant.ID,
		CustomerID:     customer.ID,
		Amount:         decimal.RequireFromString("100.00"),
		Currency:       "usd",
		HashCreditCard: "H",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatePending, tx.State)
	assert.NotEmpty(t, tx.Token)
	assert.Equal(t, "USD", tx.Currency)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("100.00")))
}

func TestCreateTransaction_TokensAreUnique(t *testing.T) {
	_, svc, customer, merchant := newTransactionServiceFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		tx, err := svc.CreateTransaction(&CreateTransactionRequest{
			MerchantID:     merchant.ID,
			CustomerID:     customer.ID,
			Amount:         decimal.RequireFromString("1.00"),
			Currency:       "USD",
			HashCreditCard: "H",
		})
		require.NoError(t, err)
		require.False(t, seen[tx.Token])
		seen[tx.Token] = true
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	_, svc, customer, merchant := newTransactionServiceFixture(t)

	tests := []struct {
		name string
		req  CreateTransactionRequest
		code errors.ErrorCode
	}{
		{
			name: "zero amount",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: customer.ID,
				Amount: decimal.Zero, Currency: "USD", HashCreditCard: "H",
			},
			code: errors.InvalidAmount,
		},
		{
			name: "negative amount",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: customer.ID,
				Amount: decimal.RequireFromString("-5.00"), Currency: "USD", HashCreditCard: "H",
			},
			code: errors.InvalidAmount,
		},
		{
			name: "too many decimal places",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: customer.ID,
				Amount: decimal.RequireFromString("1.005"), Currency: "USD", HashCreditCard: "H",
			},
			code: errors.InvalidAmount,
		},
		{
			name: "bad currency",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: customer.ID,
				Amount: decimal.RequireFromString("1.00"), Currency: "DOLLARS", HashCreditCard: "H",
			},
			code: errors.InvalidInput,
		},
		{
			name: "missing card hash",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: customer.ID,
				Amount: decimal.RequireFromString("1.00"), Currency: "USD",
			},
			code: errors.InvalidInput,
		},
		{
			name: "unknown customer",
			req: CreateTransactionRequest{
				MerchantID: merchant.ID, CustomerID: 9999,
				Amount: decimal.RequireFromString("1.00"), Currency: "USD", HashCreditCard: "H",
			},
			code: errors.CustomerNotFound,
		},
		{
			name: "unknown merchant",
			req: CreateTransactionRequest{
				MerchantID: 9999, CustomerID: customer.ID,
				Amount: decimal.RequireFromString("1.00"), Currency: "USD", HashCreditCard: "H",
			},
			code: errors.MerchantNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(&tt.req)
			require.Error(t, err)

			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	_, svc, _, _ := newTransactionServiceFixture(t)

	_, err := svc.GetTransactionByID(42)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.TransactionNotFound, appErr.Code)

	_, err = svc.GetTransactionByToken("missing")
	require.Error(t, err)
	appErr, ok = err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.TransactionNotFound, appErr.Code)
}

func TestUpdateTransaction_MergesOnlyNamedFields(t *testing.T) {
	_, svc, customer, merchant := newTransactionServiceFixture(t)

	tx, err := svc.CreateTransaction(&CreateTransactionRequest{
		MerchantID:     merchant.ID,
		CustomerID:     customer.ID,
		Amount:         decimal.RequireFromString("100.00"),
		Currency:       "USD",
		HashCreditCard: "H",
	})
	require.NoError(t, err)

	newAmount := decimal.RequireFromString("75.50")
	updated, err := svc.UpdateTransaction(tx.ID, &domain.TransactionUpdate{Amount: &newAmount})
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(newAmount))
	assert.Equal(t, tx.Currency, updated.Currency)
	assert.Equal(t, tx.Token, updated.Token)
	assert.Equal(t, tx.HashCreditCard, updated.HashCreditCard)
	assert.Equal(t, domain.StatePending, updated.State)
}

func TestListTransactionsByParty(t *testing.T) {
	_, svc, customer, merchant := newTransactionServiceFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateTransaction(&CreateTransactionRequest{
			MerchantID:     merchant.ID,
			CustomerID:     customer.ID,
			Amount:         decimal.RequireFromString("10.00"),
			Currency:       "USD",
			HashCreditCard: "H",
		})
		require.NoError(t, err)
	}

	byMerchant, err := svc.GetTransactionsByMerchantID(merchant.ID)
	require.NoError(t, err)
	assert.Len(t, byMerchant, 3)

	byCustomer, err := svc.GetTransactionsByCustomerID(customer.ID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 3)
}
