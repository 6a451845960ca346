package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceDirection tells the balance mutator which way to move the merchant
// account.
type BalanceDirection int

const (
	BalanceCredit BalanceDirection = iota
	BalanceDebit
)

type Merchant struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	IsActive          bool            `json:"is_active"`
	AuthenticationKey string          `json:"-"`
	AmountAccount     decimal.Decimal `json:"amount_account"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ApplyBalance moves the merchant account by amount in the given direction.
// There is no floor: a debit may take the balance below zero. The caller
// persists the merchant in the same unit of work as the transaction state
// change.
func (m *Merchant) ApplyBalance(amount decimal.Decimal, dir BalanceDirection) {
	if dir == BalanceDebit {
		m.AmountAccount = m.AmountAccount.Sub(amount)
		return
	}
	m.AmountAccount = m.AmountAccount.Add(amount)
}

// MerchantUpdate enumerates the fields a PUT may change.
type MerchantUpdate struct {
	Name              *string
	Email             *string
	IsActive          *bool
	AuthenticationKey *string
	AmountAccount     *decimal.Decimal
}

func (u *MerchantUpdate) ApplyTo(m *Merchant) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Email != nil {
		m.Email = *u.Email
	}
	if u.IsActive != nil {
		m.IsActive = *u.IsActive
	}
	if u.AuthenticationKey != nil {
		m.AuthenticationKey = *u.AuthenticationKey
	}
	if u.AmountAccount != nil {
		m.AmountAccount = *u.AmountAccount
	}
}

type MerchantRepository interface {
	CreateMerchant(m *Merchant) error
	GetMerchantByID(id int64) (*Merchant, error)
	// GetMerchantByIDForUpdate locks the row before a balance write.
	GetMerchantByIDForUpdate(id int64) (*Merchant, error)
	ListMerchants(offset, limit int) ([]Merchant, error)
	SaveMerchant(m *Merchant) error
}
