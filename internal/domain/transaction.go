package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// State is the lifecycle state of a transaction. Pending is the only state
// transitions are allowed out of; the other three are terminal.
type State string

const (
	StatePending  State = "pending"
	StateSuccess  State = "success"
	StateRefunded State = "refunded"
	StateFailed   State = "failed"
)

// Terminal reports whether no further transition is legal from s.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateRefunded || s == StateFailed
}

// Intent is the requested processing operation on a pending transaction.
type Intent string

const (
	IntentCapture Intent = "capture"
	IntentRefund  Intent = "refund"
)

// TargetState returns the terminal state a transaction reaches when the
// intent is accepted.
func (i Intent) TargetState() State {
	if i == IntentRefund {
		return StateRefunded
	}
	return StateSuccess
}

// Direction returns the balance direction the intent applies to the merchant
// account: captures credit the merchant, refunds debit it.
func (i Intent) Direction() BalanceDirection {
	if i == IntentRefund {
		return BalanceDebit
	}
	return BalanceCredit
}

type Transaction struct {
	ID             int64           `json:"id"`
	MerchantID     int64           `json:"merchant_id"`
	CustomerID     int64           `json:"customer_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	State          State           `json:"state"`
	HashCreditCard string          `json:"hash_credit_card"`
	Token          string          `json:"token"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransactionUpdate enumerates the fields a PUT may change. Nil fields are
// left untouched by ApplyTo.
type TransactionUpdate struct {
	MerchantID     *int64
	CustomerID     *int64
	Amount         *decimal.Decimal
	Currency       *string
	State          *State
	HashCreditCard *string
}

// ApplyTo merges the set fields into tx.
func (u *TransactionUpdate) ApplyTo(tx *Transaction) {
	if u.MerchantID != nil {
		tx.MerchantID = *u.MerchantID
	}
	if u.CustomerID != nil {
		tx.CustomerID = *u.CustomerID
	}
	if u.Amount != nil {
		tx.Amount = *u.Amount
	}
	if u.Currency != nil {
		tx.Currency = *u.Currency
	}
	if u.State != nil {
		tx.State = *u.State
	}
	if u.HashCreditCard != nil {
		tx.HashCreditCard = *u.HashCreditCard
	}
}

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) error
	GetTransactionByID(id int64) (*Transaction, error)
	GetTransactionByToken(token string) (*Transaction, error)
	// GetTransactionByTokenForUpdate locks the row for the remainder of the
	// enclosing database transaction.
	GetTransactionByTokenForUpdate(token string) (*Transaction, error)
	GetTransactionsByMerchantID(merchantID int64) ([]Transaction, error)
	GetTransactionsByCustomerID(customerID int64) ([]Transaction, error)
	SaveTransaction(tx *Transaction) error
}
