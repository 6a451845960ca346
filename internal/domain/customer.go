package domain

import "time"

type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address,omitempty"`
	HashCreditCard string    `json:"hash_credit_card"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Chargeable reports whether the customer can back a payment right now:
// active with a card hash on file. Re-checked at processing time, not only
// at transaction creation.
func (c *Customer) Chargeable() bool {
	return c != nil && c.IsActive && c.HashCreditCard != ""
}

// CustomerUpdate enumerates the fields a PUT may change.
type CustomerUpdate struct {
	Name           *string
	Email          *string
	Address        *string
	HashCreditCard *string
	IsActive       *bool
}

func (u *CustomerUpdate) ApplyTo(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.HashCreditCard != nil {
		c.HashCreditCard = *u.HashCreditCard
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}

type CustomerRepository interface {
	CreateCustomer(c *Customer) error
	GetCustomerByID(id int64) (*Customer, error)
	ListCustomers(offset, limit int) ([]Customer, error)
	SaveCustomer(c *Customer) error
}
