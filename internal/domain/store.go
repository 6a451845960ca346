package domain

// Store is the unit-of-work boundary over the ledger. Repositories obtained
// inside a WithTransaction callback share one database transaction; the
// callback's error decides commit or rollback. The core never talks to
// storage directly, it composes these primitives and expects each unit to
// fully succeed or fully fail.
type Store interface {
	Customers() CustomerRepository
	Merchants() MerchantRepository
	Transactions() TransactionRepository
	Users() UserRepository
	AuditLogs() AuditLogRepository
	WithTransaction(fn func(Store) error) error
}
