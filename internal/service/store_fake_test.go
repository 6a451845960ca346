package service

import (
	"sync"

	"github.com/davidgg090/paymentAPI/internal/domain"
)

// fakeStore is an in-memory domain.Store. WithTransaction serializes
// callbacks with a mutex, mirroring the row-lock serialization the SQL store
// provides, which is what the concurrency tests rely on.
type fakeStore struct {
	mu sync.Mutex

	customers    map[int64]*domain.Customer
	merchants    map[int64]*domain.Merchant
	transactions map[int64]*domain.Transaction
	users        map[int64]*domain.User
	tokens       map[string]*domain.AccessToken
	auditLogs    []*domain.AuditLog

	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:    make(map[int64]*domain.Customer),
		merchants:    make(map[int64]*domain.Merchant),
		transactions: make(map[int64]*domain.Transaction),
		users:        make(map[int64]*domain.User),
		tokens:       make(map[string]*domain.AccessToken),
		nextID:       1,
	}
}

func (f *fakeStore) allocID() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) Customers() domain.CustomerRepository       { return &fakeCustomerRepo{f} }
func (f *fakeStore) Merchants() domain.MerchantRepository       { return &fakeMerchantRepo{f} }
func (f *fakeStore) Transactions() domain.TransactionRepository { return &fakeTransactionRepo{f} }
func (f *fakeStore) Users() domain.UserRepository               { return &fakeUserRepo{f} }
func (f *fakeStore) AuditLogs() domain.AuditLogRepository       { return &fakeAuditRepo{f} }

func (f *fakeStore) WithTransaction(fn func(domain.Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) CreateCustomer(c *domain.Customer) error {
	c.ID = r.s.allocID()
	clone := *c
	r.s.customers[c.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) GetCustomerByID(id int64) (*domain.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCustomerRepo) ListCustomers(offset, limit int) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.s.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) SaveCustomer(c *domain.Customer) error {
	clone := *c
	r.s.customers[c.ID] = &clone
	return nil
}

type fakeMerchantRepo struct{ s *fakeStore }

func (r *fakeMerchantRepo) CreateMerchant(m *domain.Merchant) error {
	m.ID = r.s.allocID()
	clone := *m
	r.s.merchants[m.ID] = &clone
	return nil
}

func (r *fakeMerchantRepo) GetMerchantByID(id int64) (*domain.Merchant, error) {
	m, ok := r.s.merchants[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMerchantRepo) GetMerchantByIDForUpdate(id int64) (*domain.Merchant, error) {
	return r.GetMerchantByID(id)
}

func (r *fakeMerchantRepo) ListMerchants(offset, limit int) ([]domain.Merchant, error) {
	var out []domain.Merchant
	for _, m := range r.s.merchants {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMerchantRepo) SaveMerchant(m *domain.Merchant) error {
	clone := *m
	r.s.merchants[m.ID] = &clone
	return nil
}

type fakeTransactionRepo struct{ s *fakeStore }

func (r *fakeTransactionRepo) CreateTransaction(tx *domain.Transaction) error {
	tx.ID = r.s.allocID()
	clone := *tx
	r.s.transactions[tx.ID] = &clone
	return nil
}

func (r *fakeTransactionRepo) GetTransactionByID(id int64) (*domain.Transaction, error) {
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	clone := *tx
	return &clone, nil
}

func (r *fakeTransactionRepo) GetTransactionByToken(token string) (*domain.Transaction, error) {
	for _, tx := range r.s.transactions {
		if tx.Token == token {
			clone := *tx
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetTransactionByTokenForUpdate(token string) (*domain.Transaction, error) {
	return r.GetTransactionByToken(token)
}

func (r *fakeTransactionRepo) GetTransactionsByMerchantID(merchantID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.MerchantID == merchantID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) GetTransactionsByCustomerID(customerID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.CustomerID == customerID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) SaveTransaction(tx *domain.Transaction) error {
	clone := *tx
	r.s.transactions[tx.ID] = &clone
	return nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) CreateUser(u *domain.User) error {
	u.ID = r.s.allocID()
	clone := *u
	r.s.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SaveUser(u *domain.User) error {
	clone := *u
	r.s.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) CreateAccessToken(t *domain.AccessToken) error {
	t.ID = r.s.allocID()
	clone := *t
	r.s.tokens[t.AccessToken] = &clone
	return nil
}

func (r *fakeUserRepo) GetAccessToken(token string) (*domain.AccessToken, error) {
	t, ok := r.s.tokens[token]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) CreateAuditLog(entry *domain.AuditLog) error {
	entry.ID = r.s.allocID()
	clone := *entry
	r.s.auditLogs = append(r.s.auditLogs, &clone)
	return nil
}
