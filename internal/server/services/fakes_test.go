package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/config"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/customers"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/states"
)

// memStore backs every fake repository. Rollbacks are not modelled; the
// sqlmock expectations check commit/rollback instead.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*models.Customer
	sessions  map[int64]*models.CustomerAuth
	addresses map[int64]*models.Address
	owners    map[int64]int64
	states    map[string]*models.State

	// failWith, when set, is returned by every repository call.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int64]*models.Customer{},
		sessions:  map[int64]*models.CustomerAuth{},
		addresses: map[int64]*models.Address{},
		owners:    map[int64]int64{},
		states: map[string]*models.State{
			"st-ka": {ID: 1, UUID: "st-ka", Name: "Karnataka"},
			"st-go": {ID: 2, UUID: "st-go", Name: "Goa"},
		},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type fakeRepoManager struct{ st *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Customers(dbx.DBTX) customers.Repository      { return (*fakeCustomers)(f.st) }
func (f *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository        { return (*fakeSessions)(f.st) }
func (f *fakeRepoManager) Addresses(dbx.DBTX) addresses.Repository      { return (*fakeAddresses)(f.st) }
func (f *fakeRepoManager) States(dbx.DBTX) states.Repository            { return (*fakeStates)(f.st) }

type fakeCustomers memStore

func (r *fakeCustomers) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	c.ID = m.id()
	cp := *c
	m.customers[c.ID] = &cp
	return c, nil
}

func (r *fakeCustomers) find(match func(*models.Customer) bool) (*models.Customer, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := make([]int64, 0, len(m.customers))
	for id := range m.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if c := m.customers[id]; match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeCustomers) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	return r.find(func(c *models.Customer) bool { return c.ID == id })
}

func (r *fakeCustomers) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	return r.find(func(c *models.Customer) bool { return c.Email == email })
}

func (r *fakeCustomers) GetByContactNumber(_ context.Context, n string) (*models.Customer, error) {
	return r.find(func(c *models.Customer) bool { return c.ContactNumber == n })
}

func (r *fakeCustomers) UpdateName(_ context.Context, id int64, first, last string) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.FirstName, c.LastName = first, last
	return nil
}

func (r *fakeCustomers) UpdatePassword(_ context.Context, id int64, salt, digest string) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.Salt, c.Password = salt, digest
	return nil
}

type fakeSessions memStore

func (r *fakeSessions) Create(_ context.Context, a *models.CustomerAuth) (*models.CustomerAuth, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, s := range m.sessions {
		if s.AccessToken == a.AccessToken {
			return nil, common.NewStoreError("create session", sql.ErrTxDone)
		}
	}
	a.ID = m.id()
	cp := *a
	m.sessions[a.ID] = &cp
	return a, nil
}

func (r *fakeSessions) GetByToken(_ context.Context, token string) (*models.CustomerAuth, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, s := range m.sessions {
		if s.AccessToken == token {
			cp := *s
			if c, ok := m.customers[s.CustomerID]; ok {
				cp.CustomerUUID = c.UUID
			}
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeSessions) SetLogoutAt(_ context.Context, id int64, at time.Time) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.LogoutAt = &at
	return nil
}

type fakeAddresses memStore

func (r *fakeAddresses) Create(_ context.Context, a *models.Address) (*models.Address, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	cp := *a
	m.addresses[a.ID] = &cp
	return a, nil
}

func (r *fakeAddresses) GetByUUID(_ context.Context, id string) (*models.Address, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.addresses {
		if a.UUID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeAddresses) Delete(_ context.Context, id int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.addresses, id)
	return nil
}

func (r *fakeAddresses) CreateOwnership(_ context.Context, customerID, addressID int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[addressID] = customerID
	return nil
}

func (r *fakeAddresses) DeleteOwnership(_ context.Context, addressID int64) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.owners, addressID)
	return nil
}

func (r *fakeAddresses) GetOwnerID(_ context.Context, addressID int64) (int64, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[addressID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return owner, nil
}

func (r *fakeAddresses) ListByCustomer(_ context.Context, customerID int64) ([]*models.Address, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Address, 0)
	for addressID, owner := range m.owners {
		if owner == customerID {
			cp := *m.addresses[addressID]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeStates memStore

func (r *fakeStates) GetByUUID(_ context.Context, id string) (*models.State, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.states[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStates) List(context.Context) ([]*models.State, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]*models.State, 0, len(m.states))
	for _, s := range m.states {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db        *sql.DB
	mock      sqlmock.Sqlmock
	store     *memStore
	clock     *fakeClock
	customers *CustomerService
	addresses *AddressService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		SessionValidityDuration: 8 * time.Hour,
		HashTime:                1,
		HashMemoryKB:            1024,
		HashThreads:             1,
	}

	st := newMemStore()
	rm := &fakeRepoManager{st: st}
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{
		db:        db,
		mock:      mock,
		store:     st,
		clock:     clock,
		customers: NewCustomerService(db, rm, cfg, clock.Now, nil),
		addresses: NewAddressService(db, rm, clock.Now, nil),
	}
}

// commits and rollbacks queue the expectations of the next unit of work.
func (f *fixture) commits() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *fixture) rollbacks() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func (f *fixture) verify(t *testing.T) {
	t.Helper()
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

const (
	validPassword = "Password1!"
	validEmail    = "ann@example.com"
	validContact  = "9876543210"
)

// signupAndLogin registers a customer with contact and returns its token.
func (f *fixture) signupAndLogin(t *testing.T, email, contact string) string {
	t.Helper()
	f.commits()
	_, err := f.customers.Signup(context.Background(), SignupRequest{
		FirstName: "Ann", Email: email, ContactNumber: contact, Password: validPassword,
	})
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	f.commits()
	res, err := f.customers.Login(context.Background(), email, validPassword)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	return res.Session.AccessToken
}
