package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/distributedbanking/processing/internal/models"
)

// ---- in-memory fakes ----

// fakeSessions runs the scoped function directly; atomicity is the store's
// concern, not what these tests exercise.
type fakeSessions struct{}

func (fakeSessions) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAccounts struct {
	byID map[string]models.Account
	err  error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[string]models.Account)}
}

func (f *fakeAccounts) Get(_ context.Context, id string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (f *fakeAccounts) All(_ context.Context) ([]models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Account, 0, len(f.byID))
	for _, account := range f.byID {
		out = append(out, account)
	}
	return out, nil
}

func (f *fakeAccounts) FindByOwner(_ context.Context, customerID string) ([]models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Account
	for _, account := range f.byID {
		if account.Owner != nil && *account.Owner == customerID {
			out = append(out, account)
		}
	}
	return out, nil
}

func (f *fakeAccounts) OwnedBy(_ context.Context, accountID, customerID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	account, ok := f.byID[accountID]
	return ok && account.Owner != nil && *account.Owner == customerID, nil
}

func (f *fakeAccounts) Add(_ context.Context, account *models.Account) error {
	if f.err != nil {
		return f.err
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	f.byID[account.ID.Hex()] = *account
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, account *models.Account) error {
	if f.err != nil {
		return f.err
	}
	f.byID[account.ID.Hex()] = *account
	return nil
}

type fakeCustomers struct {
	byID map[string]models.Customer
	err  error
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{byID: make(map[string]models.Customer)}
}

func (f *fakeCustomers) Get(_ context.Context, id string) (*models.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	customer, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (f *fakeCustomers) Add(_ context.Context, customer *models.Customer) error {
	if f.err != nil {
		return f.err
	}
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	f.byID[customer.ID.Hex()] = *customer
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, customer *models.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.byID[customer.ID.Hex()] = *customer
	return nil
}

func (f *fakeCustomers) Remove(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.byID, id)
	return nil
}

type fakeWorkers struct {
	byID map[string]models.Worker
}

func newFakeWorkers() *fakeWorkers {
	return &fakeWorkers{byID: make(map[string]models.Worker)}
}

func (f *fakeWorkers) Add(_ context.Context, worker *models.Worker) error {
	if worker.ID.IsZero() {
		worker.ID = primitive.NewObjectID()
	}
	f.byID[worker.ID.Hex()] = *worker
	return nil
}

func (f *fakeWorkers) Remove(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeTransactions struct {
	records []models.Transaction
	err     error
}

func (f *fakeTransactions) Add(_ context.Context, transaction *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, *transaction)
	return nil
}

func (f *fakeTransactions) AccountHistory(_ context.Context, accountID string) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Transaction
	for i := len(f.records) - 1; i >= 0; i-- {
		record := f.records[i]
		if record.SourceAccountID == accountID ||
			(record.DestinationAccountID != nil && *record.DestinationAccountID == accountID) {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeUsers struct {
	byID map[string]models.User
	err  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]models.User)}
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	normalized := models.Normalize(email)
	for _, user := range f.byID {
		if user.NormalizedEmail == normalized {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Add(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byID[user.ID.Hex()] = *user
	return nil
}

func (f *fakeUsers) Remove(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.byID, id)
	return nil
}

type fakeRoles struct {
	byID map[string]models.Role
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{byID: make(map[string]models.Role)}
}

func (f *fakeRoles) Get(_ context.Context, id string) (*models.Role, error) {
	role, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (f *fakeRoles) GetByName(_ context.Context, name string) (*models.Role, error) {
	normalized := models.Normalize(name)
	for _, role := range f.byID {
		if role.NormalizedName == normalized {
			r := role
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRoles) Add(_ context.Context, role *models.Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	f.byID[role.ID.Hex()] = *role
	return nil
}

// seqGenerator hands out predictable expiration dates and strictly increasing
// security codes, so tests can tell a regenerated code from a reused one.
type seqGenerator struct {
	next int
}

func (g *seqGenerator) ExpirationDate() time.Time {
	return time.Now().UTC().Add(500 * 24 * time.Hour)
}

func (g *seqGenerator) SecurityCode() string {
	g.next++
	return strconv.Itoa(100 + g.next)
}

// ---- shared helpers ----

func seedCustomer(t interface{ Fatalf(string, ...any) }, customers *fakeCustomers, email string) string {
	customer := &models.Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Accounts:  []string{},
	}
	if err := customers.Add(context.Background(), customer); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer.ID.Hex()
}

func seedRoles(roles *fakeRoles) {
	for _, name := range []string{models.RoleCustomer, models.RoleWorker, models.RoleAdministrator} {
		_ = roles.Add(context.Background(), &models.Role{
			Name:           name,
			NormalizedName: models.Normalize(name),
		})
	}
}

var errStore = fmt.Errorf("store unavailable")
