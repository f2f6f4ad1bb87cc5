// Package service implements the domain operations: account lifecycle, money
// movement and identity management. Every operation that performs more than
// one write runs inside the store's atomic session scope.
package service

import (
	"context"

	"github.com/distributedbanking/processing/internal/models"
)

// Sessions is the atomic multi-write scope of the store. Writes issued
// through the ctx given to fn commit or discard as a whole.
type Sessions interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AccountsRepository interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	All(ctx context.Context) ([]models.Account, error)
	FindByOwner(ctx context.Context, customerID string) ([]models.Account, error)
	OwnedBy(ctx context.Context, accountID, customerID string) (bool, error)
	Add(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
}

type CustomersRepository interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
	Add(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Remove(ctx context.Context, id string) error
}

type WorkersRepository interface {
	Add(ctx context.Context, worker *models.Worker) error
	Remove(ctx context.Context, id string) error
}

type TransactionsRepository interface {
	Add(ctx context.Context, transaction *models.Transaction) error
	AccountHistory(ctx context.Context, accountID string) ([]models.Transaction, error)
}

type UsersRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Remove(ctx context.Context, id string) error
}

type RolesRepository interface {
	Get(ctx context.Context, id string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Add(ctx context.Context, role *models.Role) error
}
