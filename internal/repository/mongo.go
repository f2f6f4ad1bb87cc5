// Package repository implements the typed-document store boundary on
// MongoDB: per-entity collections with filtered reads, identity-based
// get/update/remove and an atomic multi-write session scope.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/distributedbanking/processing/internal/models"
)

const (
	collectionAccounts     = "accounts"
	collectionCustomers    = "customers"
	collectionWorkers      = "workers"
	collectionTransactions = "transactions"
	collectionUsers        = "users"
	collectionRoles        = "roles"
)

// Database wraps the Mongo client and exposes the atomic session scope every
// multi-write domain operation runs in.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the Mongo connection, registers the decimal codec and
// verifies the server is reachable.
func Connect(ctx context.Context, uri, name string) (*Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(decimalRegistry()).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{client: client, db: client.Database(name)}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a single session scope: every write issued
// through the ctx passed to fn commits or discards as a whole. Calls nested
// inside an already-open scope join it instead of opening a second one.
func (d *Database) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := d.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// Accounts returns the accounts repository bound to this database.
func (d *Database) Accounts() *AccountsRepository {
	return &AccountsRepository{collection[models.Account]{d.db.Collection(collectionAccounts)}}
}

func (d *Database) Customers() *CustomersRepository {
	return &CustomersRepository{collection[models.Customer]{d.db.Collection(collectionCustomers)}}
}

func (d *Database) Workers() *WorkersRepository {
	return &WorkersRepository{collection[models.Worker]{d.db.Collection(collectionWorkers)}}
}

func (d *Database) Transactions() *TransactionsRepository {
	return &TransactionsRepository{collection[models.Transaction]{d.db.Collection(collectionTransactions)}}
}

func (d *Database) Users() *UsersRepository {
	return &UsersRepository{collection[models.User]{d.db.Collection(collectionUsers)}}
}

func (d *Database) Roles() *RolesRepository {
	return &RolesRepository{collection[models.Role]{d.db.Collection(collectionRoles)}}
}
