package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/distributedbanking/processing/internal/models"
)

type AccountsRepository struct {
	collection[models.Account]
}

func (r *AccountsRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.get(ctx, oid)
}

func (r *AccountsRepository) All(ctx context.Context) ([]models.Account, error) {
	return r.find(ctx, bson.M{})
}

func (r *AccountsRepository) FindByOwner(ctx context.Context, customerID string) ([]models.Account, error) {
	return r.find(ctx, bson.M{"owner": customerID})
}

// OwnedBy reports whether the account exists, is owned, and is owned by the
// given customer.
func (r *AccountsRepository) OwnedBy(ctx context.Context, accountID, customerID string) (bool, error) {
	oid, ok := parseID(accountID)
	if !ok {
		return false, nil
	}
	return r.exists(ctx, bson.M{"_id": oid, "owner": customerID})
}

func (r *AccountsRepository) Add(ctx context.Context, account *models.Account) error {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, account)
}

func (r *AccountsRepository) Update(ctx context.Context, account *models.Account) error {
	return r.replace(ctx, account.ID, account)
}
