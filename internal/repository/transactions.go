package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/distributedbanking/processing/internal/models"
)

type TransactionsRepository struct {
	collection[models.Transaction]
}

func (r *TransactionsRepository) Add(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, transaction)
}

// AccountHistory returns every transaction touching the account, as source or
// destination, newest first.
func (r *TransactionsRepository) AccountHistory(ctx context.Context, accountID string) ([]models.Transaction, error) {
	filter := bson.M{"$or": []bson.M{
		{"sourceAccountId": accountID},
		{"destinationAccountId": accountID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return r.find(ctx, filter, opts)
}
