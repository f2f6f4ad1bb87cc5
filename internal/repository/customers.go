package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/distributedbanking/processing/internal/models"
)

type CustomersRepository struct {
	collection[models.Customer]
}

func (r *CustomersRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.get(ctx, oid)
}

func (r *CustomersRepository) Add(ctx context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, customer)
}

func (r *CustomersRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.replace(ctx, customer.ID, customer)
}

func (r *CustomersRepository) Remove(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	return r.remove(ctx, oid)
}

type WorkersRepository struct {
	collection[models.Worker]
}

func (r *WorkersRepository) Get(ctx context.Context, id string) (*models.Worker, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.get(ctx, oid)
}

func (r *WorkersRepository) Add(ctx context.Context, worker *models.Worker) error {
	if worker.ID.IsZero() {
		worker.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, worker)
}

func (r *WorkersRepository) Remove(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	return r.remove(ctx, oid)
}
