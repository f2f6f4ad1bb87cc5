package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/distributedbanking/processing/internal/models"
)

type UsersRepository struct {
	collection[models.User]
}

func (r *UsersRepository) Get(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.get(ctx, oid)
}

// GetByEmail looks the credential record up by its normalized email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"normalizedEmail": models.Normalize(email)})
}

func (r *UsersRepository) Add(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, user)
}

func (r *UsersRepository) Remove(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return nil
	}
	return r.remove(ctx, oid)
}

type RolesRepository struct {
	collection[models.Role]
}

func (r *RolesRepository) Get(ctx context.Context, id string) (*models.Role, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.get(ctx, oid)
}

// GetByName looks a role up by its normalized-name uniqueness key.
func (r *RolesRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return r.findOne(ctx, bson.M{"normalizedName": models.Normalize(name)})
}

func (r *RolesRepository) Add(ctx context.Context, role *models.Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, role)
}
