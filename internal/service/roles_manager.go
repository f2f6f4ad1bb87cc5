package service

import (
	"context"
	"log"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// RolesManager creates roles, guarding uniqueness on the normalized name so
// redelivered creation requests stay idempotent.
type RolesManager struct {
	roles RolesRepository
}

func NewRolesManager(roles RolesRepository) *RolesManager {
	return &RolesManager{roles: roles}
}

func (m *RolesManager) Create(ctx context.Context, name string) operation.Result {
	existing, err := m.roles.GetByName(ctx, name)
	if err != nil {
		log.Printf("Error occurred while trying to create a role '%s': %v", name, err)
		return operation.InternalFail("Error occurred while trying to create a new role")
	}
	if existing != nil {
		return operation.BadRequest("Role with the same name already exists")
	}

	role := &models.Role{
		Name:           name,
		NormalizedName: models.Normalize(name),
	}
	if err := m.roles.Add(ctx, role); err != nil {
		log.Printf("Error occurred while trying to create a role '%s': %v", name, err)
		return operation.InternalFail("Error occurred while trying to create a new role")
	}
	return operation.Success()
}
