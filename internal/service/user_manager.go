package service

import (
	"context"
	"log"
	"time"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// UserManager owns credential records: creation, lookup, role membership and
// password sign-in.
type UserManager struct {
	users    UsersRepository
	roles    RolesRepository
	hasher   PasswordHasher
	sessions Sessions
}

func NewUserManager(users UsersRepository, roles RolesRepository, sessions Sessions) *UserManager {
	return &UserManager{users: users, roles: roles, sessions: sessions}
}

// Create persists a credential record referencing the end-user record and the
// resolved role ids. Role names with no stored role are skipped.
func (m *UserManager) Create(
	ctx context.Context,
	endUserID string,
	registration models.EndUserRegistration,
	roleNames []string,
) operation.Result {
	var result operation.Result

	err := m.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		roleIDs := make([]string, 0, len(roleNames))
		for _, name := range roleNames {
			role, err := m.roles.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if role != nil {
				roleIDs = append(roleIDs, role.ID.Hex())
			}
		}

		existing, err := m.users.GetByEmail(ctx, registration.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			result = operation.BadRequest("User with the same email already exists")
			return nil
		}

		user := &models.User{
			Email:           registration.Email,
			NormalizedEmail: models.Normalize(registration.Email),
			PhoneNumber:     registration.PhoneNumber,
			PasswordHash:    registration.PasswordHash,
			PasswordSalt:    registration.Salt,
			CreatedAt:       time.Now().UTC(),
			Roles:           roleIDs,
			EndUserID:       endUserID,
		}
		if err := m.users.Add(ctx, user); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Error occurred while trying to create new user '%s': %v", registration.Email, err)
		return operation.InternalFail("Error occurred while trying to create new user")
	}
	return result
}

func (m *UserManager) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.users.GetByEmail(ctx, email)
}

func (m *UserManager) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.users.Get(ctx, id)
}

// PasswordSignIn verifies the password against the stored hash and salt.
func (m *UserManager) PasswordSignIn(ctx context.Context, email, password string) operation.Result {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("Error occurred while trying to sign in user '%s': %v", email, err)
		return operation.InternalFail("Error occurred while trying to sign in")
	}
	if user == nil {
		return operation.BadRequest("User with the specified email doesn't exist")
	}

	if !m.hasher.Verify(password, user.PasswordHash, user.PasswordSalt) {
		return operation.BadRequest("Incorrect email or password")
	}
	return operation.Success()
}

// Roles resolves the user's role ids to role names.
func (m *UserManager) Roles(ctx context.Context, user *models.User) ([]string, error) {
	names := make([]string, 0, len(user.Roles))
	for _, roleID := range user.Roles {
		role, err := m.roles.Get(ctx, roleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			names = append(names, role.Name)
		}
	}
	return names, nil
}

// IsInRole reports whether the user carries the role with the given name.
func (m *UserManager) IsInRole(ctx context.Context, user *models.User, roleName string) (bool, error) {
	role, err := m.roles.GetByName(ctx, roleName)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}

	id := role.ID.Hex()
	for _, roleID := range user.Roles {
		if roleID == id {
			return true, nil
		}
	}
	return false, nil
}

// Profile returns the read view of a credential record with role names
// resolved, or nil if the user does not exist.
func (m *UserManager) Profile(ctx context.Context, id string) (*models.UserView, error) {
	user, err := m.users.Get(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	roleNames, err := m.Roles(ctx, user)
	if err != nil {
		return nil, err
	}

	return &models.UserView{
		ID:          user.ID.Hex(),
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
		Roles:       roleNames,
		EndUserID:   user.EndUserID,
	}, nil
}

// Delete removes the credential record.
func (m *UserManager) Delete(ctx context.Context, id string) operation.Result {
	err := m.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		return m.users.Remove(ctx, id)
	})
	if err != nil {
		log.Printf("Error occurred while trying to delete user '%s': %v", id, err)
		return operation.InternalFail("Error occurred while trying to delete user")
	}
	return operation.Success()
}
