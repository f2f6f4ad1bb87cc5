package listener

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// validate backs the required-field checks the per-kind filters perform.
var validate = validator.New()

func requiredFieldsPresent(v any) bool {
	return validate.Struct(v) == nil
}

// AccountOperations is the account-lifecycle surface the listeners call.
type AccountOperations interface {
	Create(ctx context.Context, customerID string, creation models.AccountCreation) (operation.ValueResult[models.AccountView], error)
	Delete(ctx context.Context, id string) operation.Result
}

// TransactionOperations is the money-movement surface the listeners call.
type TransactionOperations interface {
	Deposit(ctx context.Context, deposit models.OneWayTransaction) operation.Result
	Withdraw(ctx context.Context, withdrawal models.SecuredTransaction) operation.Result
	Transfer(ctx context.Context, transfer models.TwoWayTransaction) operation.Result
}

// IdentityOperations is the end-user lifecycle surface the listeners call.
type IdentityOperations interface {
	Register(ctx context.Context, registration models.EndUserRegistration, role string) (operation.Result, error)
	Delete(ctx context.Context, userID string) (operation.Result, error)
	UpdatePersonalInfo(ctx context.Context, customerID string, passport models.Passport) (operation.Result, error)
}

// RoleOperations is the role-management surface the listeners call.
type RoleOperations interface {
	Create(ctx context.Context, name string) operation.Result
}
