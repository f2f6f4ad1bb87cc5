package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// AccountService owns the account lifecycle. Creation and deletion mutate the
// account and its owning customer inside one session scope so the ownership
// invariant is never observable half-applied.
type AccountService struct {
	accounts  AccountsRepository
	customers CustomersRepository
	sessions  Sessions
	generate  Generator
}

func NewAccountService(
	accounts AccountsRepository,
	customers CustomersRepository,
	sessions Sessions,
	generate Generator,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		customers: customers,
		sessions:  sessions,
		generate:  generate,
	}
}

// Create opens a zero-balance account for the customer and appends its id to
// the customer's account set. A store failure is returned as an error and
// retried by the caller.
func (s *AccountService) Create(
	ctx context.Context,
	customerID string,
	creation models.AccountCreation,
) (operation.ValueResult[models.AccountView], error) {
	var result operation.ValueResult[models.AccountView]

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.Get(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			log.Printf("Customer with the ID '%s' does not exist", customerID)
			result = operation.BadRequestOf[models.AccountView]("Customer with the specified ID does not exist")
			return nil
		}

		account := &models.Account{
			Owner:          &customerID,
			Name:           creation.Name,
			Type:           creation.Type,
			Balance:        decimal.Zero,
			ExpirationDate: s.generate.ExpirationDate(),
			SecurityCode:   s.generate.SecurityCode(),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.accounts.Add(ctx, account); err != nil {
			return err
		}

		customer.Accounts = append(customer.Accounts, account.ID.Hex())
		if err := s.customers.Update(ctx, customer); err != nil {
			return err
		}

		result = operation.SuccessOf(accountToView(account))
		return nil
	})
	if err != nil {
		return operation.ValueResult[models.AccountView]{}, err
	}
	return result, nil
}

// Delete soft-deletes the account: the id leaves the owner's account set and
// the account's owner reference is cleared. The record itself stays.
func (s *AccountService) Delete(ctx context.Context, id string) operation.Result {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if account == nil || account.Owner == nil || *account.Owner == "" {
			log.Printf("Unable to delete account '%s' because it does not exist or is already deleted", id)
			result = operation.BadRequest("Account with the specified ID doesn't exist")
			return nil
		}

		customer, err := s.customers.Get(ctx, *account.Owner)
		if err != nil {
			return err
		}
		if customer == nil {
			log.Printf("Customer with the ID '%s' connected to the account '%s' does not exist", *account.Owner, id)
			result = operation.InternalFail("Error occurred while trying to delete account. Try again later")
			return nil
		}

		customer.Accounts = removeString(customer.Accounts, account.ID.Hex())
		if err := s.customers.Update(ctx, customer); err != nil {
			return err
		}

		account.Owner = nil
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Error occurred while trying to delete account '%s': %v", id, err)
		return operation.InternalFail("Error occurred while trying to delete account. Try again later")
	}
	return result
}

// Get returns the account view or nil if the account does not exist.
func (s *AccountService) Get(ctx context.Context, id string) (*models.AccountView, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	view := accountToView(account)
	return &view, nil
}

func (s *AccountService) All(ctx context.Context) ([]models.AccountView, error) {
	accounts, err := s.accounts.All(ctx)
	if err != nil {
		return nil, err
	}
	return accountsToViews(accounts), nil
}

func (s *AccountService) ByCustomer(ctx context.Context, customerID string) ([]models.AccountView, error) {
	accounts, err := s.accounts.FindByOwner(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return accountsToViews(accounts), nil
}

// BelongsTo is an ownership predicate for callers to use as an authorization
// check. It is not enforced by the account operations themselves.
func (s *AccountService) BelongsTo(ctx context.Context, accountID, customerID string) (bool, error) {
	return s.accounts.OwnedBy(ctx, accountID, customerID)
}

// Update persists a full account entity atomically. Used by the transaction
// and deletion flows.
func (s *AccountService) Update(ctx context.Context, account *models.Account) error {
	return s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		return s.accounts.Update(ctx, account)
	})
}

func accountToView(a *models.Account) models.AccountView {
	view := models.AccountView{
		ID:             a.ID.Hex(),
		Name:           a.Name,
		Type:           a.Type,
		Balance:        a.Balance,
		ExpirationDate: a.ExpirationDate,
		SecurityCode:   a.SecurityCode,
		CreatedAt:      a.CreatedAt,
	}
	if a.Owner != nil {
		view.Owner = *a.Owner
	}
	return view
}

func accountsToViews(accounts []models.Account) []models.AccountView {
	views := make([]models.AccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, accountToView(&accounts[i]))
	}
	return views
}

func removeString(values []string, value string) []string {
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
