package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// IdentityService registers and removes end users. A registration creates the
// role-specific end-user record first to obtain its identity, then the
// credential record referencing it; both inside one session scope.
type IdentityService struct {
	users     *UserManager
	customers CustomersRepository
	workers   WorkersRepository
	accounts  *AccountService
	sessions  Sessions
}

func NewIdentityService(
	users *UserManager,
	customers CustomersRepository,
	workers WorkersRepository,
	accounts *AccountService,
	sessions Sessions,
) *IdentityService {
	return &IdentityService{
		users:     users,
		customers: customers,
		workers:   workers,
		accounts:  accounts,
		sessions:  sessions,
	}
}

// Register creates the end-user record for the role and the credential record
// referencing it. A role outside the known set is a configuration error and
// is returned as an error, not a BadRequest.
func (s *IdentityService) Register(
	ctx context.Context,
	registration models.EndUserRegistration,
	role string,
) (operation.Result, error) {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.users.GetByEmail(ctx, registration.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			result = operation.BadRequest("User with the same email already exists")
			return nil
		}

		var endUserID string
		switch {
		case strings.EqualFold(role, models.RoleCustomer):
			customer := &models.Customer{
				FirstName:   registration.FirstName,
				LastName:    registration.LastName,
				BirthDate:   registration.BirthDate,
				PhoneNumber: registration.PhoneNumber,
				Email:       registration.Email,
				Passport:    registration.Passport,
				Accounts:    []string{},
			}
			if err := s.customers.Add(ctx, customer); err != nil {
				return err
			}
			endUserID = customer.ID.Hex()

		case strings.EqualFold(role, models.RoleWorker), strings.EqualFold(role, models.RoleAdministrator):
			worker := &models.Worker{
				FirstName:   registration.FirstName,
				LastName:    registration.LastName,
				BirthDate:   registration.BirthDate,
				PhoneNumber: registration.PhoneNumber,
				Email:       registration.Email,
				Position:    registration.Position,
				Address:     registration.Address,
			}
			if err := s.workers.Add(ctx, worker); err != nil {
				return err
			}
			endUserID = worker.ID.Hex()

		default:
			return fmt.Errorf("specified role %q is not supported", role)
		}

		result = s.users.Create(ctx, endUserID, registration, []string{role})
		if result.Status == operation.StatusSuccess {
			log.Printf("New user '%s' has been registered and assigned a '%s' role", registration.Email, role)
		}
		return nil
	})
	if err != nil {
		return operation.Result{}, err
	}
	return result, nil
}

// Delete removes the end user. Customers lose every owned account first (soft
// delete each); the credential record is always removed last.
func (s *IdentityService) Delete(ctx context.Context, userID string) (operation.Result, error) {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			result = operation.BadRequest("Specified user does not exist")
			return nil
		}

		isCustomer, err := s.users.IsInRole(ctx, user, models.RoleCustomer)
		if err != nil {
			return err
		}

		if isCustomer {
			customer, err := s.customers.Get(ctx, user.EndUserID)
			if err != nil {
				return err
			}
			if customer == nil {
				log.Printf("Customer with the end-user ID '%s' referenced by user '%s' does not exist",
					user.EndUserID, userID)
				result = operation.InternalFail("Error occurred while trying to delete user. Try again later")
				return nil
			}

			for _, accountID := range customer.Accounts {
				if res := s.accounts.Delete(ctx, accountID); res.Status == operation.StatusInternalFail {
					return fmt.Errorf("failed to delete account '%s': %s", accountID, res.Message)
				}
			}

			if err := s.customers.Remove(ctx, user.EndUserID); err != nil {
				return err
			}
		} else {
			if err := s.workers.Remove(ctx, user.EndUserID); err != nil {
				return err
			}
		}

		if res := s.users.Delete(ctx, user.ID.Hex()); res.Status != operation.StatusSuccess {
			return fmt.Errorf("failed to delete user '%s': %s", userID, res.Message)
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		return operation.Result{}, err
	}
	return result, nil
}

// UpdatePersonalInfo replaces the customer's passport data.
func (s *IdentityService) UpdatePersonalInfo(
	ctx context.Context,
	customerID string,
	passport models.Passport,
) (operation.Result, error) {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.Get(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			log.Printf("Customer with the ID '%s' does not exist", customerID)
			result = operation.BadRequest("Customer with the specified ID does not exist")
			return nil
		}

		customer.Passport = passport
		if err := s.customers.Update(ctx, customer); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Error occurred while trying to update personal information for customer '%s': %v", customerID, err)
		return operation.Result{}, err
	}
	return result, nil
}
