package listener

import (
	"context"
	"log"
	"time"

	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// NewRoleCreationListener handles identity.role-creation messages.
func NewRoleCreationListener(
	consumer Consumer[string, messages.RoleCreation],
	replies ReplyPublisher,
	roles RoleOperations,
) *Pipeline[string, messages.RoleCreation, operation.Result] {
	return New(Config[string, messages.RoleCreation, operation.Result]{
		Name:     "role-creation",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.RoleCreation]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.RoleCreation]) (Response[operation.Result], error) {
			result := roles.Create(ctx, msg.Value.Name)
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.RoleCreation]) {
			log.Printf("Error while trying to create a role '%s', retry in %s: %v", msg.Value.Name, delay, err)
		},
	})
}

// NewCustomerRegistrationListener handles identity.customer-registration
// messages. Every registration arriving on this topic gets the Customer role.
func NewCustomerRegistrationListener(
	consumer Consumer[string, messages.CustomerRegistration],
	replies ReplyPublisher,
	identity IdentityOperations,
) *Pipeline[string, messages.CustomerRegistration, operation.Result] {
	return New(Config[string, messages.CustomerRegistration, operation.Result]{
		Name:     "customer-registration",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.CustomerRegistration]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.CustomerRegistration]) (Response[operation.Result], error) {
			registration := models.EndUserRegistration{
				FirstName:    msg.Value.FirstName,
				LastName:     msg.Value.LastName,
				BirthDate:    msg.Value.BirthDate,
				PhoneNumber:  msg.Value.PhoneNumber,
				Email:        msg.Value.Email,
				PasswordHash: msg.Value.PasswordHash,
				Salt:         msg.Value.Salt,
				Passport:     msg.Value.Passport,
			}
			result, err := identity.Register(ctx, registration, models.RoleCustomer)
			if err != nil {
				return Response[operation.Result]{}, err
			}
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.CustomerRegistration]) {
			log.Printf("Error while trying to register customer '%s', retry in %s: %v",
				msg.Value.Email, delay, err)
		},
	})
}

// NewWorkerRegistrationListener handles identity.worker-registration
// messages. The message itself names the worker-side role to assign.
func NewWorkerRegistrationListener(
	consumer Consumer[string, messages.WorkerRegistration],
	replies ReplyPublisher,
	identity IdentityOperations,
) *Pipeline[string, messages.WorkerRegistration, operation.Result] {
	return New(Config[string, messages.WorkerRegistration, operation.Result]{
		Name:     "worker-registration",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.WorkerRegistration]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.WorkerRegistration]) (Response[operation.Result], error) {
			registration := models.EndUserRegistration{
				FirstName:    msg.Value.FirstName,
				LastName:     msg.Value.LastName,
				BirthDate:    msg.Value.BirthDate,
				PhoneNumber:  msg.Value.PhoneNumber,
				Email:        msg.Value.Email,
				PasswordHash: msg.Value.PasswordHash,
				Salt:         msg.Value.Salt,
				Passport:     msg.Value.Passport,
				Position:     msg.Value.Position,
				Address:      msg.Value.Address,
			}
			result, err := identity.Register(ctx, registration, msg.Value.Role)
			if err != nil {
				return Response[operation.Result]{}, err
			}
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.WorkerRegistration]) {
			log.Printf("Error while trying to register worker '%s', retry in %s: %v",
				msg.Value.Email, delay, err)
		},
	})
}

// NewCustomerInfoUpdateListener handles identity.customer-info-update messages.
func NewCustomerInfoUpdateListener(
	consumer Consumer[string, messages.CustomerInfoUpdate],
	replies ReplyPublisher,
	identity IdentityOperations,
) *Pipeline[string, messages.CustomerInfoUpdate, operation.Result] {
	return New(Config[string, messages.CustomerInfoUpdate, operation.Result]{
		Name:     "customer-info-update",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.CustomerInfoUpdate]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.CustomerInfoUpdate]) (Response[operation.Result], error) {
			result, err := identity.UpdatePersonalInfo(ctx, msg.Value.CustomerID, msg.Value.Passport)
			if err != nil {
				return Response[operation.Result]{}, err
			}
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.CustomerInfoUpdate]) {
			log.Printf("Error while trying to update information for customer '%s', retry in %s: %v",
				msg.Value.CustomerID, delay, err)
		},
	})
}

// NewEndUserDeletionListener handles identity.end-user-deletion messages.
func NewEndUserDeletionListener(
	consumer Consumer[string, messages.EndUserDeletion],
	replies ReplyPublisher,
	identity IdentityOperations,
) *Pipeline[string, messages.EndUserDeletion, operation.Result] {
	return New(Config[string, messages.EndUserDeletion, operation.Result]{
		Name:     "end-user-deletion",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.EndUserDeletion]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.EndUserDeletion]) (Response[operation.Result], error) {
			result, err := identity.Delete(ctx, msg.Value.EndUserID)
			if err != nil {
				return Response[operation.Result]{}, err
			}
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.EndUserDeletion]) {
			log.Printf("Error while trying to delete end user '%s', retry in %s: %v",
				msg.Value.EndUserID, delay, err)
		},
	})
}
