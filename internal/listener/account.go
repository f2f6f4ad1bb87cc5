package listener

import (
	"context"
	"log"
	"time"

	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// NewAccountCreationListener handles account.creation messages.
func NewAccountCreationListener(
	consumer Consumer[string, messages.AccountCreation],
	replies ReplyPublisher,
	accounts AccountOperations,
) *Pipeline[string, messages.AccountCreation, operation.ValueResult[models.AccountView]] {
	return New(Config[string, messages.AccountCreation, operation.ValueResult[models.AccountView]]{
		Name:     "account-creation",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.AccountCreation]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.AccountCreation]) (Response[operation.ValueResult[models.AccountView]], error) {
			creation := models.AccountCreation{Name: msg.Value.Name, Type: msg.Value.Type}
			result, err := accounts.Create(ctx, msg.Value.CustomerID, creation)
			if err != nil {
				return Response[operation.ValueResult[models.AccountView]]{}, err
			}
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.AccountCreation]) {
			log.Printf("Error while trying to create account for customer '%s', retry in %s: %v",
				msg.Value.CustomerID, delay, err)
		},
	})
}

// NewAccountDeletionListener handles account.deletion messages.
func NewAccountDeletionListener(
	consumer Consumer[string, messages.AccountDeletion],
	replies ReplyPublisher,
	accounts AccountOperations,
) *Pipeline[string, messages.AccountDeletion, operation.Result] {
	return New(Config[string, messages.AccountDeletion, operation.Result]{
		Name:     "account-deletion",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.AccountDeletion]) bool {
			return requiredFieldsPresent(msg.Value)
		},
		Process: func(ctx context.Context, msg Message[string, messages.AccountDeletion]) (Response[operation.Result], error) {
			result := accounts.Delete(ctx, msg.Value.AccountID)
			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.AccountDeletion]) {
			log.Printf("Error while trying to delete account '%s', retry in %s: %v",
				msg.Value.AccountID, delay, err)
		},
	})
}
