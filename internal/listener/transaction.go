package listener

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// NewTransactionListener handles transaction.creation messages and dispatches
// on the transaction type. An unknown type is a programming error on the
// producer side and is surfaced as a handler failure.
func NewTransactionListener(
	consumer Consumer[string, messages.TransactionCreation],
	replies ReplyPublisher,
	transactions TransactionOperations,
) *Pipeline[string, messages.TransactionCreation, operation.Result] {
	return New(Config[string, messages.TransactionCreation, operation.Result]{
		Name:     "transaction-creation",
		Consumer: consumer,
		Replies:  replies,
		Filter: func(msg Message[string, messages.TransactionCreation]) bool {
			return requiredFieldsPresent(msg.Value) && !msg.Value.Amount.IsZero()
		},
		Process: func(ctx context.Context, msg Message[string, messages.TransactionCreation]) (Response[operation.Result], error) {
			var result operation.Result

			switch msg.Value.Type {
			case models.TransactionDeposit:
				result = transactions.Deposit(ctx, models.OneWayTransaction{
					SourceAccountID: msg.Value.SourceAccountID,
					Amount:          msg.Value.Amount,
					Description:     msg.Value.Description,
				})
			case models.TransactionWithdrawal:
				result = transactions.Withdraw(ctx, models.SecuredTransaction{
					OneWayTransaction: models.OneWayTransaction{
						SourceAccountID: msg.Value.SourceAccountID,
						Amount:          msg.Value.Amount,
						Description:     msg.Value.Description,
					},
					SecurityCode: msg.Value.SecurityCode,
				})
			case models.TransactionTransfer:
				result = transactions.Transfer(ctx, models.TwoWayTransaction{
					SourceAccountID:           msg.Value.SourceAccountID,
					SourceAccountSecurityCode: msg.Value.SecurityCode,
					DestinationAccountID:      msg.Value.DestinationAccountID,
					Amount:                    msg.Value.Amount,
					Description:               msg.Value.Description,
				})
			default:
				return Response[operation.Result]{}, fmt.Errorf("unknown transaction type %q", msg.Value.Type)
			}

			return NewResponse(msg, msg.Value.ResponseChannelPattern, result), nil
		},
		OnError: func(err error, delay time.Duration, msg Message[string, messages.TransactionCreation]) {
			log.Printf("Error while trying to process a transaction from '%s' to '%s', retry in %s: %v",
				msg.Value.SourceAccountID, msg.Value.DestinationAccountID, delay, err)
		},
	})
}
