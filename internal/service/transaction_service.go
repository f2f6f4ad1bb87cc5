package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// TransactionService moves money. Each public operation is a single
// read-validate-mutate-record unit: all validation happens before any write,
// and the balance change commits in the same session scope as the appended
// transaction record.
type TransactionService struct {
	transactions TransactionsRepository
	accounts     AccountsRepository
	sessions     Sessions
}

func NewTransactionService(
	transactions TransactionsRepository,
	accounts AccountsRepository,
	sessions Sessions,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
		sessions:     sessions,
	}
}

func (s *TransactionService) Deposit(ctx context.Context, deposit models.OneWayTransaction) operation.Result {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Get(ctx, deposit.SourceAccountID)
		if err != nil {
			return err
		}
		if account == nil {
			log.Printf("Requested deposit account '%s' does not exist", deposit.SourceAccountID)
			result = operation.BadRequest("Specified deposit account doesn't exist")
			return nil
		}
		if !IsAccountValid(account) {
			result = operation.BadRequest("The account you are trying to deposit to is expired")
			return nil
		}

		account.Balance = account.Balance.Add(deposit.Amount)
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		record := &models.Transaction{
			SourceAccountID: deposit.SourceAccountID,
			Type:            models.TransactionDeposit,
			Amount:          deposit.Amount,
			Timestamp:       time.Now().UTC(),
			Description:     deposit.Description,
		}
		if err := s.transactions.Add(ctx, record); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Unable to perform a deposit for '%s' account: %v", deposit.SourceAccountID, err)
		return operation.InternalFail("Error occurred while trying to make a deposit. Try again later")
	}
	return result
}

func (s *TransactionService) Withdraw(ctx context.Context, withdrawal models.SecuredTransaction) operation.Result {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accounts.Get(ctx, withdrawal.SourceAccountID)
		if err != nil {
			return err
		}
		if account == nil {
			log.Printf("Requested withdrawal account '%s' does not exist", withdrawal.SourceAccountID)
			result = operation.BadRequest("Specified withdrawal account doesn't exist")
			return nil
		}
		if !IsAccountValidSecured(account, withdrawal.SecurityCode) {
			result = operation.BadRequest("Provided account information is not valid. " +
				"Account is expired or entered security code is not correct")
			return nil
		}
		if account.Balance.LessThan(withdrawal.Amount) {
			result = operation.BadRequest("Insufficient funds. The transaction cannot be completed " +
				"due to a lack of available funds in the account")
			return nil
		}

		account.Balance = account.Balance.Sub(withdrawal.Amount)
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}

		record := &models.Transaction{
			SourceAccountID: withdrawal.SourceAccountID,
			Type:            models.TransactionWithdrawal,
			Amount:          withdrawal.Amount,
			Timestamp:       time.Now().UTC(),
			Description:     withdrawal.Description,
		}
		if err := s.transactions.Add(ctx, record); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Unable to perform a withdrawal from '%s' account: %v", withdrawal.SourceAccountID, err)
		return operation.InternalFail("Error occurred while trying to make a withdrawal. Try again later")
	}
	return result
}

func (s *TransactionService) Transfer(ctx context.Context, transfer models.TwoWayTransaction) operation.Result {
	var result operation.Result

	err := s.sessions.WithTransaction(ctx, func(ctx context.Context) error {
		source, err := s.accounts.Get(ctx, transfer.SourceAccountID)
		if err != nil {
			return err
		}
		destination, err := s.accounts.Get(ctx, transfer.DestinationAccountID)
		if err != nil {
			return err
		}
		if source == nil || destination == nil {
			log.Printf("One of the specified transfer accounts '%s' or '%s' does not exist",
				transfer.SourceAccountID, transfer.DestinationAccountID)
			result = operation.BadRequest("One of the specified transfer accounts doesn't exist")
			return nil
		}
		if !IsAccountValidSecured(source, transfer.SourceAccountSecurityCode) {
			result = operation.BadRequest("Your account information is not valid. " +
				"Account is expired or entered security code is not correct")
			return nil
		}
		if !IsAccountValid(destination) {
			result = operation.BadRequest("Destination account information is not valid. Account is probably expired")
			return nil
		}
		if source.Balance.LessThan(transfer.Amount) {
			result = operation.BadRequest("Insufficient funds. The transaction cannot be completed " +
				"due to a lack of available funds in the account")
			return nil
		}

		source.Balance = source.Balance.Sub(transfer.Amount)
		destination.Balance = destination.Balance.Add(transfer.Amount)
		if err := s.accounts.Update(ctx, source); err != nil {
			return err
		}
		if err := s.accounts.Update(ctx, destination); err != nil {
			return err
		}

		record := &models.Transaction{
			SourceAccountID:      transfer.SourceAccountID,
			DestinationAccountID: &transfer.DestinationAccountID,
			Type:                 models.TransactionTransfer,
			Amount:               transfer.Amount,
			Timestamp:            time.Now().UTC(),
			Description:          transfer.Description,
		}
		if err := s.transactions.Add(ctx, record); err != nil {
			return err
		}

		result = operation.Success()
		return nil
	})
	if err != nil {
		log.Printf("Unable to perform a transfer from '%s' account to '%s' account: %v",
			transfer.SourceAccountID, transfer.DestinationAccountID, err)
		return operation.InternalFail("Error occurred while trying to make a transfer. Try again later")
	}
	return result
}

// Balance returns the current balance, or zero if the account is absent.
func (s *TransactionService) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account == nil {
		return decimal.Zero, nil
	}
	return account.Balance, nil
}

// History returns every transaction where the account is source or
// destination, newest first.
func (s *TransactionService) History(ctx context.Context, accountID string) ([]models.TransactionView, error) {
	transactions, err := s.transactions.AccountHistory(ctx, accountID)
	if err != nil {
		return nil, err
	}

	views := make([]models.TransactionView, 0, len(transactions))
	for i := range transactions {
		views = append(views, transactionToView(&transactions[i]))
	}
	return views, nil
}

func transactionToView(t *models.Transaction) models.TransactionView {
	view := models.TransactionView{
		SourceAccountID: t.SourceAccountID,
		Type:            t.Type,
		Amount:          t.Amount,
		Timestamp:       t.Timestamp,
		Description:     t.Description,
	}
	if t.DestinationAccountID != nil {
		view.DestinationAccountID = *t.DestinationAccountID
	}
	return view
}
