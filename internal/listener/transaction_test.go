package listener

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

type mockTransactionOps struct {
	depositFn  func(models.OneWayTransaction) operation.Result
	withdrawFn func(models.SecuredTransaction) operation.Result
	transferFn func(models.TwoWayTransaction) operation.Result
}

func (m *mockTransactionOps) Deposit(_ context.Context, deposit models.OneWayTransaction) operation.Result {
	if m.depositFn != nil {
		return m.depositFn(deposit)
	}
	return operation.InternalFail("not configured")
}

func (m *mockTransactionOps) Withdraw(_ context.Context, withdrawal models.SecuredTransaction) operation.Result {
	if m.withdrawFn != nil {
		return m.withdrawFn(withdrawal)
	}
	return operation.InternalFail("not configured")
}

func (m *mockTransactionOps) Transfer(_ context.Context, transfer models.TwoWayTransaction) operation.Result {
	if m.transferFn != nil {
		return m.transferFn(transfer)
	}
	return operation.InternalFail("not configured")
}

func transactionMessage(value messages.TransactionCreation) Message[string, messages.TransactionCreation] {
	return Message[string, messages.TransactionCreation]{Value: value, Partition: 0, Offset: 1}
}

func TestTransactionListenerFilter(t *testing.T) {
	pipeline := NewTransactionListener(&fakeTransactionConsumer{}, &fakePublisher{}, &mockTransactionOps{})

	tests := []struct {
		name string
		msg  messages.TransactionCreation
		want bool
	}{
		{
			name: "valid deposit passes",
			msg: messages.TransactionCreation{
				Type:            models.TransactionDeposit,
				SourceAccountID: "652d0000000000000000aaaa",
				Amount:          decimal.RequireFromString("10"),
			},
			want: true,
		},
		{
			name: "missing source account is dropped",
			msg: messages.TransactionCreation{
				Type:   models.TransactionDeposit,
				Amount: decimal.RequireFromString("10"),
			},
			want: false,
		},
		{
			name: "zero amount is dropped",
			msg: messages.TransactionCreation{
				Type:            models.TransactionDeposit,
				SourceAccountID: "652d0000000000000000aaaa",
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pipeline.filter(transactionMessage(tt.msg)); got != tt.want {
				t.Errorf("filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransactionListenerDispatch(t *testing.T) {
	ctx := context.Background()
	amount := decimal.RequireFromString("25")

	t.Run("deposit", func(t *testing.T) {
		var got models.OneWayTransaction
		ops := &mockTransactionOps{depositFn: func(d models.OneWayTransaction) operation.Result {
			got = d
			return operation.Success()
		}}
		pipeline := NewTransactionListener(&fakeTransactionConsumer{}, &fakePublisher{}, ops)

		response, err := pipeline.process(ctx, transactionMessage(messages.TransactionCreation{
			Type:                   models.TransactionDeposit,
			SourceAccountID:        "src",
			Amount:                 amount,
			ResponseChannelPattern: "tx",
		}))
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if got.SourceAccountID != "src" || !got.Amount.Equal(amount) {
			t.Errorf("deposit call = %+v", got)
		}
		if response.Channel() != "tx:0:1" {
			t.Errorf("reply channel = %q", response.Channel())
		}
	})

	t.Run("withdrawal carries the security code", func(t *testing.T) {
		var got models.SecuredTransaction
		ops := &mockTransactionOps{withdrawFn: func(w models.SecuredTransaction) operation.Result {
			got = w
			return operation.Success()
		}}
		pipeline := NewTransactionListener(&fakeTransactionConsumer{}, &fakePublisher{}, ops)

		_, err := pipeline.process(ctx, transactionMessage(messages.TransactionCreation{
			Type:            models.TransactionWithdrawal,
			SourceAccountID: "src",
			Amount:          amount,
			SecurityCode:    "123",
		}))
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if got.SecurityCode != "123" {
			t.Errorf("security code = %q, want 123", got.SecurityCode)
		}
	})

	t.Run("transfer", func(t *testing.T) {
		var got models.TwoWayTransaction
		ops := &mockTransactionOps{transferFn: func(tr models.TwoWayTransaction) operation.Result {
			got = tr
			return operation.Success()
		}}
		pipeline := NewTransactionListener(&fakeTransactionConsumer{}, &fakePublisher{}, ops)

		_, err := pipeline.process(ctx, transactionMessage(messages.TransactionCreation{
			Type:                 models.TransactionTransfer,
			SourceAccountID:      "src",
			DestinationAccountID: "dst",
			Amount:               amount,
			SecurityCode:         "123",
		}))
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if got.DestinationAccountID != "dst" || got.SourceAccountSecurityCode != "123" {
			t.Errorf("transfer call = %+v", got)
		}
	})

	t.Run("unknown type is a handler failure", func(t *testing.T) {
		pipeline := NewTransactionListener(&fakeTransactionConsumer{}, &fakePublisher{}, &mockTransactionOps{})
		_, err := pipeline.process(ctx, transactionMessage(messages.TransactionCreation{
			Type:            "loan",
			SourceAccountID: "src",
			Amount:          amount,
		}))
		if err == nil {
			t.Fatal("expected error for unknown transaction type")
		}
	})
}

// fakeTransactionConsumer satisfies the consumer interface for tests that
// only poke the pipeline's strategies directly.
type fakeTransactionConsumer struct{}

func (fakeTransactionConsumer) Subscribe(_ context.Context) (MessageStream[string, messages.TransactionCreation], error) {
	return nil, context.Canceled
}
