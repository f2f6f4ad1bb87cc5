package service

import (
	"context"
	"testing"

	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

func newAccountFixture() (*AccountService, *fakeAccounts, *fakeCustomers) {
	accounts := newFakeAccounts()
	customers := newFakeCustomers()
	svc := NewAccountService(accounts, customers, fakeSessions{}, &seqGenerator{})
	return svc, accounts, customers
}

func TestAccountCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown customer", func(t *testing.T) {
		svc, _, _ := newAccountFixture()
		result, err := svc.Create(ctx, "652d0000000000000000ffff", models.AccountCreation{Name: "Main", Type: "personal"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != operation.StatusBadRequest {
			t.Fatalf("expected BadRequest, got %s", result.Status)
		}
	})

	t.Run("success", func(t *testing.T) {
		svc, accounts, customers := newAccountFixture()
		customerID := seedCustomer(t, customers, "jane@example.com")

		result, err := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != operation.StatusSuccess {
			t.Fatalf("expected Success, got %s: %s", result.Status, result.Message)
		}

		view := result.Value
		if !view.Balance.IsZero() {
			t.Errorf("new account balance = %s, want 0", view.Balance)
		}
		if view.SecurityCode == "" {
			t.Error("new account has no security code")
		}
		if view.Owner != customerID {
			t.Errorf("account owner = %q, want %q", view.Owner, customerID)
		}

		stored, _ := accounts.Get(ctx, view.ID)
		if stored == nil {
			t.Fatal("account was not persisted")
		}
		customer, _ := customers.Get(ctx, customerID)
		if len(customer.Accounts) != 1 || customer.Accounts[0] != view.ID {
			t.Errorf("customer account set = %v, want [%s]", customer.Accounts, view.ID)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, accounts, customers := newAccountFixture()
		customerID := seedCustomer(t, customers, "jane@example.com")
		accounts.err = errStore

		_, err := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
		if err == nil {
			t.Fatal("expected error from failing store")
		}
	})
}

func TestAccountDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete clears ownership on both sides", func(t *testing.T) {
		svc, accounts, customers := newAccountFixture()
		customerID := seedCustomer(t, customers, "jane@example.com")
		created, _ := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
		accountID := created.Value.ID

		result := svc.Delete(ctx, accountID)
		if result.Status != operation.StatusSuccess {
			t.Fatalf("expected Success, got %s: %s", result.Status, result.Message)
		}

		stored, _ := accounts.Get(ctx, accountID)
		if stored == nil {
			t.Fatal("deleted account record must survive")
		}
		if stored.Owner != nil {
			t.Errorf("deleted account still owned by %q", *stored.Owner)
		}
		customer, _ := customers.Get(ctx, customerID)
		if len(customer.Accounts) != 0 {
			t.Errorf("customer account set = %v, want empty", customer.Accounts)
		}

		owned, _ := svc.BelongsTo(ctx, accountID, customerID)
		if owned {
			t.Error("deleted account must not belong to its former owner")
		}
	})

	t.Run("second delete is rejected", func(t *testing.T) {
		svc, _, customers := newAccountFixture()
		customerID := seedCustomer(t, customers, "jane@example.com")
		created, _ := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
		accountID := created.Value.ID

		if result := svc.Delete(ctx, accountID); result.Status != operation.StatusSuccess {
			t.Fatalf("first delete failed: %s", result.Message)
		}
		if result := svc.Delete(ctx, accountID); result.Status != operation.StatusBadRequest {
			t.Fatalf("second delete: expected BadRequest, got %s", result.Status)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, _, _ := newAccountFixture()
		if result := svc.Delete(ctx, "652d0000000000000000ffff"); result.Status != operation.StatusBadRequest {
			t.Fatalf("expected BadRequest, got %s", result.Status)
		}
	})

	t.Run("dangling owner reference", func(t *testing.T) {
		svc, accounts, _ := newAccountFixture()
		owner := "652d0000000000000000ffff"
		account := &models.Account{Owner: &owner, Name: "Orphan"}
		_ = accounts.Add(ctx, account)

		if result := svc.Delete(ctx, account.ID.Hex()); result.Status != operation.StatusInternalFail {
			t.Fatalf("expected InternalFail, got %s", result.Status)
		}
	})
}

func TestAccountRecreateGetsFreshCode(t *testing.T) {
	ctx := context.Background()
	svc, _, customers := newAccountFixture()
	customerID := seedCustomer(t, customers, "jane@example.com")

	first, _ := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
	if result := svc.Delete(ctx, first.Value.ID); result.Status != operation.StatusSuccess {
		t.Fatalf("delete failed: %s", result.Message)
	}

	second, _ := svc.Create(ctx, customerID, models.AccountCreation{Name: "Main", Type: "personal"})
	if second.Value.ID == first.Value.ID {
		t.Error("recreated account reused the old id")
	}
	if second.Value.SecurityCode == first.Value.SecurityCode {
		t.Error("recreated account reused the old security code")
	}
}

func TestAccountQueries(t *testing.T) {
	ctx := context.Background()
	svc, _, customers := newAccountFixture()
	janeID := seedCustomer(t, customers, "jane@example.com")
	johnID := seedCustomer(t, customers, "john@example.com")

	jane1, _ := svc.Create(ctx, janeID, models.AccountCreation{Name: "Main", Type: "personal"})
	jane2, _ := svc.Create(ctx, janeID, models.AccountCreation{Name: "Savings", Type: "personal"})
	_, _ = svc.Create(ctx, johnID, models.AccountCreation{Name: "Main", Type: "personal"})

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("All returned %d accounts, want 3", len(all))
	}

	janes, err := svc.ByCustomer(ctx, janeID)
	if err != nil {
		t.Fatalf("ByCustomer: %v", err)
	}
	if len(janes) != 2 {
		t.Errorf("ByCustomer returned %d accounts, want 2", len(janes))
	}

	owned, _ := svc.BelongsTo(ctx, jane1.Value.ID, janeID)
	if !owned {
		t.Error("BelongsTo denied the actual owner")
	}
	owned, _ = svc.BelongsTo(ctx, jane2.Value.ID, johnID)
	if owned {
		t.Error("BelongsTo granted a foreign customer")
	}

	view, err := svc.Get(ctx, "not-a-hex-id")
	if err != nil || view != nil {
		t.Errorf("malformed id: got (%v, %v), want (nil, nil)", view, err)
	}
}
