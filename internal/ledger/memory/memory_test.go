package memory

import (
	"context"
	"testing"
	"time"

	"vitien/internal/core"
	"vitien/internal/ledger"
)

func seedUserWallet(t *testing.T, s *Store, tenant string, balance int64) (core.User, core.Wallet) {
	t.Helper()
	ctx := context.Background()
	u, err := s.CreateUser(ctx, core.User{
		TenantID: tenant,
		GoogleID: "g-" + tenant,
		Email:    "a@" + tenant + ".test",
		Name:     "A",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	w, err := s.CreateWallet(ctx, core.Wallet{
		TenantID:       tenant,
		UserID:         u.ID,
		Name:           "Cash",
		InitialBalance: core.Money{Cents: balance},
		Balance:        core.Money{Cents: balance},
		OpenedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return u, w
}

func TestRecordTransactionUpdatesBalance(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, w := seedUserWallet(t, s, "acme", 100000)

	_, err := s.RecordTransaction(ctx, core.Transaction{
		TenantID: "acme", UserID: u.ID, WalletID: w.ID,
		Type: core.Income, Amount: core.Money{Cents: 50000},
		Category: "Salary", Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record income: %v", err)
	}
	_, err = s.RecordTransaction(ctx, core.Transaction{
		TenantID: "acme", UserID: u.ID, WalletID: w.ID,
		Type: core.Expense, Amount: core.Money{Cents: 30000},
		Category: "Food", Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record expense: %v", err)
	}

	got, err := s.FindWallet(ctx, "acme", u.ID, w.ID)
	if err != nil {
		t.Fatalf("find wallet: %v", err)
	}
	if got.Balance.Cents != 120000 {
		t.Fatalf("balance expected 120000, got %d", got.Balance.Cents)
	}

	txns, err := s.ListWalletTransactions(ctx, "acme", u.ID, w.ID)
	if err != nil {
		t.Fatalf("list wallet transactions: %v", err)
	}
	if !got.CheckBalance(txns) {
		t.Fatalf("balance does not reconcile with transaction log")
	}
}

func TestListWalletTransactionsSameDateOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, w := seedUserWallet(t, s, "acme", 100000)
	day := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	// Same date: recording order decides, via created_at.
	for _, category := range []string{"first", "second", "third"} {
		if _, err := s.RecordTransaction(ctx, core.Transaction{
			TenantID: "acme", UserID: u.ID, WalletID: w.ID,
			Type: core.Expense, Amount: core.Money{Cents: 100},
			Category: category, Date: day,
		}); err != nil {
			t.Fatalf("record %s: %v", category, err)
		}
	}

	txns, err := s.ListWalletTransactions(ctx, "acme", u.ID, w.ID)
	if err != nil {
		t.Fatalf("list wallet transactions: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(txns) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(txns))
	}
	for i, category := range want {
		if txns[i].Category != category {
			t.Fatalf("position %d expected %q, got %q", i, category, txns[i].Category)
		}
	}
}

func TestRecordTransactionInsufficientBalance(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, w := seedUserWallet(t, s, "acme", 10000)

	_, err := s.RecordTransaction(ctx, core.Transaction{
		TenantID: "acme", UserID: u.ID, WalletID: w.ID,
		Type: core.Expense, Amount: core.Money{Cents: 20000},
		Category: "Rent", Date: time.Now().UTC(),
	})
	if err != ledger.ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	got, _ := s.FindWallet(ctx, "acme", u.ID, w.ID)
	if got.Balance.Cents != 10000 {
		t.Fatalf("balance must be unchanged, got %d", got.Balance.Cents)
	}
	txns, _ := s.ListWalletTransactions(ctx, "acme", u.ID, w.ID)
	if len(txns) != 0 {
		t.Fatalf("no transaction must be persisted, got %d", len(txns))
	}
}

func TestRecordTransactionOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, w := seedUserWallet(t, s, "acme", 1000)

	// Wrong tenant
	_, err := s.RecordTransaction(ctx, core.Transaction{
		TenantID: "other", UserID: u.ID, WalletID: w.ID,
		Type: core.Income, Amount: core.Money{Cents: 100},
		Category: "x", Date: time.Now().UTC(),
	})
	if err != ledger.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign tenant, got %v", err)
	}

	// Wrong user
	_, err = s.RecordTransaction(ctx, core.Transaction{
		TenantID: "acme", UserID: "someone-else", WalletID: w.ID,
		Type: core.Income, Amount: core.Money{Cents: 100},
		Category: "x", Date: time.Now().UTC(),
	})
	if err != ledger.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
}

func TestCreateWalletDuplicateName(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, _ := seedUserWallet(t, s, "acme", 0)

	_, err := s.CreateWallet(ctx, core.Wallet{
		TenantID: "acme", UserID: u.ID, Name: "Cash",
		OpenedAt: time.Now().UTC(),
	})
	if err != ledger.ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same name is fine for a different tenant's user.
	u2, err := s.CreateUser(ctx, core.User{
		TenantID: "beta", GoogleID: "g2", Email: "b@beta.test", Name: "B",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateWallet(ctx, core.Wallet{
		TenantID: "beta", UserID: u2.ID, Name: "Cash",
		OpenedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("cross-tenant duplicate should be allowed: %v", err)
	}
}

func TestUpdateUserProfileEmailConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	u1, _ := seedUserWallet(t, s, "acme", 0)
	u2, err := s.CreateUser(ctx, core.User{
		TenantID: "acme", GoogleID: "g-two", Email: "two@acme.test", Name: "Two",
	})
	if err != nil {
		t.Fatalf("create second user: %v", err)
	}

	u2.Email = u1.Email
	if _, err := s.UpdateUserProfile(ctx, u2); err != ledger.ErrDuplicate {
		t.Fatalf("expected ErrDuplicate on email collision, got %v", err)
	}
}

func TestListTransactionsFilterAndPaginate(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, w := seedUserWallet(t, s, "acme", 1000000)
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }

	for d := 1; d <= 25; d++ {
		typ := core.Income
		if d%2 == 0 {
			typ = core.Expense
		}
		if _, err := s.RecordTransaction(ctx, core.Transaction{
			TenantID: "acme", UserID: u.ID, WalletID: w.ID,
			Type: typ, Amount: core.Money{Cents: 100},
			Category: "c", Date: day(d),
		}); err != nil {
			t.Fatalf("record day %d: %v", d, err)
		}
	}

	// Type filter + date range, AND-combined.
	txns, total, err := s.ListTransactions(ctx, "acme", u.ID, ledger.TransactionFilter{
		Type:  core.Income,
		Start: day(10),
		End:   day(20),
	}, ledger.Page{Number: 1, Limit: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Income lands on odd days; odd days within [10, 20] are 11, 13, 15, 17, 19.
	if total != 5 {
		t.Fatalf("expected 5 income transactions in range, got %d", total)
	}
	for _, tx := range txns {
		if tx.Type != core.Income {
			t.Fatalf("filter leaked type %s", tx.Type)
		}
	}

	// Sort: date desc.
	all, total, err := s.ListTransactions(ctx, "acme", u.ID, ledger.TransactionFilter{}, ledger.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 25 || len(all) != 10 {
		t.Fatalf("expected total 25 page of 10, got %d/%d", total, len(all))
	}
	if !all[0].Date.Equal(day(25)) {
		t.Fatalf("expected newest first, got %v", all[0].Date)
	}

	// Page past the end.
	none, total, err := s.ListTransactions(ctx, "acme", u.ID, ledger.TransactionFilter{}, ledger.Page{Number: 4, Limit: 10})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if total != 25 || len(none) != 0 {
		t.Fatalf("expected empty page past end, got %d items", len(none))
	}
}
