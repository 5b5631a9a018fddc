package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"vitien/internal/apperr"
	"vitien/internal/core"
	"vitien/internal/ledger/memory"
)

func seedUser(t *testing.T, store *memory.Store, tenant string) core.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), core.User{
		TenantID: tenant, GoogleID: "g-" + tenant, Email: "a@" + tenant + ".test", Name: "A",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateWallet(t *testing.T) {
	store := memory.New()
	svc := NewWalletService(store)
	u := seedUser(t, store, "acme")
	ctx := context.Background()

	w, err := svc.Create(ctx, "acme", u.ID, CreateWalletParams{
		Name:           " Savings ",
		AccountNumber:  "IT001",
		InitialBalance: core.Money{Cents: 250000},
		OpenedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Name != "Savings" {
		t.Fatalf("name must be trimmed, got %q", w.Name)
	}
	if w.Balance.Cents != 250000 {
		t.Fatalf("balance must start at the initial balance, got %d", w.Balance.Cents)
	}

	// Same name again conflicts.
	_, err = svc.Create(ctx, "acme", u.ID, CreateWalletParams{Name: "Savings"})
	if !apperr.Is(err, http.StatusConflict) {
		t.Fatalf("expected 409 on duplicate name, got %v", err)
	}
}

func TestCreateWalletValidation(t *testing.T) {
	store := memory.New()
	svc := NewWalletService(store)
	u := seedUser(t, store, "acme")

	cases := []struct {
		name string
		p    CreateWalletParams
	}{
		{"empty name", CreateWalletParams{Name: "   "}},
		{"short account number", CreateWalletParams{Name: "W", AccountNumber: "ab"}},
		{"negative initial balance", CreateWalletParams{Name: "W", InitialBalance: core.Money{Cents: -1}}},
	}
	for _, c := range cases {
		if _, err := svc.Create(context.Background(), "acme", u.ID, c.p); !apperr.Is(err, http.StatusBadRequest) {
			t.Fatalf("%s: expected 400, got %v", c.name, err)
		}
	}
}

func TestListWalletsTotalBalance(t *testing.T) {
	store := memory.New()
	svc := NewWalletService(store)
	u := seedUser(t, store, "acme")
	ctx := context.Background()

	for _, w := range []CreateWalletParams{
		{Name: "Cash", InitialBalance: core.Money{Cents: 10000}},
		{Name: "Savings", InitialBalance: core.Money{Cents: 40000}},
	} {
		if _, err := svc.Create(ctx, "acme", u.ID, w); err != nil {
			t.Fatalf("create %s: %v", w.Name, err)
		}
	}

	listing, err := svc.List(ctx, "acme", u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listing.Wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(listing.Wallets))
	}
	if listing.TotalBalance.Cents != 50000 {
		t.Fatalf("expected total 50000, got %d", listing.TotalBalance.Cents)
	}
}

func TestGetWalletOwnership(t *testing.T) {
	store := memory.New()
	svc := NewWalletService(store)
	u := seedUser(t, store, "acme")
	ctx := context.Background()

	w, err := svc.Create(ctx, "acme", u.ID, CreateWalletParams{Name: "Cash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "acme", "someone-else", w.ID); !apperr.Is(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for foreign user, got %v", err)
	}
	if _, err := svc.Get(ctx, "beta", u.ID, w.ID); !apperr.Is(err, http.StatusNotFound) {
		t.Fatalf("expected 404 for foreign tenant, got %v", err)
	}
}
