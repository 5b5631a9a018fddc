package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vitien/internal/apperr"
	"vitien/internal/core"
	"vitien/internal/ledger"
)

// WalletService manages a user's wallets.
type WalletService struct {
	store ledger.Store
}

func NewWalletService(store ledger.Store) *WalletService {
	return &WalletService{store: store}
}

type CreateWalletParams struct {
	Name           string
	AccountNumber  string
	InitialBalance core.Money
	OpenedAt       time.Time
}

// Create opens a wallet. The balance starts at the initial balance; wallet
// names are unique per user within a tenant.
func (s *WalletService) Create(ctx context.Context, tenantID, userID string, p CreateWalletParams) (core.Wallet, error) {
	w := core.Wallet{
		TenantID:       tenantID,
		UserID:         userID,
		Name:           strings.TrimSpace(p.Name),
		AccountNumber:  strings.TrimSpace(p.AccountNumber),
		InitialBalance: p.InitialBalance,
		Balance:        p.InitialBalance,
		OpenedAt:       p.OpenedAt,
	}
	if w.OpenedAt.IsZero() {
		w.OpenedAt = time.Now().UTC()
	}
	if err := w.Validate(); err != nil {
		return core.Wallet{}, apperr.InvalidInput(err.Error())
	}

	created, err := s.store.CreateWallet(ctx, w)
	if errors.Is(err, ledger.ErrDuplicate) {
		return core.Wallet{}, apperr.Conflict("a wallet with this name already exists")
	}
	if err != nil {
		return core.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}

	slog.InfoContext(ctx, "Wallet opened",
		"wallet_id", created.ID,
		"tenant_id", tenantID,
		"initial_balance_cents", created.InitialBalance.Cents)
	return created, nil
}

type WalletListing struct {
	Wallets      []core.Wallet
	TotalBalance core.Money
}

// List returns the user's wallets in creation order plus the sum of their
// balances.
func (s *WalletService) List(ctx context.Context, tenantID, userID string) (WalletListing, error) {
	wallets, err := s.store.ListWallets(ctx, tenantID, userID)
	if err != nil {
		return WalletListing{}, fmt.Errorf("list wallets: %w", err)
	}
	return WalletListing{Wallets: wallets, TotalBalance: totalBalance(wallets)}, nil
}

// Get returns one wallet, enforcing ownership.
func (s *WalletService) Get(ctx context.Context, tenantID, userID, walletID string) (core.Wallet, error) {
	w, err := s.store.FindWallet(ctx, tenantID, userID, walletID)
	if errors.Is(err, ledger.ErrNotFound) {
		return core.Wallet{}, apperr.NotFound("wallet not found")
	}
	if err != nil {
		return core.Wallet{}, fmt.Errorf("find wallet: %w", err)
	}
	return w, nil
}
