// Package ledger defines the tenant-scoped persistence ports for users,
// wallets and transactions. Implementations must treat RecordTransaction as a
// single atomic unit: the wallet balance update and the transaction insert
// commit together or not at all.
package ledger

import (
	"context"
	"errors"
	"time"

	"vitien/internal/core"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// TransactionFilter narrows a listing. Zero fields are ignored; set fields
// are AND-combined.
type TransactionFilter struct {
	WalletID string
	Type     core.TransactionType
	Start    time.Time
	End      time.Time
}

// Page selects a slice of a listing. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

type Store interface {
	// FindUserByGoogleID looks up a user by provider subject within a tenant.
	FindUserByGoogleID(ctx context.Context, tenantID, googleID string) (core.User, error)
	FindUserByID(ctx context.Context, tenantID, id string) (core.User, error)
	CreateUser(ctx context.Context, u core.User) (core.User, error)
	// UpdateUserProfile refreshes name, avatar and email. A new email that
	// collides with another user in the tenant fails with ErrDuplicate.
	UpdateUserProfile(ctx context.Context, u core.User) (core.User, error)

	CreateWallet(ctx context.Context, w core.Wallet) (core.Wallet, error)
	// ListWallets returns the user's wallets ordered by creation time.
	ListWallets(ctx context.Context, tenantID, userID string) ([]core.Wallet, error)
	// FindWallet fails with ErrNotFound when the wallet is absent or not
	// owned by (tenantID, userID).
	FindWallet(ctx context.Context, tenantID, userID, walletID string) (core.Wallet, error)

	// RecordTransaction applies the signed amount to the wallet balance and
	// inserts the transaction in one atomic unit. Fails with ErrNotFound on
	// bad ownership and ErrInsufficientBalance when an expense would drive
	// the balance negative; either way no state changes.
	RecordTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	// ListTransactions returns a page sorted by (date desc, created_at desc)
	// plus the total match count.
	ListTransactions(ctx context.Context, tenantID, userID string, f TransactionFilter, page Page) ([]core.Transaction, int, error)
	// ListWalletTransactions returns the wallet's full log, date ascending.
	ListWalletTransactions(ctx context.Context, tenantID, userID, walletID string) ([]core.Transaction, error)

	Close() error
}
