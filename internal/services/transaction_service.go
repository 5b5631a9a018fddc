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

const (
	defaultPageLimit = 50
	minPageLimit     = 10
	maxPageLimit     = 500
)

// TransactionService records and lists ledger entries.
type TransactionService struct {
	store ledger.Store
}

func NewTransactionService(store ledger.Store) *TransactionService {
	return &TransactionService{store: store}
}

type CreateTransactionParams struct {
	WalletID string
	Type     core.TransactionType
	Amount   core.Money
	Category string
	Date     time.Time
	Note     string
}

// Create validates and records a transaction, atomically updating the wallet
// balance. An expense exceeding the balance is rejected.
func (s *TransactionService) Create(ctx context.Context, tenantID, userID string, p CreateTransactionParams) (core.Transaction, error) {
	tx := core.Transaction{
		TenantID: tenantID,
		UserID:   userID,
		WalletID: p.WalletID,
		Type:     p.Type,
		Amount:   p.Amount,
		Category: strings.TrimSpace(p.Category),
		Date:     p.Date,
		Note:     strings.TrimSpace(p.Note),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, apperr.InvalidInput(err.Error())
	}

	recorded, err := s.store.RecordTransaction(ctx, tx)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return core.Transaction{}, apperr.NotFound("wallet not found")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return core.Transaction{}, apperr.InsufficientBalance()
	case err != nil:
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", recorded.ID,
		"wallet_id", recorded.WalletID,
		"type", string(recorded.Type),
		"amount_cents", recorded.Amount.Cents)
	return recorded, nil
}

type ListTransactionsParams struct {
	Filter ledger.TransactionFilter
	Page   int
	Limit  int
}

type TransactionListing struct {
	Transactions []core.Transaction
	Page         int
	Limit        int
	Total        int
	TotalPages   int
}

// List returns a page of the user's transactions, newest first. Page defaults
// to 1; limit defaults to 50 and is clamped to [10, 500].
func (s *TransactionService) List(ctx context.Context, tenantID, userID string, p ListTransactionsParams) (TransactionListing, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	switch {
	case limit == 0:
		limit = defaultPageLimit
	case limit < minPageLimit:
		limit = minPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}

	if !p.Filter.Start.IsZero() && !p.Filter.End.IsZero() && p.Filter.Start.After(p.Filter.End) {
		return TransactionListing{}, apperr.InvalidInput("start date must not be after end date")
	}

	txns, total, err := s.store.ListTransactions(ctx, tenantID, userID, p.Filter, ledger.Page{Number: page, Limit: limit})
	if err != nil {
		return TransactionListing{}, fmt.Errorf("list transactions: %w", err)
	}

	totalPages := (total + limit - 1) / limit
	return TransactionListing{
		Transactions: txns,
		Page:         page,
		Limit:        limit,
		Total:        total,
		TotalPages:   totalPages,
	}, nil
}
