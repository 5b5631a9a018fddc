package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vitien/internal/apperr"
	"vitien/internal/core"
	"vitien/internal/ledger"
)

// StatementService computes period statements over a wallet's full
// transaction log.
type StatementService struct {
	store ledger.Store
	now   func() time.Time
}

func NewStatementService(store ledger.Store) *StatementService {
	return &StatementService{store: store, now: time.Now}
}

// Get builds a statement for the wallet over [start, end]. Zero bounds fall
// back to the default window: first day of the current month through now.
func (s *StatementService) Get(ctx context.Context, tenantID, userID, walletID string, start, end time.Time) (core.Statement, error) {
	start, end = core.ResolveRange(start, end, s.now().UTC())

	w, err := s.store.FindWallet(ctx, tenantID, userID, walletID)
	if errors.Is(err, ledger.ErrNotFound) {
		return core.Statement{}, apperr.NotFound("wallet not found")
	}
	if err != nil {
		return core.Statement{}, fmt.Errorf("find wallet: %w", err)
	}

	txns, err := s.store.ListWalletTransactions(ctx, tenantID, userID, walletID)
	if err != nil {
		return core.Statement{}, fmt.Errorf("list wallet transactions: %w", err)
	}

	st, err := core.ComputeStatement(w, txns, start, end)
	if errors.Is(err, core.ErrInvalidRange) {
		return core.Statement{}, apperr.InvalidInput(err.Error())
	}
	if err != nil {
		return core.Statement{}, fmt.Errorf("compute statement: %w", err)
	}
	return st, nil
}
