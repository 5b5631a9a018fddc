// Package memory implements the ledger store with in-process maps. It is the
// default backend for local development and the store double used in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitien/internal/core"
	"vitien/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	users   map[string]core.User
	wallets map[string]core.Wallet
	txns    []core.Transaction
}

func New() *Store {
	return &Store{
		users:   make(map[string]core.User),
		wallets: make(map[string]core.Wallet),
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) FindUserByGoogleID(_ context.Context, tenantID, googleID string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TenantID == tenantID && u.GoogleID == googleID {
			return u, nil
		}
	}
	return core.User{}, ledger.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, tenantID, id string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.TenantID != tenantID {
		return core.User{}, ledger.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.TenantID != u.TenantID {
			continue
		}
		if existing.GoogleID == u.GoogleID || existing.Email == u.Email {
			return core.User{}, ledger.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUserProfile(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[u.ID]
	if !ok || stored.TenantID != u.TenantID {
		return core.User{}, ledger.ErrNotFound
	}
	for id, other := range s.users {
		if id != u.ID && other.TenantID == u.TenantID && other.Email == u.Email {
			return core.User{}, ledger.ErrDuplicate
		}
	}
	stored.Name = u.Name
	stored.Avatar = u.Avatar
	stored.Email = u.Email
	stored.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = stored
	return stored, nil
}

func (s *Store) CreateWallet(_ context.Context, w core.Wallet) (core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.wallets {
		if existing.TenantID == w.TenantID && existing.UserID == w.UserID && existing.Name == w.Name {
			return core.Wallet{}, ledger.ErrDuplicate
		}
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.CreatedAt = time.Now().UTC()
	s.wallets[w.ID] = w
	return w, nil
}

func (s *Store) ListWallets(_ context.Context, tenantID, userID string) ([]core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Wallet
	for _, w := range s.wallets {
		if w.TenantID == tenantID && w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) FindWallet(_ context.Context, tenantID, userID, walletID string) (core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findWalletLocked(tenantID, userID, walletID)
}

func (s *Store) findWalletLocked(tenantID, userID, walletID string) (core.Wallet, error) {
	w, ok := s.wallets[walletID]
	if !ok || w.TenantID != tenantID || w.UserID != userID {
		return core.Wallet{}, ledger.ErrNotFound
	}
	return w, nil
}

// RecordTransaction holds the store lock for the whole read-check-write cycle,
// so concurrent calls on the same wallet serialize.
func (s *Store) RecordTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.findWalletLocked(tx.TenantID, tx.UserID, tx.WalletID)
	if err != nil {
		return core.Transaction{}, err
	}
	if tx.Type == core.Expense && tx.Amount.Cents > w.Balance.Cents {
		return core.Transaction{}, ledger.ErrInsufficientBalance
	}

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.CreatedAt = time.Now().UTC()

	w.Balance = w.Balance.Add(tx.Signed())
	s.wallets[w.ID] = w
	s.txns = append(s.txns, tx)
	return tx, nil
}

func (s *Store) ListTransactions(_ context.Context, tenantID, userID string, f ledger.TransactionFilter, page ledger.Page) ([]core.Transaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Transaction
	for _, tx := range s.txns {
		if tx.TenantID != tenantID || tx.UserID != userID {
			continue
		}
		if f.WalletID != "" && tx.WalletID != f.WalletID {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if !f.Start.IsZero() && tx.Date.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && tx.Date.After(f.End) {
			continue
		}
		matched = append(matched, tx)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := page.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	out := make([]core.Transaction, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

func (s *Store) ListWalletTransactions(_ context.Context, tenantID, userID, walletID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findWalletLocked(tenantID, userID, walletID); err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, tx := range s.txns {
		if tx.TenantID == tenantID && tx.UserID == userID && tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
