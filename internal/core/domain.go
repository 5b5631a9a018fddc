package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// User is a tenant-scoped account resolved from a Google identity.
	User struct {
		ID        string
		TenantID  string
		GoogleID  string
		Email     string
		Name      string
		Avatar    string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Wallet is a named balance-bearing account owned by one user.
	// Balance is a cached projection of InitialBalance plus the signed sum
	// of all transactions on the wallet; the transaction log is authoritative.
	Wallet struct {
		ID             string
		TenantID       string
		UserID         string
		Name           string
		AccountNumber  string
		InitialBalance Money
		Balance        Money
		OpenedAt       time.Time
		CreatedAt      time.Time
	}

	// Transaction is an immutable ledger entry on a wallet.
	Transaction struct {
		ID        string
		TenantID  string
		UserID    string
		WalletID  string
		Type      TransactionType
		Amount    Money
		Category  string
		Date      time.Time
		Note      string
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyCategory    = errors.New("empty category")
	ErrNoteTooLong      = errors.New("note too long (max 250 characters)")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrEmptyWalletName  = errors.New("empty wallet name")
	ErrBadAccountNumber = errors.New("account number must be 3-30 characters")
	ErrNegativeInitial  = errors.New("initial balance cannot be negative")
	ErrEmptyWalletID    = errors.New("empty wallet id")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Signed returns the transaction's contribution to a wallet balance:
// +Amount for income, -Amount for expense.
func (t Transaction) Signed() Money {
	if t.Type == Expense {
		return Money{Cents: -t.Amount.Cents}
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	if t.WalletID == "" {
		return ErrEmptyWalletID
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if len(t.Note) > 250 {
		return ErrNoteTooLong
	}
	return nil
}

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyWalletName
	}
	if w.AccountNumber != "" && (len(w.AccountNumber) < 3 || len(w.AccountNumber) > 30) {
		return ErrBadAccountNumber
	}
	if w.InitialBalance.Cents < 0 {
		return ErrNegativeInitial
	}
	if w.OpenedAt.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// CheckBalance recomputes the wallet balance from scratch and reports whether
// the cached projection matches the transaction log.
func (w Wallet) CheckBalance(txns []Transaction) bool {
	sum := w.InitialBalance
	for _, t := range txns {
		sum = sum.Add(t.Signed())
	}
	return sum == w.Balance
}
