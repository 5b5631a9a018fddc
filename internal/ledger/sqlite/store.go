// Package sqlite implements the ledger store on SQLite via database/sql.
// SQLite's transactions supply the atomic unit RecordTransaction requires.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vitien/internal/core"
	"vitien/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// _txlock=immediate takes the write lock when a transaction begins, so
	// concurrent RecordTransaction calls serialize instead of deadlocking on
	// lock upgrade. busy_timeout goes in the DSN because database/sql pools
	// connections and a plain Exec would configure only one of them.
	dsn := "file:" + dbPath + "?_txlock=immediate&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const userColumns = "id, tenant_id, google_id, email, name, avatar, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.TenantID, &u.GoogleID, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *Store) FindUserByGoogleID(ctx context.Context, tenantID, googleID string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE tenant_id = ? AND google_id = ?",
		tenantID, googleID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user by google id: %w", err)
	}
	return u, nil
}

func (s *Store) FindUserByID(ctx context.Context, tenantID, id string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE tenant_id = ? AND id = ?",
		tenantID, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, tenant_id, google_id, email, name, avatar, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.TenantID, u.GoogleID, u.Email, u.Name, u.Avatar, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, ledger.ErrDuplicate
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "tenant_id", u.TenantID)
	return u, nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, u core.User) (core.User, error) {
	u.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, avatar = ?, email = ?, updated_at = ? WHERE tenant_id = ? AND id = ?",
		u.Name, u.Avatar, u.Email, u.UpdatedAt, u.TenantID, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, ledger.ErrDuplicate
		}
		return core.User{}, fmt.Errorf("update user profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.User{}, fmt.Errorf("update user profile: %w", err)
	}
	if affected == 0 {
		return core.User{}, ledger.ErrNotFound
	}
	return s.FindUserByID(ctx, u.TenantID, u.ID)
}

const walletColumns = "id, tenant_id, user_id, name, account_number, initial_balance_cents, balance_cents, opened_at, created_at"

func scanWallet(row interface{ Scan(...any) error }) (core.Wallet, error) {
	var w core.Wallet
	err := row.Scan(&w.ID, &w.TenantID, &w.UserID, &w.Name, &w.AccountNumber,
		&w.InitialBalance.Cents, &w.Balance.Cents, &w.OpenedAt, &w.CreatedAt)
	return w, err
}

func (s *Store) CreateWallet(ctx context.Context, w core.Wallet) (core.Wallet, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO wallets (id, tenant_id, user_id, name, account_number, initial_balance_cents, balance_cents, opened_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		w.ID, w.TenantID, w.UserID, w.Name, w.AccountNumber,
		w.InitialBalance.Cents, w.Balance.Cents, w.OpenedAt, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Wallet{}, ledger.ErrDuplicate
		}
		return core.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}

	slog.InfoContext(ctx, "Wallet created",
		"wallet_id", w.ID, "tenant_id", w.TenantID, "user_id", w.UserID, "name", w.Name)
	return w, nil
}

func (s *Store) ListWallets(ctx context.Context, tenantID, userID string) ([]core.Wallet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE tenant_id = ? AND user_id = ? ORDER BY created_at ASC",
		tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var out []core.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) FindWallet(ctx context.Context, tenantID, userID, walletID string) (core.Wallet, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE tenant_id = ? AND user_id = ? AND id = ?",
		tenantID, userID, walletID)
	w, err := scanWallet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Wallet{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Wallet{}, fmt.Errorf("find wallet: %w", err)
	}
	return w, nil
}

// RecordTransaction re-reads the wallet inside the transaction so the
// balance check and update cannot race a concurrent writer. The connection's
// immediate transaction mode makes concurrent writers queue on the database
// write lock rather than fail.
func (s *Store) RecordTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	row := dbtx.QueryRowContext(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE tenant_id = ? AND user_id = ? AND id = ?",
		tx.TenantID, tx.UserID, tx.WalletID)
	w, err := scanWallet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load wallet: %w", err)
	}

	if tx.Type == core.Expense && tx.Amount.Cents > w.Balance.Cents {
		return core.Transaction{}, ledger.ErrInsufficientBalance
	}

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.CreatedAt = time.Now().UTC()
	newBalance := w.Balance.Add(tx.Signed())

	if _, err := dbtx.ExecContext(ctx,
		"UPDATE wallets SET balance_cents = ? WHERE id = ?",
		newBalance.Cents, w.ID); err != nil {
		return core.Transaction{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := dbtx.ExecContext(ctx,
		"INSERT INTO transactions (id, tenant_id, user_id, wallet_id, type, amount_cents, category, date, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, tx.TenantID, tx.UserID, tx.WalletID, string(tx.Type),
		tx.Amount.Cents, tx.Category, tx.Date, tx.Note, tx.CreatedAt); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := dbtx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"transaction_id", tx.ID,
		"wallet_id", tx.WalletID,
		"type", string(tx.Type),
		"amount_cents", tx.Amount.Cents,
		"balance_cents", newBalance.Cents)
	return tx, nil
}

const txnColumns = "id, tenant_id, user_id, wallet_id, type, amount_cents, category, date, note, created_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var typ string
	err := row.Scan(&t.ID, &t.TenantID, &t.UserID, &t.WalletID, &typ,
		&t.Amount.Cents, &t.Category, &t.Date, &t.Note, &t.CreatedAt)
	t.Type = core.TransactionType(typ)
	return t, err
}

func (s *Store) ListTransactions(ctx context.Context, tenantID, userID string, f ledger.TransactionFilter, page ledger.Page) ([]core.Transaction, int, error) {
	where := []string{"tenant_id = ?", "user_id = ?"}
	args := []any{tenantID, userID}

	if f.WalletID != "" {
		where = append(where, "wallet_id = ?")
		args = append(args, f.WalletID)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if !f.Start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, f.Start)
	}
	if !f.End.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, f.End)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := "SELECT " + txnColumns + " FROM transactions WHERE " + cond +
		" ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (s *Store) ListWalletTransactions(ctx context.Context, tenantID, userID, walletID string) ([]core.Transaction, error) {
	if _, err := s.FindWallet(ctx, tenantID, userID, walletID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+txnColumns+" FROM transactions WHERE tenant_id = ? AND user_id = ? AND wallet_id = ? ORDER BY date ASC, created_at ASC",
		tenantID, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// isUniqueViolation matches SQLite's constraint error without depending on
// driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
