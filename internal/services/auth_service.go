// Package services orchestrates the use cases behind the HTTP surface:
// sign-in, wallet management, transaction recording and statements. Services
// translate store sentinels into status-coded errors for the transport layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vitien/internal/apperr"
	"vitien/internal/core"
	"vitien/internal/identity"
	"vitien/internal/ledger"
	"vitien/internal/token"
)

const defaultWalletName = "Main wallet"

// AuthService signs users in: it verifies the provider credential, provisions
// or refreshes the account and issues an API token.
type AuthService struct {
	store    ledger.Store
	verifier identity.Verifier
	tokens   *token.Manager
}

func NewAuthService(store ledger.Store, verifier identity.Verifier, tokens *token.Manager) *AuthService {
	return &AuthService{store: store, verifier: verifier, tokens: tokens}
}

type LoginResult struct {
	Token        string
	User         core.User
	Wallets      []core.Wallet
	TotalBalance core.Money
}

// Login verifies a Google ID token, upserts the user within the tenant and
// guarantees at least one wallet exists. First sign-in creates the account
// and a default wallet; later sign-ins refresh name, avatar and email.
func (s *AuthService) Login(ctx context.Context, tenantID, credential string) (LoginResult, error) {
	id, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return LoginResult{}, apperr.InvalidIdentity(err)
	}

	u, err := s.store.FindUserByGoogleID(ctx, tenantID, id.Subject)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		u, err = s.store.CreateUser(ctx, core.User{
			TenantID: tenantID,
			GoogleID: id.Subject,
			Email:    id.Email,
			Name:     id.Name,
			Avatar:   id.Picture,
		})
		if errors.Is(err, ledger.ErrDuplicate) {
			return LoginResult{}, apperr.Conflict("email already registered to another account")
		}
		if err != nil {
			return LoginResult{}, fmt.Errorf("create user: %w", err)
		}
		slog.InfoContext(ctx, "User provisioned", "user_id", u.ID, "tenant_id", tenantID)
	case err != nil:
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	default:
		if u.Name != id.Name || u.Avatar != id.Picture || u.Email != id.Email {
			u.Name = id.Name
			u.Avatar = id.Picture
			u.Email = id.Email
			u, err = s.store.UpdateUserProfile(ctx, u)
			if errors.Is(err, ledger.ErrDuplicate) {
				return LoginResult{}, apperr.Conflict("email already registered to another account")
			}
			if err != nil {
				return LoginResult{}, fmt.Errorf("refresh profile: %w", err)
			}
		}
	}

	wallets, err := s.store.ListWallets(ctx, tenantID, u.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("list wallets: %w", err)
	}
	if len(wallets) == 0 {
		w, err := s.store.CreateWallet(ctx, core.Wallet{
			TenantID: tenantID,
			UserID:   u.ID,
			Name:     defaultWalletName,
			OpenedAt: time.Now().UTC(),
		})
		if err != nil {
			return LoginResult{}, fmt.Errorf("create default wallet: %w", err)
		}
		wallets = []core.Wallet{w}
	}

	signed, err := s.tokens.Issue(u)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{
		Token:        signed,
		User:         u,
		Wallets:      wallets,
		TotalBalance: totalBalance(wallets),
	}, nil
}

// ResolveUser loads the account behind a verified token. Tokens can outlive
// their account; a missing user fails with NotFound.
func (s *AuthService) ResolveUser(ctx context.Context, tenantID, userID string) (core.User, error) {
	u, err := s.store.FindUserByID(ctx, tenantID, userID)
	if errors.Is(err, ledger.ErrNotFound) {
		return core.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return core.User{}, fmt.Errorf("resolve user: %w", err)
	}
	return u, nil
}

func totalBalance(wallets []core.Wallet) core.Money {
	var sum core.Money
	for _, w := range wallets {
		sum = sum.Add(w.Balance)
	}
	return sum
}
