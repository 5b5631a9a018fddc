// Package identity verifies sign-in credentials from an external provider
// and maps them to a provider-neutral Identity.
package identity

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var ErrInvalidCredential = errors.New("invalid sign-in credential")

// Identity is a verified external identity. Subject is the provider's stable
// user id.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier checks a raw credential (a Google ID token) and returns the
// identity it asserts.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// GoogleVerifier validates Google ID tokens against a client ID audience.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	id := Identity{
		Subject: payload.Subject,
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: claimString(payload.Claims, "picture"),
	}
	// A token without the profile claims cannot provision an account.
	if id.Subject == "" || id.Email == "" || id.Name == "" {
		return Identity{}, ErrInvalidCredential
	}
	return id, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// StaticVerifier resolves credentials from a fixed map. It backs local
// development and tests, where real Google tokens are unavailable.
type StaticVerifier struct {
	identities map[string]Identity
}

func NewStaticVerifier(identities map[string]Identity) *StaticVerifier {
	return &StaticVerifier{identities: identities}
}

func (v *StaticVerifier) Verify(_ context.Context, credential string) (Identity, error) {
	id, ok := v.identities[credential]
	if !ok {
		return Identity{}, ErrInvalidCredential
	}
	if id.Subject == "" || id.Email == "" || id.Name == "" {
		return Identity{}, ErrInvalidCredential
	}
	return id, nil
}
