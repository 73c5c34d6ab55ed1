package auth

import (
	"context"
	"fmt"
)

// Authenticator verifies bearer tokens and consults the optional revocation
// list.
type Authenticator struct {
	tokens  *Tokens
	revoker Revoker
}

// NewAuthenticator returns an Authenticator. revoker may be nil, in which
// case tokens are valid until they expire.
func NewAuthenticator(tokens *Tokens, revoker Revoker) *Authenticator {
	return &Authenticator{tokens: tokens, revoker: revoker}
}

// Authenticate returns the claims of a valid, unrevoked token. A revocation
// lookup failure is returned wrapped and is not a token error.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	if a.revoker == nil || claims.ID == "" {
		return claims, nil
	}
	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates the token described by claims. It is a no-op without
// a revocation list.
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	if a.revoker == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return a.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
