package auth

import (
	"errors"
	"fmt"
	"time"
)

// TokenData is the persisted OAuth2 token state.
// The refresh token is long-lived; the access token and expiry are
// replaced on every refresh.
type TokenData struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	TokenType    string    `json:"token_type"`
}

// Clone returns a copy of the token data.
func (t *TokenData) Clone() *TokenData {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ErrNotAuthenticated is returned when no token is held at all.
var ErrNotAuthenticated = errors.New("not authenticated with Google Tasks")

// ErrNoRefreshToken is returned when a refresh is required but no refresh
// token is held. This is unrecoverable without re-authorization.
var ErrNoRefreshToken = errors.New("no refresh token held, re-authorization required")

// ExchangeError is a provider-reported failure of the authorization code
// exchange.
type ExchangeError struct {
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("authorization code exchange failed: %s", e.Message)
}

// RefreshError is a provider-reported failure of a refresh token exchange.
// It does not invalidate stored tokens; only an explicit sign-out does.
type RefreshError struct {
	Message string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %s", e.Message)
}

// TokenSink persists token state after lifecycle transitions.
// A nil token means the session was cleared by sign-out.
type TokenSink interface {
	SaveToken(token *TokenData) error
}

// TokenSinkFunc adapts a function to the TokenSink interface.
type TokenSinkFunc func(token *TokenData) error

// SaveToken implements TokenSink.
func (f TokenSinkFunc) SaveToken(token *TokenData) error {
	return f(token)
}
