package ports

import (
	"context"
	"encoding/json"
	"time"

	domainauth "github.com/chargetogether/sso-bridge/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ExchangeResult is the transport-level outcome of a completed code
// exchange. RawClaims is handed to the identity engine untouched; the
// provider performs no normalization of its own.
type ExchangeResult struct {
	// RawClaims is the provider's userinfo/claims payload as returned on the
	// wire.
	RawClaims json.RawMessage

	// IDTokenHint is the raw id_token when present, forwarded to the
	// provider's end-session endpoint on logout.
	IDTokenHint string

	// ExpiresAt is the absolute token expiry.
	ExpiresAt time.Time
}

// AuthProvider initiates and completes an authentication flow against an
// IdP. It owns redirects, token exchange, and token verification; it never
// touches local accounts.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the raw provider claims.
	Exchange(ctx context.Context, in ExchangeInput) (ExchangeResult, error)
}

// LogoutNotifier tells the provider a local session ended. Implementations
// are best-effort: failures are logged, never returned, never retried.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context, idTokenHint string)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
