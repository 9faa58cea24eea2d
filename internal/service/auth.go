package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/chargetogether/sso-bridge/internal/domain/auth"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Identity *IdentityService
	Sessions ports.SessionStore
	Logout   ports.LogoutNotifier
	Logger   *slog.Logger
}

// AuthService orchestrates browser-facing authentication flows: it drives
// the provider exchange, hands the raw claims to the identity engine, and
// persists the resulting session.
type AuthService struct {
	provider ports.AuthProvider
	identity *IdentityService
	sessions ports.SessionStore
	logout   ports.LogoutNotifier
	logger   *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// ErrSessionExpired reports whether an error from GetSession means the
// session existed but had passed its expiry.
func ErrSessionExpired(err error) bool { return errors.Is(err, errSessionExpired) }

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		identity: opts.Identity,
		sessions: opts.Sessions,
		logout:   opts.Logout,
		logger:   logger,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth
// URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session

	// Created reports whether this login provisioned a new local account.
	Created bool
}

// CompleteLogin completes an authentication flow: it exchanges the code for
// the provider's claims, resolves them to a local account through the
// identity engine, and persists a session bound to that LOCAL account id.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}

	exchanged, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	login, err := s.identity.Login(ctx, exchanged.RawClaims)
	if err != nil {
		return nil, err
	}

	session := domainauth.Session{
		ID:          uuid.NewString(),
		UserID:      login.UserID,
		DisplayName: login.Profile.DisplayName,
		Email:       login.Profile.Email,
		Role:        domainauth.RoleForPrivilege(login.Profile.IsPrivileged),
		ExpiresAt:   exchanged.ExpiresAt,
		IDTokenHint: exchanged.IDTokenHint,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session, Created: login.Created}, nil
}

// GetSession retrieves a session by ID, deleting it when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session and notifies the provider afterwards. The
// provider call is best-effort: a dead or slow IdP never blocks or fails
// the local logout.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // nothing to log out
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		// Session already gone. Local logout is complete either way.
		s.logger.DebugContext(ctx, "logout for absent session", "session_id", sessionID)
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if s.logout != nil && session.IDTokenHint != "" {
		s.logout.NotifyLogout(context.WithoutCancel(ctx), session.IDTokenHint)
	}

	return nil
}
