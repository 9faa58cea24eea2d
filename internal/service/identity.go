package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chargetogether/sso-bridge/internal/domain/identity"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// ErrProvisioning is wrapped by login failures caused by account creation
// policy: a uniqueness conflict on username or email, or a profile that
// carries no email at all. Callers can surface these differently from
// transient infrastructure failures.
var ErrProvisioning = errors.New("account provisioning failed")

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Normalizer *identity.Normalizer
	Mappings   ports.IdentityMap
	Directory  ports.UserDirectory
	Groups     ports.GroupService
	Logger     *slog.Logger
}

// IdentityService resolves external provider identities to local accounts,
// provisioning accounts on first login. It owns the identity map and the
// per-account reverse link; account storage itself belongs to the directory.
type IdentityService struct {
	normalizer *identity.Normalizer
	mappings   ports.IdentityMap
	directory  ports.UserDirectory
	groups     ports.GroupService
	logger     *slog.Logger
}

// NewIdentityService constructs a new IdentityService.
func NewIdentityService(opts IdentityServiceOptions) *IdentityService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityService{
		normalizer: opts.Normalizer,
		mappings:   opts.Mappings,
		directory:  opts.Directory,
		groups:     opts.Groups,
		logger:     logger,
	}
}

// Provider returns the provider name this service resolves identities for.
func (s *IdentityService) Provider() string { return s.normalizer.Provider() }

// LoginResult carries the outcome of a resolved login: the local account id
// and the normalized profile it was resolved from. Created reports whether
// this login provisioned a brand-new account.
type LoginResult struct {
	UserID  string
	Profile identity.Profile
	Created bool
}

// Login runs the full pipeline for one provider callback: normalize the raw
// claims, resolve the external subject through the identity map, and
// provision a local account when no mapping exists yet.
func (s *IdentityService) Login(ctx context.Context, rawClaims json.RawMessage) (*LoginResult, error) {
	profile, err := s.normalizer.Normalize(rawClaims)
	if err != nil {
		return nil, fmt.Errorf("normalize claims: %w", err)
	}

	userID, err := s.Resolve(ctx, profile)
	switch {
	case err == nil:
		return &LoginResult{UserID: userID, Profile: profile}, nil
	case errors.Is(err, ports.ErrMappingNotFound):
		return s.provision(ctx, profile)
	default:
		return nil, err
	}
}

// Authenticate resolves raw provider claims to a local user id, provisioning
// the account on first login. It is Login without the profile detail.
func (s *IdentityService) Authenticate(ctx context.Context, rawClaims json.RawMessage) (string, error) {
	result, err := s.Login(ctx, rawClaims)
	if err != nil {
		return "", err
	}
	return result.UserID, nil
}

// Resolve returns the local user id already linked to the profile's external
// subject, or ports.ErrMappingNotFound. It never writes.
func (s *IdentityService) Resolve(ctx context.Context, profile identity.Profile) (string, error) {
	userID, err := s.mappings.Lookup(ctx, profile.Provider, profile.SubjectID)
	if err != nil {
		if errors.Is(err, ports.ErrMappingNotFound) {
			return "", err
		}
		return "", fmt.Errorf("lookup identity mapping: %w", err)
	}
	return userID, nil
}

// provision attaches the external identity to a local account: an existing
// account found by email, or a newly created one. The account link is
// written in two places, the reverse field on the account and the forward
// identity map entry, in that order. The forward write is conditional; when
// a concurrent login for the same subject wins the race, the winner's user
// id is adopted instead of failing the login.
func (s *IdentityService) provision(ctx context.Context, profile identity.Profile) (*LoginResult, error) {
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: provider sent no email for subject %q", ErrProvisioning, profile.SubjectID)
	}

	userID, created, err := s.findOrCreateAccount(ctx, profile)
	if err != nil {
		return nil, err
	}

	m := ports.Mapping{Provider: profile.Provider, SubjectID: profile.SubjectID, UserID: userID}
	if err := s.directory.SetLinkedExternalID(ctx, m); err != nil {
		return nil, fmt.Errorf("set linked external id: %w", err)
	}

	if err := s.mappings.Put(ctx, m); err != nil {
		if errors.Is(err, ports.ErrAlreadyLinked) {
			return s.adoptRaceWinner(ctx, profile, userID, created)
		}
		return nil, fmt.Errorf("put identity mapping: %w", err)
	}

	if profile.IsPrivileged {
		if err := s.groups.AddToPrivilegedGroup(ctx, userID); err != nil {
			// The account and mapping stand. Membership is left incomplete
			// for operator remediation; later logins resolve via the map.
			s.logger.ErrorContext(ctx, "privileged group promotion failed",
				"user_id", userID, "provider", profile.Provider, "error", err)
			return nil, fmt.Errorf("promote user %s to privileged group: %w", userID, err)
		}
	}

	s.logger.InfoContext(ctx, "external identity linked",
		"provider", profile.Provider, "user_id", userID, "created", created)

	return &LoginResult{UserID: userID, Profile: profile, Created: created}, nil
}

// findOrCreateAccount merges into the account holding the profile's email
// when one exists, otherwise creates a fresh account named after the
// profile's display name.
func (s *IdentityService) findOrCreateAccount(ctx context.Context, profile identity.Profile) (string, bool, error) {
	existing, err := s.directory.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		return existing.ID, false, nil
	case errors.Is(err, ports.ErrUserNotFound):
		// Fall through to create.
	default:
		return "", false, fmt.Errorf("find account by email: %w", err)
	}

	user, err := s.directory.CreateUser(ctx, ports.CreateUserInput{
		Username: profile.DisplayName,
		Email:    profile.Email,
	})
	if err != nil {
		if errors.Is(err, ports.ErrAccountConflict) {
			// A concurrent login may have created the account between our
			// lookup and the insert. One more email lookup settles it; a
			// conflict on the username alone is a genuine provisioning
			// failure, never auto-renamed.
			if existing, findErr := s.directory.FindByEmail(ctx, profile.Email); findErr == nil {
				return existing.ID, false, nil
			}
			return "", false, fmt.Errorf("%w: %w", ErrProvisioning, err)
		}
		return "", false, fmt.Errorf("create account: %w", err)
	}
	return user.ID, true, nil
}

// adoptRaceWinner re-resolves the subject exactly once after losing the
// conditional mapping write. The loser's freshly created account, if any,
// is left in place for operator cleanup rather than compensated here.
func (s *IdentityService) adoptRaceWinner(ctx context.Context, profile identity.Profile, loserID string, created bool) (*LoginResult, error) {
	winnerID, err := s.mappings.Lookup(ctx, profile.Provider, profile.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("re-resolve after losing link race: %w", err)
	}

	if created {
		s.logger.WarnContext(ctx, "concurrent first login left an orphaned account",
			"provider", profile.Provider, "orphan_user_id", loserID, "winner_user_id", winnerID)
	}

	return &LoginResult{UserID: winnerID, Profile: profile}, nil
}

// Unlink detaches the external identity from a local account: the subject is
// read back from the account's reverse field, then the forward identity map
// entry is removed. An account that was never linked fails with
// ports.ErrNotLinked. The reverse field itself is left on the account as an
// audit trail of the former link.
func (s *IdentityService) Unlink(ctx context.Context, userID string) error {
	provider := s.normalizer.Provider()

	subjectID, err := s.directory.LinkedExternalID(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, ports.ErrNotLinked) {
			return err
		}
		return fmt.Errorf("read linked external id: %w", err)
	}

	if err := s.mappings.Remove(ctx, provider, subjectID); err != nil {
		if errors.Is(err, ports.ErrMappingNotFound) {
			// Reverse field says linked but the map entry is gone. Treat as
			// already unlinked but keep a trace of the inconsistency.
			s.logger.WarnContext(ctx, "identity map entry already absent during unlink",
				"user_id", userID, "provider", provider)
			return nil
		}
		return fmt.Errorf("remove identity mapping: %w", err)
	}

	s.logger.InfoContext(ctx, "external identity unlinked",
		"provider", provider, "user_id", userID)
	return nil
}
