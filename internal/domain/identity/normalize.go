package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// ClaimPaths holds JMESPath expressions that locate each canonical field in
// the provider's claims payload. Zero-value fields fall back to the standard
// OIDC claim names.
type ClaimPaths struct {
	Subject     string
	DisplayName string
	Email       string
	Roles       string
}

// DefaultClaimPaths returns the standard OIDC claim locations.
func DefaultClaimPaths() ClaimPaths {
	return ClaimPaths{
		Subject:     "sub",
		DisplayName: "name",
		Email:       "email",
		Roles:       "roles",
	}
}

// NormalizerConfig groups construction parameters for a Normalizer.
type NormalizerConfig struct {
	// Provider names the issuing provider; stamped on every Profile.
	Provider string

	// AdminRole is the provider-asserted role that marks a profile as
	// privileged. Empty disables promotion entirely.
	AdminRole string

	// Paths overrides claim locations per field; zero-value fields use
	// DefaultClaimPaths.
	Paths ClaimPaths
}

// Normalizer maps raw provider claim payloads into canonical Profiles.
// Construction validates the claim-path expressions once; Normalize itself
// is cheap and side-effect free.
type Normalizer struct {
	provider  string
	adminRole string
	paths     ClaimPaths
}

// NewNormalizer constructs a Normalizer, validating the configured claim
// paths. Invalid expressions fail construction rather than every login.
func NewNormalizer(cfg NormalizerConfig) (*Normalizer, error) {
	if cfg.Provider == "" {
		return nil, errors.New("provider name is required")
	}

	paths := cfg.Paths
	defaults := DefaultClaimPaths()
	if paths.Subject == "" {
		paths.Subject = defaults.Subject
	}
	if paths.DisplayName == "" {
		paths.DisplayName = defaults.DisplayName
	}
	if paths.Email == "" {
		paths.Email = defaults.Email
	}
	if paths.Roles == "" {
		paths.Roles = defaults.Roles
	}

	for _, p := range []struct{ name, expr string }{
		{"subject", paths.Subject},
		{"display name", paths.DisplayName},
		{"email", paths.Email},
		{"roles", paths.Roles},
	} {
		if _, err := jmespath.Compile(p.expr); err != nil {
			return nil, fmt.Errorf("compile %s path %q: %w", p.name, p.expr, err)
		}
	}

	return &Normalizer{
		provider:  cfg.Provider,
		adminRole: cfg.AdminRole,
		paths:     paths,
	}, nil
}

// Provider returns the provider name stamped on every normalized Profile.
func (n *Normalizer) Provider() string { return n.provider }

// Normalize maps a raw claims payload into a canonical Profile.
//
// A payload that is not a JSON object fails with ErrMalformedClaims; an
// absent or empty subject claim fails with ErrMissingSubject. A missing
// email is NOT an error here; it propagates as an empty string and the
// provisioning path decides policy.
func (n *Normalizer) Normalize(raw json.RawMessage) (Profile, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}

	subject := n.searchString(n.paths.Subject, data)
	if subject == "" {
		return Profile{}, ErrMissingSubject
	}

	email := n.searchString(n.paths.Email, data)
	name := n.searchString(n.paths.DisplayName, data)
	if name == "" {
		name = fallbackDisplayName(email, subject)
	}

	return Profile{
		Provider:     n.provider,
		SubjectID:    subject,
		DisplayName:  name,
		Email:        email,
		IsPrivileged: n.isPrivileged(data),
	}, nil
}

// isPrivileged reports whether the first element of the roles claim equals
// the configured admin role. The comparison is case-sensitive and only the
// first element is consulted; later elements never grant privilege. An
// absent or empty roles claim is not privileged.
func (n *Normalizer) isPrivileged(data map[string]any) bool {
	if n.adminRole == "" {
		return false
	}
	res, err := jmespath.Search(n.paths.Roles, data)
	if err != nil {
		return false
	}
	roles, ok := res.([]any)
	if !ok || len(roles) == 0 {
		return false
	}
	first, ok := roles[0].(string)
	return ok && first == n.adminRole
}

func (n *Normalizer) searchString(expr string, data map[string]any) string {
	res, err := jmespath.Search(expr, data)
	if err != nil {
		return ""
	}
	s, ok := res.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// fallbackDisplayName derives a handle when the provider omits a name claim:
// the email local-part when an email is present, otherwise the subject id.
func fallbackDisplayName(email, subject string) string {
	if email != "" {
		if at := strings.Index(email, "@"); at > 0 {
			return email[:at]
		}
		return email
	}
	return subject
}
