package identity

// Package identity contains domain-level types for external identity
// resolution. It is pure and free of framework/adapter concerns.

import "errors"

// Profile is the canonical, normalized view of an external identity as
// asserted by an OAuth2/OIDC provider. Adapters hand the raw claims payload
// to a Normalizer; everything downstream works on this shape only.
type Profile struct {
	// Provider names the issuing provider and namespaces the identity map key.
	Provider string

	// SubjectID is the stable provider-issued identifier. Never empty.
	SubjectID string

	// DisplayName is the human-readable name, falling back to a value derived
	// from the email or subject when the provider omits a name claim.
	DisplayName string

	// Email is the secondary correlation key. May be empty; provisioning
	// decides policy.
	Email string

	// IsPrivileged is derived from the provider-asserted roles claim and
	// controls privileged-group promotion.
	IsPrivileged bool
}

// Sentinel errors for claim normalization.
var (
	// ErrMalformedClaims is returned when the raw claims payload is not a
	// well-formed JSON object.
	ErrMalformedClaims = errors.New("malformed claims payload")

	// ErrMissingSubject is returned when no subject claim can be extracted.
	ErrMissingSubject = errors.New("missing subject claim")
)

// ExportFieldName returns the per-provider user field the host must include
// in any whitelist of exported user fields. Unlink resolves the reverse
// mapping through this field, so excluding it breaks account deletion.
func ExportFieldName(provider string) string {
	return provider + "Id"
}
