package ports

// Package ports defines interfaces (hexagonal ports) for identity resolution
// and session behavior. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.

import (
	"context"
	"errors"

	"github.com/chargetogether/sso-bridge/internal/domain/model"
)

// Sentinel errors shared by all port implementations so the service layer
// can branch on outcomes without knowing which adapter is wired in.
var (
	// ErrMappingNotFound is returned when no identity mapping exists for a
	// (provider, subject) pair.
	ErrMappingNotFound = errors.New("identity mapping not found")

	// ErrAlreadyLinked is returned when a mapping put would re-point an
	// existing mapping at a different local user. Mappings are written
	// exactly once and never silently overwritten.
	ErrAlreadyLinked = errors.New("external identity already linked to a different user")

	// ErrUserNotFound is returned by directory lookups that match no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountConflict is wrapped by directory create errors caused by a
	// username or email uniqueness violation, as opposed to transport
	// failures. The engine never retries or auto-renames on conflict.
	ErrAccountConflict = errors.New("account conflict")

	// ErrNotLinked is returned when an account has no linked external
	// identity for the requested provider.
	ErrNotLinked = errors.New("account not linked to an external identity")
)

// Mapping is one identity-map entry: a provider-scoped external subject
// pointing at exactly one local user.
type Mapping struct {
	Provider  string
	SubjectID string
	UserID    string
}

// IdentityMap is the persistent one-to-one mapping from a provider-scoped
// external subject to a local user id. Writes are immediate; reads are
// strongly consistent with the most recent write from the same process.
type IdentityMap interface {
	// Lookup returns the local user id linked to the given external subject,
	// or ErrMappingNotFound.
	Lookup(ctx context.Context, provider, subjectID string) (string, error)

	// Put records a mapping with conditional-write semantics: if the key is
	// already linked to a different user it fails with ErrAlreadyLinked and
	// leaves the existing entry untouched. Re-putting the identical mapping
	// succeeds.
	Put(ctx context.Context, m Mapping) error

	// Remove deletes the mapping for the given external subject, or returns
	// ErrMappingNotFound when no entry exists.
	Remove(ctx context.Context, provider, subjectID string) error
}

// CreateUserInput carries the fields the engine supplies when provisioning
// a brand-new local account.
type CreateUserInput struct {
	Username string
	Email    string
}

// UserDirectory is the host user-repository collaborator. The engine only
// reads and writes through this interface; account storage, uniqueness
// enforcement, and the rest of the account lifecycle belong to the host.
type UserDirectory interface {
	// FindByEmail returns the account holding the given email address, or
	// ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateUser creates a new local account. Uniqueness conflicts (username
	// or email already taken) surface as errors; the engine does not retry
	// or auto-rename.
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)

	// SetLinkedExternalID stores the external subject on the account itself,
	// keyed by provider. This is the reverse of the identity map and is what
	// Unlink reads back.
	SetLinkedExternalID(ctx context.Context, m Mapping) error

	// LinkedExternalID returns the external subject stored on the account
	// for the given provider, or ErrNotLinked.
	LinkedExternalID(ctx context.Context, userID, provider string) (string, error)
}

// GroupService is the host group-membership collaborator used for
// privileged-role promotion. Adding an existing member must be idempotent.
type GroupService interface {
	AddToPrivilegedGroup(ctx context.Context, userID string) error
}
