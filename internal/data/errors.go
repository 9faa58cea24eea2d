package data

import (
	"errors"
	"fmt"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

// Shared sentinel errors for data-layer repositories. The uniqueness
// sentinels wrap ports.ErrAccountConflict so callers above the data layer
// can classify them without importing this package.
var (
	// ErrUsernameExists is returned when creating an account with a taken handle.
	ErrUsernameExists = fmt.Errorf("%w: username already exists", ports.ErrAccountConflict)

	// ErrEmailExists is returned when creating an account with a taken email.
	ErrEmailExists = fmt.Errorf("%w: email already exists", ports.ErrAccountConflict)

	// ErrGroupNotFound is returned when a membership write names an unknown group.
	ErrGroupNotFound = errors.New("group not found")
)
