package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

// DefaultPrivilegedGroup is the membership granted on privileged-role
// promotion. Matches the administrators group seeded by the migrations.
const DefaultPrivilegedGroup = "administrators"

// GroupRepo is the pgx-backed group-membership store. The engine only ever
// adds members; group lifecycle belongs to the host.
type GroupRepo struct {
	DB *sql.DB

	// PrivilegedGroup defaults to DefaultPrivilegedGroup when empty.
	PrivilegedGroup string
}

var _ ports.GroupService = (*GroupRepo)(nil)

// NewGroupRepo creates a GroupRepo promoting into the default group.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{DB: db, PrivilegedGroup: DefaultPrivilegedGroup}
}

// AddToPrivilegedGroup adds the user to the privileged group. Adding an
// existing member is a no-op, so repeated promotion is safe.
func (r *GroupRepo) AddToPrivilegedGroup(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id is required")
	}

	group := r.PrivilegedGroup
	if group == "" {
		group = DefaultPrivilegedGroup
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO group_members (group_name, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_name, user_id) DO NOTHING
	`, group, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			if pgErr.ConstraintName == "group_members_group_name_fkey" {
				return fmt.Errorf("%w: %s", ErrGroupNotFound, group)
			}
		}
		return fmt.Errorf("add member to group %s: %w", group, err)
	}
	return nil
}

// IsMember reports whether the user belongs to the privileged group.
// Exposed for host-side authorization checks and tests.
func (r *GroupRepo) IsMember(ctx context.Context, userID string) (bool, error) {
	group := r.PrivilegedGroup
	if group == "" {
		group = DefaultPrivilegedGroup
	}

	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM group_members WHERE group_name = $1 AND user_id = $2
		)
	`, group, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check group membership: %w", err)
	}
	return exists, nil
}
