package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chargetogether/sso-bridge/internal/data/pgxutil"
	"github.com/chargetogether/sso-bridge/internal/domain/model"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// UserRepo is the pgx-backed user directory. It implements the engine's
// directory port; account uniqueness is enforced by database constraints,
// never re-checked in application code.
type UserRepo struct {
	DB *sql.DB
}

var _ ports.UserDirectory = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// FindByEmail retrieves the account holding the given email address.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ports.ErrUserNotFound
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, username, email, created_at
			FROM users
			WHERE email = $1
		`, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &out, nil
}

// CreateUser inserts a new account. Handle and email collisions surface as
// ErrUsernameExists/ErrEmailExists; the caller decides conflict policy.
func (r *UserRepo) CreateUser(ctx context.Context, in ports.CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if err := model.ValidateNewUser(username, email); err != nil {
		return nil, err
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, username, email)
			VALUES ($1, $2, $3)
			RETURNING id, username, email, created_at
		`, uuid.NewString(), username, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, mapUserWriteErr(err)
	}
	return &out, nil
}

// SetLinkedExternalID stores the external subject on the account, keyed by
// provider. Re-linking the same provider overwrites the stored subject; the
// forward identity map is what guards against re-pointing.
func (r *UserRepo) SetLinkedExternalID(ctx context.Context, m ports.Mapping) error {
	if m.UserID == "" || m.Provider == "" || m.SubjectID == "" {
		return errors.New("user id, provider, and subject id are required")
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_external_ids (user_id, provider, external_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, provider)
		DO UPDATE SET external_id = EXCLUDED.external_id
	`, m.UserID, m.Provider, m.SubjectID)
	if err != nil {
		return fmt.Errorf("set linked external id: %w", err)
	}
	return nil
}

// LinkedExternalID returns the external subject stored on the account for
// the given provider.
func (r *UserRepo) LinkedExternalID(ctx context.Context, userID, provider string) (string, error) {
	if userID == "" || provider == "" {
		return "", ports.ErrNotLinked
	}

	var externalID string
	err := r.DB.QueryRowContext(ctx, `
		SELECT external_id
		FROM user_external_ids
		WHERE user_id = $1 AND provider = $2
	`, userID, provider).Scan(&externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ports.ErrNotLinked
		}
		return "", fmt.Errorf("get linked external id: %w", err)
	}
	return externalID, nil
}

// mapUserWriteErr converts constraint violations into repository sentinels.
func mapUserWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameExists
		case "users_email_key":
			return ErrEmailExists
		}
		return fmt.Errorf("unique violation on %s: %w", pgErr.ConstraintName, err)
	}
	return fmt.Errorf("create user: %w", err)
}
