// Package devseed seeds local development data: a handful of accounts with
// pre-linked external identities so the login flows have something to land
// on. It is only invoked in dev mode and every step is idempotent.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/chargetogether/sso-bridge/internal/data"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// Config bundles the dependencies needed for development seeding.
type Config struct {
	DB       *sql.DB
	Provider string
	Logger   *slog.Logger
}

type seedAccount struct {
	username   string
	email      string
	externalID string
	privileged bool
}

var seedAccounts = []seedAccount{
	{username: "dev-admin", email: "dev-admin@example.com", externalID: "dev-ext-admin", privileged: true},
	{username: "dev-user", email: "dev-user@example.com", externalID: "dev-ext-user"},
	{username: "unlinked", email: "unlinked@example.com"},
}

// Run executes the development seeding workflow against the provided DB.
// Existing accounts are left untouched, so repeated startups are safe.
func Run(ctx context.Context, cfg Config) error {
	if cfg.DB == nil {
		return errors.New("devseed requires a database connection")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(cfg.DB)
	groups := data.NewGroupRepo(cfg.DB)

	for _, acct := range seedAccounts {
		user, err := users.FindByEmail(ctx, acct.email)
		switch {
		case err == nil:
			// Already seeded.
		case errors.Is(err, ports.ErrUserNotFound):
			user, err = users.CreateUser(ctx, ports.CreateUserInput{
				Username: acct.username,
				Email:    acct.email,
			})
			if err != nil {
				logger.WarnContext(ctx, "seed account failed", "username", acct.username, "error", err)
				continue
			}
			logger.InfoContext(ctx, "seeded dev account", "username", acct.username, "user_id", user.ID)
		default:
			return err
		}

		if acct.externalID != "" {
			err = users.SetLinkedExternalID(ctx, ports.Mapping{
				Provider:  cfg.Provider,
				SubjectID: acct.externalID,
				UserID:    user.ID,
			})
			if err != nil {
				logger.WarnContext(ctx, "seed external link failed", "username", acct.username, "error", err)
			}
		}

		if acct.privileged {
			if err = groups.AddToPrivilegedGroup(ctx, user.ID); err != nil {
				logger.WarnContext(ctx, "seed group membership failed", "username", acct.username, "error", err)
			}
		}
	}

	return nil
}
