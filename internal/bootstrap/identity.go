package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/chargetogether/sso-bridge/config"
	redisadapter "github.com/chargetogether/sso-bridge/internal/adapters/redis"
	"github.com/chargetogether/sso-bridge/internal/data"
	"github.com/chargetogether/sso-bridge/internal/domain/identity"
	"github.com/chargetogether/sso-bridge/internal/service"
)

// IdentityConfig contains dependencies for the identity engine.
type IdentityConfig struct {
	Identity    config.IdentityConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildIdentityService wires the identity engine: claim normalization, the
// Redis identity map, and the Postgres user directory and group store.
func BuildIdentityService(cfg IdentityConfig) (*service.IdentityService, error) {
	if cfg.DB == nil {
		return nil, fmt.Errorf("identity service requires a database connection")
	}
	if cfg.RedisClient == nil {
		return nil, fmt.Errorf("identity service requires a redis client")
	}

	normalizer, err := identity.NewNormalizer(identity.NormalizerConfig{
		Provider:  cfg.Identity.Provider,
		AdminRole: cfg.Identity.AdminRole,
		Paths: identity.ClaimPaths{
			Subject:     cfg.Identity.Claims.Subject,
			DisplayName: cfg.Identity.Claims.DisplayName,
			Email:       cfg.Identity.Claims.Email,
			Roles:       cfg.Identity.Claims.Roles,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build claim normalizer: %w", err)
	}

	groups := data.NewGroupRepo(cfg.DB)
	if cfg.Identity.PrivilegedGroup != "" {
		groups.PrivilegedGroup = cfg.Identity.PrivilegedGroup
	}

	return service.NewIdentityService(service.IdentityServiceOptions{
		Normalizer: normalizer,
		Mappings:   redisadapter.NewIdentityMapWithPrefix(cfg.RedisClient, "extid:"),
		Directory:  data.NewUserRepo(cfg.DB),
		Groups:     groups,
		Logger:     cfg.Logger,
	}), nil
}
