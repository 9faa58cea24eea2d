package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/chargetogether/sso-bridge/config"
	"github.com/chargetogether/sso-bridge/internal/adapters/devauth"
	"github.com/chargetogether/sso-bridge/internal/adapters/oidc"
	redisadapter "github.com/chargetogether/sso-bridge/internal/adapters/redis"
	"github.com/chargetogether/sso-bridge/internal/ports"
	"github.com/chargetogether/sso-bridge/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Identity    *service.IdentityService
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}
	if cfg.Identity == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: identity service not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis session store shared by both modes
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore)

	case config.AuthModeOAuth:
		return buildOAuthService(cfg, sessionStore)

	default:
		return nil
	}
}

func buildDevAuthService(cfg AuthConfig, sessionStore *redisadapter.SessionStore) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		Subject:         cfg.Auth.DevAuth.Subject,
		Name:            cfg.Auth.DevAuth.Name,
		Email:           cfg.Auth.DevAuth.Email,
		Roles:           cfg.Auth.DevAuth.Roles,
		SessionDuration: cfg.Auth.DevAuth.SessionDuration,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Identity: cfg.Identity,
		Sessions: sessionStore,
		Logger:   cfg.Logger,
	})
}

func buildOAuthService(cfg AuthConfig, sessionStore *redisadapter.SessionStore) *service.AuthService {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	var notifier ports.LogoutNotifier
	if oauth.LogoutURL != "" {
		notifier = oidc.NewLogoutNotifier(oauth.LogoutURL, cfg.Logger)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Identity: cfg.Identity,
		Sessions: sessionStore,
		Logout:   notifier,
		Logger:   cfg.Logger,
	})
}
