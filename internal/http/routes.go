package httpx

import (
	"log/slog"
	"net/http"

	"github.com/chargetogether/sso-bridge/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Identity *service.IdentityService

	CookieDomain      string
	SessionCookieName string

	Logger *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			CookieDomain: services.CookieDomain,
			CookieName:   services.SessionCookieName,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)

		if services.Identity != nil {
			linkHandlers := &LinkHandlers{Svc: services.Identity, Logger: services.Logger}
			requireAuth := RequireAuth(AuthMiddlewareConfig{
				Svc:        services.Auth,
				CookieName: services.SessionCookieName,
			})
			mux.Handle("DELETE /auth/link", requireAuth(http.HandlerFunc(linkHandlers.Unlink)))
		}
	}

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}
