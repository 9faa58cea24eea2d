package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

// IdentityServiceInterface defines the identity engine operations the link
// handlers depend on.
type IdentityServiceInterface interface {
	Unlink(ctx context.Context, userID string) error
	Provider() string
}

// LinkHandlers provides HTTP handlers for managing the external identity
// link on the authenticated account.
type LinkHandlers struct {
	Svc    IdentityServiceInterface
	Logger *slog.Logger
}

func (h *LinkHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Unlink detaches the external identity from the authenticated account.
// DELETE /auth/link. Requires an authenticated session.
func (h *LinkHandlers) Unlink(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	if err := h.Svc.Unlink(r.Context(), session.UserID); err != nil {
		if errors.Is(err, ports.ErrNotLinked) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "not_linked",
				Err:     err,
			})
			return
		}
		h.logger().ErrorContext(r.Context(), "unlink failed",
			"user_id", session.UserID, "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "unlink_failed",
			Err:     err,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "unlinked",
		"provider": h.Svc.Provider(),
	})
}
