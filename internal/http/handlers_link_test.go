package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/chargetogether/sso-bridge/internal/domain/auth"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// mockIdentityService is a test double for service.IdentityService.
type mockIdentityService struct {
	unlinkFunc func(ctx context.Context, userID string) error
}

func (m *mockIdentityService) Unlink(ctx context.Context, userID string) error {
	if m.unlinkFunc != nil {
		return m.unlinkFunc(ctx, userID)
	}
	return nil
}

func (m *mockIdentityService) Provider() string { return "acme-sso" }

func unlinkRequest(session *domainauth.Session) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/auth/link", nil)
	if session != nil {
		req = req.WithContext(SetSessionInContext(req.Context(), session))
	}
	return req
}

func TestLinkHandlers_Unlink_Success(t *testing.T) {
	var unlinked string
	handlers := &LinkHandlers{Svc: &mockIdentityService{
		unlinkFunc: func(_ context.Context, userID string) error {
			unlinked = userID
			return nil
		},
	}}

	w := httptest.NewRecorder()
	handlers.Unlink(w, unlinkRequest(&domainauth.Session{ID: "s1", UserID: "local-user-1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local-user-1", unlinked)
	assert.Contains(t, w.Body.String(), "acme-sso")
}

func TestLinkHandlers_Unlink_NotLinked(t *testing.T) {
	handlers := &LinkHandlers{Svc: &mockIdentityService{
		unlinkFunc: func(context.Context, string) error {
			return ports.ErrNotLinked
		},
	}}

	w := httptest.NewRecorder()
	handlers.Unlink(w, unlinkRequest(&domainauth.Session{ID: "s1", UserID: "local-user-1"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_linked")
}

func TestLinkHandlers_Unlink_NoSession(t *testing.T) {
	handlers := &LinkHandlers{Svc: &mockIdentityService{}}

	w := httptest.NewRecorder()
	handlers.Unlink(w, unlinkRequest(nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLinkHandlers_Unlink_InternalError(t *testing.T) {
	handlers := &LinkHandlers{Svc: &mockIdentityService{
		unlinkFunc: func(context.Context, string) error {
			return errors.New("redis gone")
		},
	}}

	w := httptest.NewRecorder()
	handlers.Unlink(w, unlinkRequest(&domainauth.Session{ID: "s1", UserID: "local-user-1"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unlink_failed")
}
