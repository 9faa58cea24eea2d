package oidc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogoutNotifier_SendsIDTokenHint(t *testing.T) {
	var calls atomic.Int32
	var gotHint atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotHint.Store(r.URL.Query().Get("id_token_hint"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewLogoutNotifier(srv.URL, nil)
	n.NotifyLogout(context.Background(), "the-id-token")

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "the-id-token", gotHint.Load())
}

func TestLogoutNotifier_FailuresAreSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Provider rejection must not panic or propagate.
	n := NewLogoutNotifier(srv.URL, nil)
	n.NotifyLogout(context.Background(), "hint")

	// Unreachable endpoint likewise.
	n = NewLogoutNotifier("http://127.0.0.1:1", nil)
	n.NotifyLogout(context.Background(), "hint")
}

func TestLogoutNotifier_EmptyEndpointIsNoop(t *testing.T) {
	n := NewLogoutNotifier("", nil)
	n.NotifyLogout(context.Background(), "hint")
}
