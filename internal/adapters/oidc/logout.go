package oidc

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

// LogoutNotifier tells the provider's end-session endpoint that a local
// session ended. It is strictly best-effort: local logout never waits on or
// fails because of the provider, so every outcome is logged and swallowed.
type LogoutNotifier struct {
	EndSessionURL string
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

var _ ports.LogoutNotifier = (*LogoutNotifier)(nil)

// NewLogoutNotifier creates a notifier for the given end-session endpoint.
// An empty endpoint produces a notifier that does nothing.
func NewLogoutNotifier(endSessionURL string, logger *slog.Logger) *LogoutNotifier {
	return &LogoutNotifier{
		EndSessionURL: endSessionURL,
		HTTPClient:    &http.Client{Timeout: 5 * time.Second},
		Logger:        logger,
	}
}

func (n *LogoutNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

// NotifyLogout calls the provider's end-session endpoint with the id_token
// hint. Failures are logged, never surfaced, never retried.
func (n *LogoutNotifier) NotifyLogout(ctx context.Context, idTokenHint string) {
	if n.EndSessionURL == "" {
		return
	}

	endpoint, err := url.Parse(n.EndSessionURL)
	if err != nil {
		n.logger().WarnContext(ctx, "remote logout skipped: bad end-session URL",
			"url", n.EndSessionURL, "error", err)
		return
	}
	if idTokenHint != "" {
		q := endpoint.Query()
		q.Set("id_token_hint", idTokenHint)
		endpoint.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		n.logger().WarnContext(ctx, "remote logout skipped: build request failed", "error", err)
		return
	}

	client := n.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		n.logger().WarnContext(ctx, "remote logout notification failed", "error", err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		n.logger().WarnContext(ctx, "remote logout rejected by provider",
			"status", resp.StatusCode)
		return
	}

	n.logger().DebugContext(ctx, "remote logout notified", "status", resp.StatusCode)
}
