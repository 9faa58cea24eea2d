package devauth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	require.Error(t, err)

	_, err = NewProvider(Config{Subject: "dev-1"})
	require.Error(t, err)
}

func TestProvider_Begin(t *testing.T) {
	p, err := NewProvider(Config{Subject: "dev-1", Email: "dev@example.com"})
	require.NoError(t, err)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(authURL, "/auth/callback?code=dev&state="))
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)
	assert.Contains(t, authURL, state)
}

func TestProvider_ExchangeReturnsConfiguredClaims(t *testing.T) {
	p, err := NewProvider(Config{
		Subject: "dev-1",
		Name:    "Dev User",
		Email:   "dev@example.com",
		Roles:   []string{"Admin"},
	})
	require.NoError(t, err)

	res, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "dev"})
	require.NoError(t, err)
	require.False(t, res.ExpiresAt.IsZero())

	var claims map[string]any
	require.NoError(t, json.Unmarshal(res.RawClaims, &claims))
	assert.Equal(t, "dev-1", claims["sub"])
	assert.Equal(t, "Dev User", claims["name"])
	assert.Equal(t, "dev@example.com", claims["email"])
	assert.Equal(t, []any{"Admin"}, claims["roles"])
}
