package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestIssuerFromDiscoveryURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full discovery url",
			in:   "https://idp.example.com/.well-known/openid-configuration",
			want: "https://idp.example.com",
		},
		{
			name: "trailing slash",
			in:   "https://idp.example.com/",
			want: "https://idp.example.com",
		},
		{
			name: "bare issuer",
			in:   "https://idp.example.com",
			want: "https://idp.example.com",
		},
		{
			name: "issuer with path",
			in:   "https://idp.example.com/oauth2/.well-known/openid-configuration",
			want: "https://idp.example.com/oauth2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IssuerFromDiscoveryURL(tc.in))
		})
	}
}

func TestIDTokenFromToken(t *testing.T) {
	t.Run("nil token", func(t *testing.T) {
		_, err := IDTokenFromToken(nil)
		require.Error(t, err)
	})

	t.Run("missing id_token", func(t *testing.T) {
		_, err := IDTokenFromToken(&oauth2.Token{AccessToken: "at"})
		require.Error(t, err)
	})

	t.Run("present", func(t *testing.T) {
		tok := (&oauth2.Token{AccessToken: "at"}).WithExtra(map[string]any{"id_token": "raw-id-token"})
		got, err := IDTokenFromToken(tok)
		require.NoError(t, err)
		assert.Equal(t, "raw-id-token", got)
	})
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := generateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s1, 32)

	s2, err := generateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)

	empty, err := generateRandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewProvider_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
	}{
		{name: "missing client id", cfg: ProviderConfig{ClientSecret: "s", RedirectURL: "r", DiscoveryURL: "d"}},
		{name: "missing client secret", cfg: ProviderConfig{ClientID: "c", RedirectURL: "r", DiscoveryURL: "d"}},
		{name: "missing redirect url", cfg: ProviderConfig{ClientID: "c", ClientSecret: "s", DiscoveryURL: "d"}},
		{name: "missing discovery url", cfg: ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProvider(tc.cfg)
			require.Error(t, err)
		})
	}
}
