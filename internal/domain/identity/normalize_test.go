package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(NormalizerConfig{
		Provider:  "chargetogether",
		AdminRole: "Admin",
	})
	require.NoError(t, err)
	return n
}

func TestNewNormalizer_RequiresProvider(t *testing.T) {
	_, err := NewNormalizer(NormalizerConfig{AdminRole: "Admin"})
	require.Error(t, err)
}

func TestNewNormalizer_RejectsInvalidClaimPath(t *testing.T) {
	_, err := NewNormalizer(NormalizerConfig{
		Provider: "chargetogether",
		Paths:    ClaimPaths{Roles: "roles["},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roles")
}

func TestNormalize_FullProfile(t *testing.T) {
	n := newTestNormalizer(t)

	p, err := n.Normalize(json.RawMessage(`{
		"sub": "ext-1",
		"name": "Ann",
		"email": "a@x.com",
		"roles": ["Admin"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "chargetogether", p.Provider)
	assert.Equal(t, "ext-1", p.SubjectID)
	assert.Equal(t, "Ann", p.DisplayName)
	assert.Equal(t, "a@x.com", p.Email)
	assert.True(t, p.IsPrivileged)
}

func TestNormalize_MalformedPayload(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "truncated json", raw: `{"sub": "ext-`},
		{name: "non-object payload", raw: `["sub"]`},
		{name: "empty payload", raw: ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(json.RawMessage(tc.raw))
			assert.ErrorIs(t, err, ErrMalformedClaims)
		})
	}
}

func TestNormalize_MissingSubject(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "absent", raw: `{"email": "a@x.com"}`},
		{name: "empty string", raw: `{"sub": ""}`},
		{name: "whitespace", raw: `{"sub": "   "}`},
		{name: "non-string", raw: `{"sub": 42}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(json.RawMessage(tc.raw))
			assert.ErrorIs(t, err, ErrMissingSubject)
		})
	}
}

func TestNormalize_MissingEmailIsNotAnError(t *testing.T) {
	n := newTestNormalizer(t)

	p, err := n.Normalize(json.RawMessage(`{"sub": "ext-1", "name": "Ann"}`))
	require.NoError(t, err)
	assert.Empty(t, p.Email)
}

func TestNormalize_DisplayNameFallback(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "name present", raw: `{"sub": "ext-1", "name": "Ann", "email": "a@x.com"}`, want: "Ann"},
		{name: "email local part", raw: `{"sub": "ext-1", "email": "ann.smith@x.com"}`, want: "ann.smith"},
		{name: "subject as last resort", raw: `{"sub": "ext-1"}`, want: "ext-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := n.Normalize(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.DisplayName)
		})
	}
}

// Only the first element of the roles claim is consulted and the comparison
// is case-sensitive. This mirrors the provider contract exactly; see the
// documented quirk in DESIGN.md before changing it.
func TestNormalize_PrivilegeDerivation(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "admin first", raw: `{"sub": "s", "roles": ["Admin"]}`, want: true},
		{name: "admin not first", raw: `{"sub": "s", "roles": ["Member", "Admin"]}`, want: false},
		{name: "case sensitive", raw: `{"sub": "s", "roles": ["admin"]}`, want: false},
		{name: "no roles claim", raw: `{"sub": "s"}`, want: false},
		{name: "empty roles list", raw: `{"sub": "s", "roles": []}`, want: false},
		{name: "non-string first element", raw: `{"sub": "s", "roles": [1, "Admin"]}`, want: false},
		{name: "roles not a list", raw: `{"sub": "s", "roles": "Admin"}`, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := n.Normalize(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.IsPrivileged)
		})
	}
}

func TestNormalize_CustomClaimPaths(t *testing.T) {
	n, err := NewNormalizer(NormalizerConfig{
		Provider:  "legacy-idp",
		AdminRole: "administrators",
		Paths: ClaimPaths{
			Subject: "user.id",
			Email:   "user.contact.email",
			Roles:   "user.groups",
		},
	})
	require.NoError(t, err)

	p, err := n.Normalize(json.RawMessage(`{
		"user": {
			"id": "u-7",
			"contact": {"email": "b@y.com"},
			"groups": ["administrators", "staff"]
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "u-7", p.SubjectID)
	assert.Equal(t, "b@y.com", p.Email)
	assert.True(t, p.IsPrivileged)
	assert.Equal(t, "b", p.DisplayName)
}

func TestExportFieldName(t *testing.T) {
	assert.Equal(t, "chargetogetherId", ExportFieldName("chargetogether"))
}
