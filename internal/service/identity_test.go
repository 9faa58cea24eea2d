package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/chargetogether/sso-bridge/internal/domain/identity"
	"github.com/chargetogether/sso-bridge/internal/domain/model"
	"github.com/chargetogether/sso-bridge/internal/mocks"
	mockidentity "github.com/chargetogether/sso-bridge/internal/mocks/identity"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

const testProvider = "acme-sso"

type identityFixture struct {
	mappings  *mockidentity.MemoryIdentityMap
	directory *mockidentity.MemoryUserDirectory
	groups    *mockidentity.RecordingGroupService
	service   *IdentityService
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	normalizer, err := identity.NewNormalizer(identity.NormalizerConfig{
		Provider:  testProvider,
		AdminRole: "admin",
	})
	require.NoError(t, err)

	f := &identityFixture{
		mappings:  mockidentity.NewMemoryIdentityMap(),
		directory: mockidentity.NewMemoryUserDirectory(),
		groups:    &mockidentity.RecordingGroupService{},
	}
	f.service = NewIdentityService(IdentityServiceOptions{
		Normalizer: normalizer,
		Mappings:   f.mappings,
		Directory:  f.directory,
		Groups:     f.groups,
		Logger:     slog.Default(),
	})
	return f
}

func claims(sub, name, email string, roles ...string) json.RawMessage {
	payload := map[string]any{"sub": sub}
	if name != "" {
		payload["name"] = name
	}
	if email != "" {
		payload["email"] = email
	}
	if roles != nil {
		payload["roles"] = roles
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return raw
}

func TestIdentityService_Login_FirstLoginCreatesAccount(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	result, err := f.service.Login(ctx, claims("ext-1", "Jane", "jane@example.com", "users"))
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.NotEmpty(t, result.UserID)
	assert.Equal(t, 1, f.directory.UserCount())

	user, ok := f.directory.UserByID(result.UserID)
	require.True(t, ok)
	assert.Equal(t, "Jane", user.Username)
	assert.Equal(t, "jane@example.com", user.Email)

	// Forward map and reverse field both point at the new account.
	mapped, err := f.mappings.Lookup(ctx, testProvider, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, result.UserID, mapped)

	subject, err := f.directory.LinkedExternalID(ctx, result.UserID, testProvider)
	require.NoError(t, err)
	assert.Equal(t, "ext-1", subject)

	assert.Empty(t, f.groups.Promoted(), "non-privileged login must not promote")
}

func TestIdentityService_Login_PrivilegedFirstLoginPromotes(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)

	result, err := f.service.Login(context.Background(), claims("ext-1", "Root", "root@example.com", "admin"))
	require.NoError(t, err)

	assert.True(t, result.Profile.IsPrivileged)
	assert.Equal(t, []string{result.UserID}, f.groups.Promoted())
}

func TestIdentityService_Login_RepeatLoginIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()
	payload := claims("ext-1", "Jane", "jane@example.com", "admin")

	first, err := f.service.Login(ctx, payload)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := f.service.Login(ctx, payload)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.False(t, second.Created)
	assert.Equal(t, 1, f.directory.UserCount())
	assert.Equal(t, 1, f.mappings.Len())
	assert.Len(t, f.groups.Promoted(), 1, "resolve path must not re-promote")
}

func TestIdentityService_Login_MergesIntoAccountWithSameEmail(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	existing := f.directory.Seed(model.User{Username: "alice", Email: "a@x.com"})

	result, err := f.service.Login(ctx, claims("ext-2", "Alice External", "a@x.com"))
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.UserID, "must merge into the account holding the email")
	assert.False(t, result.Created)
	assert.Equal(t, 1, f.directory.UserCount())

	// The pre-existing username is preserved; merging never renames.
	user, ok := f.directory.UserByID(existing.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)

	subject, err := f.directory.LinkedExternalID(ctx, existing.ID, testProvider)
	require.NoError(t, err)
	assert.Equal(t, "ext-2", subject)
}

func TestIdentityService_Login_NormalizationErrors(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, json.RawMessage(`not json`))
	assert.ErrorIs(t, err, identity.ErrMalformedClaims)

	_, err = f.service.Login(ctx, json.RawMessage(`{"name":"No Subject"}`))
	assert.ErrorIs(t, err, identity.ErrMissingSubject)

	assert.Equal(t, 0, f.directory.UserCount(), "failed normalization must not touch storage")
}

func TestIdentityService_Login_NoEmailFailsProvisioning(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)

	_, err := f.service.Login(context.Background(), claims("ext-9", "Ghost", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvisioning)
	assert.Equal(t, 0, f.directory.UserCount())
	assert.Equal(t, 0, f.mappings.Len())
}

func TestIdentityService_Login_UsernameConflictSurfacesProvisioningError(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)

	f.directory.Seed(model.User{Username: "Jane", Email: "other@example.com"})

	_, err := f.service.Login(context.Background(), claims("ext-1", "Jane", "jane@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvisioning)
	assert.ErrorIs(t, err, ports.ErrAccountConflict)
}

func TestIdentityService_Login_PromotionFailureKeepsAccountAndMapping(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()
	f.groups.Err = errors.New("group backend down")

	_, err := f.service.Login(ctx, claims("ext-1", "Root", "root@example.com", "admin"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProvisioning)

	// The partial state stands: account exists and the mapping resolves.
	assert.Equal(t, 1, f.directory.UserCount())
	userID, lookupErr := f.mappings.Lookup(ctx, testProvider, "ext-1")
	require.NoError(t, lookupErr)

	// A later login resolves through the map without failing again.
	f.groups.Err = nil
	result, err := f.service.Login(ctx, claims("ext-1", "Root", "root@example.com", "admin"))
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
}

func TestIdentityService_Login_ConcurrentFirstLoginsConverge(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	payload := claims("ext-1", "Jane", "jane@example.com")

	const logins = 8
	results := make([]*LoginResult, logins)

	var g errgroup.Group
	for i := 0; i < logins; i++ {
		g.Go(func() error {
			result, err := f.service.Login(context.Background(), payload)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Every login lands on the same user id and only one mapping exists.
	// Note: accounts created by race losers are merged away here because
	// every racer carries the same email; the winner's account absorbs all.
	winner := results[0].UserID
	for _, r := range results {
		assert.Equal(t, winner, r.UserID)
	}
	assert.Equal(t, 1, f.mappings.Len())
}

func TestIdentityService_Login_AdoptsRaceWinnerOnLinkConflict(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	normalizer, err := identity.NewNormalizer(identity.NormalizerConfig{
		Provider:  testProvider,
		AdminRole: "admin",
	})
	require.NoError(t, err)

	mapMock := mocks.NewMockIdentityMap(ctrl)
	directory := mocks.NewMockUserDirectory(ctrl)
	groups := mocks.NewMockGroupService(ctrl)

	ctx := context.Background()
	gomock.InOrder(
		mapMock.EXPECT().Lookup(ctx, testProvider, "ext-1").Return("", ports.ErrMappingNotFound),
		directory.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, ports.ErrUserNotFound),
		directory.EXPECT().CreateUser(ctx, gomock.Any()).Return(&model.User{ID: "loser-id"}, nil),
		directory.EXPECT().SetLinkedExternalID(ctx, gomock.Any()).Return(nil),
		mapMock.EXPECT().Put(ctx, gomock.Any()).Return(ports.ErrAlreadyLinked),
		// Exactly one re-resolve; the winner's id is adopted.
		mapMock.EXPECT().Lookup(ctx, testProvider, "ext-1").Return("winner-id", nil),
	)

	service := NewIdentityService(IdentityServiceOptions{
		Normalizer: normalizer,
		Mappings:   mapMock,
		Directory:  directory,
		Groups:     groups,
	})

	result, err := service.Login(ctx, claims("ext-1", "Jane", "jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "winner-id", result.UserID)
	assert.False(t, result.Created)
}

func TestIdentityService_Login_ReResolveFailureAfterRaceSurfaces(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	normalizer, err := identity.NewNormalizer(identity.NormalizerConfig{Provider: testProvider, AdminRole: "admin"})
	require.NoError(t, err)

	mapMock := mocks.NewMockIdentityMap(ctrl)
	directory := mocks.NewMockUserDirectory(ctrl)

	ctx := context.Background()
	boom := fmt.Errorf("redis gone")
	gomock.InOrder(
		mapMock.EXPECT().Lookup(ctx, testProvider, "ext-1").Return("", ports.ErrMappingNotFound),
		directory.EXPECT().FindByEmail(ctx, "jane@example.com").Return(&model.User{ID: "uid-1", Email: "jane@example.com"}, nil),
		directory.EXPECT().SetLinkedExternalID(ctx, gomock.Any()).Return(nil),
		mapMock.EXPECT().Put(ctx, gomock.Any()).Return(ports.ErrAlreadyLinked),
		mapMock.EXPECT().Lookup(ctx, testProvider, "ext-1").Return("", boom),
	)

	service := NewIdentityService(IdentityServiceOptions{
		Normalizer: normalizer,
		Mappings:   mapMock,
		Directory:  directory,
		Groups:     mocks.NewMockGroupService(ctrl),
	})

	_, err = service.Login(ctx, claims("ext-1", "Jane", "jane@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestIdentityService_Authenticate_ReturnsUserID(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	userID, err := f.service.Authenticate(ctx, claims("ext-1", "Jane", "jane@example.com"))
	require.NoError(t, err)

	mapped, err := f.mappings.Lookup(ctx, testProvider, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, mapped, userID)
}

func TestIdentityService_Unlink(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	result, err := f.service.Login(ctx, claims("ext-1", "Jane", "jane@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.service.Unlink(ctx, result.UserID))

	// Mapping is gone; the account itself survives.
	_, err = f.mappings.Lookup(ctx, testProvider, "ext-1")
	assert.ErrorIs(t, err, ports.ErrMappingNotFound)
	assert.Equal(t, 1, f.directory.UserCount())

	// A later login for the same subject re-links to a fresh resolution.
	relinked, err := f.service.Login(ctx, claims("ext-1", "Jane", "jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, result.UserID, relinked.UserID, "email merge re-links the same account")
}

func TestIdentityService_Unlink_NeverLinked(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)

	user := f.directory.Seed(model.User{Username: "bob", Email: "bob@example.com"})

	err := f.service.Unlink(context.Background(), user.ID)
	assert.ErrorIs(t, err, ports.ErrNotLinked)
}

func TestIdentityService_Unlink_ToleratesAbsentMapEntry(t *testing.T) {
	t.Parallel()
	f := newIdentityFixture(t)
	ctx := context.Background()

	user := f.directory.Seed(model.User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, f.directory.SetLinkedExternalID(ctx, ports.Mapping{
		Provider:  testProvider,
		SubjectID: "ext-5",
		UserID:    user.ID,
	}))

	// Reverse field present, forward entry never written. Unlink settles on
	// the already-unlinked end state instead of failing.
	assert.NoError(t, f.service.Unlink(ctx, user.ID))
}
