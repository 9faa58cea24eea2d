package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargetogether/sso-bridge/internal/ports"
	"github.com/chargetogether/sso-bridge/internal/testutil"
)

func TestUserRepo_CreateAndFindByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "a@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "ann", created.Username)
	assert.Equal(t, "a@x.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepo_FindByEmailMiss(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestUserRepo_CreateUser_Conflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann2", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_CreateUser_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, ports.CreateUserInput{Username: "", Email: "a@x.com"})
	require.Error(t, err)

	_, err = repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "   "})
	require.Error(t, err)
}

func TestUserRepo_LinkedExternalID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "a@x.com"})
	require.NoError(t, err)

	// Unlinked account reports ErrNotLinked, not an empty value.
	_, err = repo.LinkedExternalID(ctx, user.ID, "chargetogether")
	assert.ErrorIs(t, err, ports.ErrNotLinked)

	err = repo.SetLinkedExternalID(ctx, ports.Mapping{
		UserID: user.ID, Provider: "chargetogether", SubjectID: "ext-1",
	})
	require.NoError(t, err)

	got, err := repo.LinkedExternalID(ctx, user.ID, "chargetogether")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", got)

	// Links are per provider.
	_, err = repo.LinkedExternalID(ctx, user.ID, "other-idp")
	assert.ErrorIs(t, err, ports.ErrNotLinked)
}

func TestUserRepo_SetLinkedExternalID_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, ports.CreateUserInput{Username: "ann", Email: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.SetLinkedExternalID(ctx, ports.Mapping{
		UserID: user.ID, Provider: "chargetogether", SubjectID: "ext-1",
	}))
	require.NoError(t, repo.SetLinkedExternalID(ctx, ports.Mapping{
		UserID: user.ID, Provider: "chargetogether", SubjectID: "ext-2",
	}))

	got, err := repo.LinkedExternalID(ctx, user.ID, "chargetogether")
	require.NoError(t, err)
	assert.Equal(t, "ext-2", got)
}
