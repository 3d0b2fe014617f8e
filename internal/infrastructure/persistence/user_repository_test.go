package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newUser := func(t *testing.T, name, email string, role identity.Role) *identity.User {
		t.Helper()
		user, err := identity.NewUser(name, email, "secret-password", role)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))
		return user
	}

	t.Run("saves and finds by id", func(t *testing.T) {
		user := newUser(t, "Priya Sharma", "priya@greenmeadows.in", identity.RoleTreasurer)

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Priya Sharma", found.Name)
		assert.Equal(t, identity.RoleTreasurer, found.Role)
		assert.True(t, found.CheckPassword("secret-password"))
	})

	t.Run("finds by email case insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "PRIYA@greenmeadows.in")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "priya@greenmeadows.in", found.Email)
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.FindByEmail(ctx, "nobody@greenmeadows.in")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "priya@greenmeadows.in")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@greenmeadows.in")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup, err := identity.NewUser("Impostor", "priya@greenmeadows.in", "other-password", identity.RoleResident)
		require.NoError(t, err)

		err = repo.Save(ctx, dup)
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, "CONFLICT"))
	})

	t.Run("lists society members ordered by name", func(t *testing.T) {
		soc := seedSociety(t, db)

		rahul := newUser(t, "Rahul Verma", "rahul@greenmeadows.in", identity.RoleResident)
		rahul.AttachToSociety(soc.ID, nil)
		require.NoError(t, repo.Save(ctx, rahul))

		anita := newUser(t, "Anita Desai", "anita@greenmeadows.in", identity.RoleCommittee)
		anita.AttachToSociety(soc.ID, nil)
		require.NoError(t, repo.Save(ctx, anita))

		members, err := repo.FindBySociety(ctx, soc.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "Anita Desai", members[0].Name)
		assert.Equal(t, "Rahul Verma", members[1].Name)
	})

	t.Run("deletes", func(t *testing.T) {
		user := newUser(t, "Temp User", "temp@greenmeadows.in", identity.RoleResident)
		require.NoError(t, repo.Delete(ctx, user.ID))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
