package database

import (
	"context"
	"testing"
	"time"

	"items-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	name := "User " + email
	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		PasswordHash: "hash",
		DisplayName:  &name,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestCreateUser_EmailIsCaseInsensitive(t *testing.T) {
	user := createTestUser(t, "Mixed.Case@Example.com")
	require.Equal(t, "mixed.case@example.com", user.Email)

	_, err := testStore.CreateUser(context.Background(), CreateUserParams{Email: "MIXED.CASE@example.COM", PasswordHash: "x"})
	require.ErrorIs(t, err, ErrEmailTaken)

	found, err := testStore.GetUserByEmail(context.Background(), "mixed.CASE@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)
}

func TestGetUser_Missing(t *testing.T) {
	user, err := testStore.GetUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = testStore.GetUserByID(context.Background(), -1)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	user := createTestUser(t, "patch@example.com")
	avatar := "https://cdn.example.com/a.png"

	updated, err := testStore.UpdateUser(context.Background(), user.ID, UserPatch{AvatarURL: &avatar})
	require.NoError(t, err)
	require.Equal(t, avatar, *updated.AvatarURL)
	require.Equal(t, *user.DisplayName, *updated.DisplayName, "display name should be untouched")
	require.Equal(t, user.Email, updated.Email)

	other := createTestUser(t, "taken@example.com")
	_, err = testStore.UpdateUser(context.Background(), user.ID, UserPatch{Email: &other.Email})
	require.ErrorIs(t, err, ErrEmailTaken)

	missing, err := testStore.UpdateUser(context.Background(), -1, UserPatch{AvatarURL: &avatar})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUpdateUserPasswordAndLastLogin(t *testing.T) {
	user := createTestUser(t, "password@example.com")
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, testStore.UpdateUserPassword(context.Background(), user.ID, "new-hash"))
	require.NoError(t, testStore.TouchLastLogin(context.Background(), user.ID, now))

	found, err := testStore.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", found.PasswordHash)
	require.NotNil(t, found.LastLogin)
	require.WithinDuration(t, now, *found.LastLogin, time.Millisecond)
}

func TestDeleteUser_Cascades(t *testing.T) {
	user := createTestUser(t, "cascade@example.com")
	item := createTestItem(t, "cascade-item-00000001", &user.ID)
	createTestUpload(t, user.ID, item.ID, "cascade-upload-0000001")
	_, err := testStore.CreateSession(context.Background(), CreateSessionParams{
		UserID: user.ID, TokenID: "cascade-token", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	deleted, err := testStore.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	gone, err := testStore.GetItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	count, err := testStore.CountSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	uploads, err := testStore.ListUploadsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, uploads)
}
