package service

import (
	"assessment_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")
	assert.NotEqual(t, "secret123", u.PasswordHash)

	_, err := f.auth.Register(ctx, RegisterReq{Name: "alice", Password: "another1"}, false)
	assert.ErrorIs(t, err, util.ErrUserNameTaken)

	token, logged, err := f.auth.Login(ctx, LoginReq{Name: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	_, _, err = f.auth.Login(ctx, LoginReq{Name: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, LoginReq{Name: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuth_VerifyClaims(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.auth.Register(ctx, RegisterReq{Name: "root", Password: "secret123"}, true)
	require.NoError(t, err)
	alice := f.user(t, "alice")

	_, err = f.auth.VerifyClaims(ctx, &util.Claims{UserID: alice.ID, Name: "alice"})
	assert.NoError(t, err)

	_, err = f.auth.VerifyClaims(ctx, &util.Claims{UserID: alice.ID, Name: "alice", IsAdmin: true})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.users.ToggleBlock(ctx, admin.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.auth.VerifyClaims(ctx, &util.Claims{UserID: alice.ID, Name: "alice"})
	assert.ErrorIs(t, err, util.ErrUserBlocked)
	_, _, err = f.auth.Login(ctx, LoginReq{Name: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, util.ErrUserBlocked)

	require.NoError(t, f.users.DeleteUser(ctx, admin.ID, alice.ID))
	_, err = f.auth.VerifyClaims(ctx, &util.Claims{UserID: alice.ID, Name: "alice"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUsers_CannotModifySelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.auth.Register(ctx, RegisterReq{Name: "root", Password: "secret123"}, true)
	require.NoError(t, err)

	_, err = f.users.ToggleBlock(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, util.ErrCannotModifySelf)
	assert.ErrorIs(t, f.users.DeleteUser(ctx, admin.ID, admin.ID), util.ErrCannotModifySelf)
}

func TestUsers_ToggleBlockTwiceUnblocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.auth.Register(ctx, RegisterReq{Name: "root", Password: "secret123"}, true)
	require.NoError(t, err)
	alice := f.user(t, "alice")

	u, err := f.users.ToggleBlock(ctx, admin.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, u.IsBlocked)
	u, err = f.users.ToggleBlock(ctx, admin.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, u.IsBlocked)

	_, err = f.users.ToggleBlock(ctx, admin.ID, 404)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeleteUser_RemovesResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.auth.Register(ctx, RegisterReq{Name: "root", Password: "secret123"}, true)
	require.NoError(t, err)
	alice := f.user(t, "alice")
	cat := f.category(t, "Math")
	quiz := f.quiz(t, cat.ID, "Warmup")
	f.submit(t, quiz.ID, alice.ID)

	require.NoError(t, f.users.DeleteUser(ctx, admin.ID, alice.ID))
	results, err := f.results.ListResultsForTest(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}
