package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
	"github.com/yukikurage/workspace-task-api/internal/utils"
)

func setupAuthService(t *testing.T) (*AuthService, *repository.Store) {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	return NewAuthService(store), store
}

func TestAuthService_SignupCreatesDefaultWorkspace(t *testing.T) {
	ctx := context.Background()
	authService, store := setupAuthService(t)

	user, err := authService.Signup(ctx, SignupInput{Username: " alice ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	workspaces, total, err := store.Workspaces.List(ctx, user.OwnerKey(), utils.NewPaginationParams(1, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, constants.DefaultWorkspaceName, workspaces[0].Name)
	assert.True(t, workspaces[0].IsDefault)
}

func TestAuthService_SignupValidation(t *testing.T) {
	ctx := context.Background()
	authService, _ := setupAuthService(t)

	_, err := authService.Signup(ctx, SignupInput{Username: "  ", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = authService.Signup(ctx, SignupInput{Username: "bob", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = authService.Signup(ctx, SignupInput{Username: "bob", Password: "supersecret"})
	require.NoError(t, err)
	_, err = authService.Signup(ctx, SignupInput{Username: "bob", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authService, _ := setupAuthService(t)

	created, err := authService.Signup(ctx, SignupInput{Username: "carol", Password: "supersecret"})
	require.NoError(t, err)

	user, err := authService.Login(ctx, LoginInput{Username: "carol", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = authService.Login(ctx, LoginInput{Username: "carol", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authService.Login(ctx, LoginInput{Username: "nobody", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authService.GetUser(ctx, 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
