package service

import (
	"context"
	"testing"

	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "access@example.com")

	user, err := env.access.Authenticate(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)
	assert.Nil(t, user.LastLogin, "authenticating does not count as a login")

	_, err = env.access.Authenticate(ctx, registered.Token+"x")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, env.repo.SetActive(ctx, registered.User.ID, false))
	_, err = env.access.Authenticate(ctx, registered.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAccessService_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "gone@example.com")
	require.NoError(t, env.repo.Delete(ctx, registered.User.ID))

	_, err := env.access.Authenticate(ctx, registered.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 401, apperrors.ToHTTPStatus(err))
}

func TestAccessService_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plain := env.register(t, "plain@example.com")
	_, err := env.access.RequireAdmin(ctx, plain.Token)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, 403, apperrors.ToHTTPStatus(err))

	admin := env.makeAdmin(t, "boss@example.com")
	token, err := env.jwt.GenerateToken(admin.ID)
	require.NoError(t, err)

	user, err := env.access.RequireAdmin(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = env.access.RequireAdmin(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
