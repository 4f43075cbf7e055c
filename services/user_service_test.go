package services

import (
	"context"
	"testing"

	"autocatalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t), zap.NewNop())

	user, err := svc.CreateUser(ctx, " Test@API.com ", "123", false)
	require.NoError(t, err)
	assert.Equal(t, "test@api.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "123", user.HashedPassword)

	_, err = svc.CreateUser(ctx, "test@api.com", "456", false)
	assert.True(t, IsAlreadyExists(err))

	require.NoError(t, svc.EnsureUser(ctx, "test@api.com", "456", false), "existing user is not an error")

	got, err := svc.Authenticate(ctx, "test@api.com", "123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "test@api.com", "456")
	assert.ErrorIs(t, err, ErrBadCredentials, "EnsureUser must not overwrite the password")

	_, err = svc.Authenticate(ctx, "nobody@api.com", "123")
	assert.ErrorIs(t, err, ErrBadCredentials)

	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@api.com", got.Email)

	_, err = svc.Get(ctx, 999)
	assert.True(t, IsNotFound(err))

	_, err = svc.CreateUser(ctx, "", "x", false)
	assert.True(t, IsValidation(err))
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t), zap.NewNop())

	user, err := svc.CreateUser(ctx, "test@api.com", "123", false)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "other@api.com", "123", false)
	require.NoError(t, err)

	// flags are ignored on self-service updates
	got, err := svc.Update(ctx, user.ID, models.UserUpdate{
		Email:       ptr(" New@API.com"),
		Password:    ptr("456"),
		IsSuperuser: ptr(true),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "new@api.com", got.Email)
	assert.False(t, got.IsSuperuser)

	_, err = svc.Authenticate(ctx, "new@api.com", "456")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "new@api.com", "123")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Update(ctx, user.ID, models.UserUpdate{Email: ptr("other@api.com")}, false)
	assert.True(t, IsAlreadyExists(err))

	got, err = svc.Update(ctx, user.ID, models.UserUpdate{IsSuperuser: ptr(true), IsActive: ptr(false)}, true)
	require.NoError(t, err)
	assert.True(t, got.IsSuperuser)
	assert.False(t, got.IsActive)

	_, err = svc.Authenticate(ctx, "new@api.com", "456")
	assert.ErrorIs(t, err, ErrBadCredentials, "inactive users cannot log in")

	_, err = svc.Update(ctx, 999, models.UserUpdate{Password: ptr("x")}, true)
	assert.True(t, IsNotFound(err))

	_, err = svc.Update(ctx, user.ID, models.UserUpdate{Password: ptr("")}, false)
	assert.True(t, IsValidation(err))
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestStore(t), zap.NewNop())

	user, err := svc.CreateUser(ctx, "test@api.com", "123", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(svc.Delete(ctx, user.ID)))
}
