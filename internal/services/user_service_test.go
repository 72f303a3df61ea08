package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jwtService := auth.NewJWTService("secret", time.Hour)
	svc := NewUserService(s.users, jwtService)

	user, err := svc.Register(ctx, RegisterInput{
		Email:    " Shop@Example.com ",
		Password: "hunter22",
		IsVendor: true,
		ShopName: "Corner Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", user.Email)
	assert.Equal(t, "shop@example.com", user.Username)
	assert.True(t, user.IsVendor())
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Email: "shop@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	result, err := svc.Login(ctx, "SHOP@example.com", "hunter22")
	require.NoError(t, err)
	assert.True(t, result.IsStaff)
	assert.Equal(t, "shop@example.com", result.Username)

	claims, err := jwtService.Validate(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsStaff)

	_, err = svc.Login(ctx, "shop@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	found, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", found.ShopName)

	_, err = svc.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_VendorNeedsShopName(t *testing.T) {
	s := newStore(t)
	svc := NewUserService(s.users, auth.NewJWTService("secret", time.Hour))

	_, err := svc.Register(context.Background(), RegisterInput{Email: "v@example.com", Password: "pw", IsVendor: true})
	assert.ErrorIs(t, err, ErrShopNameRequired)
}
