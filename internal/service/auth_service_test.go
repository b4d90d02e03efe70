package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(db)
	return NewAuthService(users), NewUserService(users, 2)
}

func TestLoginSucceeds(t *testing.T) {
	auth, users := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, validRegisterInput("ada@example.com"))
	require.NoError(t, err)

	user, err := auth.Login(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestLoginFailureIsUniform(t *testing.T) {
	auth, users := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, validRegisterInput("ada@example.com"))
	require.NoError(t, err)

	_, wrongPass := auth.Login(ctx, "ada@example.com", "wrong password")
	_, unknownEmail := auth.Login(ctx, "ghost@example.com", "correct horse battery")

	var a, b *models.AppError
	require.ErrorAs(t, wrongPass, &a)
	require.ErrorAs(t, unknownEmail, &b)
	assert.Equal(t, models.CodeUnauthorized, a.Code)
	assert.Equal(t, models.CodeUnauthorized, b.Code)
	assert.Equal(t, a.Message, b.Message)
}
