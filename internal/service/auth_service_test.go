package service_test

import (
	"testing"

	"github.com/marekkaras/budget-backend/internal/models"
	"github.com/marekkaras/budget-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndDuplicate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.CreateUser(&service.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "password",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.Disabled)
	assert.NotEqual(t, "password", user.HashedPassword)

	_, err = env.auth.CreateUser(&service.CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestPublicViewHidesHash(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	view := user.PublicView()
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "alice@example.com", view.Email)
}

func TestLoginAndValidateToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	token, err := env.auth.Login(&service.LoginRequest{Username: "alice", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Contains(t, token.AccessToken, "ey")

	claims, err := env.auth.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	user, err := env.auth.CurrentUser(claims)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.auth.Login(&service.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.auth.Login(&service.LoginRequest{Username: "nobody", Password: "password"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestCurrentUserDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	token, err := env.auth.Login(&service.LoginRequest{Username: "alice", Password: "password"})
	require.NoError(t, err)
	claims, err := env.auth.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	// Disable the account after the token was issued
	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "alice").Update("disabled", true).Error)

	_, err = env.auth.CurrentUser(claims)
	assert.ErrorIs(t, err, service.ErrUserDisabled)
}

func TestListUsersInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")
	env.createUser(t, "bob")
	env.createUser(t, "carol")

	users, err := env.auth.ListUsers(0, 100)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[2].Username)

	page, err := env.auth.ListUsers(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].Username)
}
