package logic

import (
	"testing"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthLogic(t *testing.T) (*AuthLogic, func() *AuthLogic) {
	db := testDB(t)
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1}
	return NewAuthLogic(db, cfg), func() *AuthLogic {
		return NewAuthLogic(db, config.AuthConfig{JWTSecret: "other-secret"})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := testAuthLogic(t)

	user, err := auth.Register("sam@example.com", "supersecret", "Sam", model.UserRoleClient)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", user.PasswordHash, "password must be hashed")

	token, loggedIn, err := auth.Login("sam@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.Id, loggedIn.Id)

	userId, role, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, userId)
	assert.Equal(t, model.UserRoleClient, role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := testAuthLogic(t)

	_, err := auth.Register("sam@example.com", "supersecret", "Sam", "")
	require.NoError(t, err)

	_, err = auth.Register("sam@example.com", "differentpw", "Sam Again", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := testAuthLogic(t)

	_, err := auth.Register("", "supersecret", "Sam", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register("sam@example.com", "short", "Sam", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register("sam@example.com", "supersecret", "Sam", "admin")
	assert.ErrorIs(t, err, ErrValidation, "admin accounts are not self-service")
}

func TestLoginSameErrorForUnknownAndWrongPassword(t *testing.T) {
	auth, _ := testAuthLogic(t)
	_, err := auth.Register("sam@example.com", "supersecret", "Sam", "")
	require.NoError(t, err)

	_, _, errUnknown := auth.Login("nobody@example.com", "supersecret")
	_, _, errWrongPw := auth.Login("sam@example.com", "wrongpassword")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error(), "responses must not leak which emails exist")
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	auth, otherSecret := testAuthLogic(t)
	user, err := auth.Register("sam@example.com", "supersecret", "Sam", "")
	require.NoError(t, err)

	forged, err := otherSecret().IssueToken(user)
	require.NoError(t, err)

	_, _, err = auth.ParseToken(forged)
	assert.Error(t, err)
}
