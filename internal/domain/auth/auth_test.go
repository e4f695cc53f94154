package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse battery staple"))
	assert.Error(t, CheckPassword(hash, "wrong password"))
}

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{UserID: "user-1", Role: RoleEmployee, EmploymentStatus: StatusActive}

	token, err := GenerateToken("secret", claims, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, RoleEmployee, parsed.Role)
	assert.Equal(t, StatusActive, parsed.EmploymentStatus)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "user-1"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "user-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestReadOnlyForFormerEmployees(t *testing.T) {
	assert.True(t, UserContext{EmploymentStatus: StatusFormerEmployee}.ReadOnly())
	assert.False(t, UserContext{EmploymentStatus: StatusActive}.ReadOnly())
	assert.False(t, UserContext{EmploymentStatus: StatusOnLeave}.ReadOnly())
}
