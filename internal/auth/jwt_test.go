package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmanager/internal/database"
)

func testUser() *database.User {
	return &database.User{
		ID:        42,
		Email:     "admin@example.com",
		FirstName: "Ada",
		LastName:  "Admin",
		Role:      database.RoleAdmin,
		IsActive:  true,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", 7)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "Ada Admin", claims.Name)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Admin", claims.LastName)
	assert.Equal(t, "Admin", claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("secret"), validity: -time.Hour}

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret", 7).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", 7).Verify(token)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", 7)

	for _, token := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		_, err := issuer.Verify(token)
		assert.Error(t, err, "token %q", token)
	}
}
