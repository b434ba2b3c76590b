package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "pokehub-test",
		Duration: time.Hour,
	}

	u := &User{
		ID:           "user-1",
		Username:     "ash",
		Email:        "ash@example.com",
		TokenVersion: 3,
	}

	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ash", claims.Username)
	assert.Equal(t, "ash@example.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "pokehub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("right"), Issuer: "pokehub", Duration: time.Hour}
	token, _, err := ts.Sign(&User{ID: "user-1"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("wrong"), Issuer: "pokehub", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("secret"), Issuer: "pokehub", Duration: -time.Minute}
	token, _, err := ts.Sign(&User{ID: "user-1"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}
