package api_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/courtworks/jis-api/api"
)

var testSecret = []byte("test-secret")

func TestIssueAndResolveToken(t *testing.T) {
	token, err := api.IssueToken("user-123", testSecret)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := api.ResolveToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestResolveTokenWrongSecret(t *testing.T) {
	token, err := api.IssueToken("user-123", testSecret)
	assert.NoError(t, err)

	_, err = api.ResolveToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, api.ErrInvalidToken)
}

func TestResolveTokenMalformed(t *testing.T) {
	_, err := api.ResolveToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, api.ErrInvalidToken)
}

func TestResolveTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "user-123",
		"iat": time.Now().Add(-48 * time.Hour).Unix(),
		"exp": time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	assert.NoError(t, err)

	_, err = api.ResolveToken(expired, testSecret)
	assert.ErrorIs(t, err, api.ErrTokenExpired)
}

func TestResolveTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	assert.NoError(t, err)

	_, err = api.ResolveToken(token, testSecret)
	assert.ErrorIs(t, err, api.ErrInvalidToken)
}
