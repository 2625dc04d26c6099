// internal/services/tokens_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": "editor",
		"exp":      expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken(" abc ").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("  ").Token(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestContextToken(t *testing.T) {
	_, err := ContextToken().Token(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	token, err := ContextToken().Token(WithToken(context.Background(), "req"))
	require.NoError(t, err)
	assert.Equal(t, "req", token)
}

func TestChainTokens(t *testing.T) {
	failing := TokenFunc(func(context.Context) (string, error) {
		return "", errors.New("store offline")
	})

	token, err := ChainTokens(nil, failing, ContextToken(), StaticToken("fallback")).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback", token)

	_, err = ChainTokens(failing, StaticToken("")).Token(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestValidatedTokens(t *testing.T) {
	ctx := context.Background()

	valid := signedToken(t, time.Now().Add(time.Hour))
	token, err := ValidatedTokens(StaticToken(valid)).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, valid, token)

	expired := signedToken(t, time.Now().Add(-time.Hour))
	_, err = ValidatedTokens(StaticToken(expired)).Token(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Contains(t, err.Error(), "expired")

	token, err = ValidatedTokens(StaticToken("opaque-token")).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)

	_, err = ValidatedTokens(StaticToken("")).Token(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequestIDFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))

	generated := RequestIDFromContext(context.Background())
	assert.Len(t, generated, 36)
}
