// internal/services/tokens.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abinexis/homepage-admin/internal/utils"
)

// TokenProvider supplies the bearer token used on mutating backend calls.
// Implementations return ErrUnauthenticated when no token is available.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

func StaticToken(token string) TokenProvider {
	token = strings.TrimSpace(token)
	return TokenFunc(func(context.Context) (string, error) {
		if token == "" {
			return "", ErrUnauthenticated
		}
		return token, nil
	})
}

type tokenKey struct{}

// WithToken attaches a caller supplied token to ctx; ContextToken reads it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func ContextToken() TokenProvider {
	return TokenFunc(func(ctx context.Context) (string, error) {
		if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
			return token, nil
		}
		return "", ErrUnauthenticated
	})
}

// ChainTokens returns the first token any provider yields.
func ChainTokens(providers ...TokenProvider) TokenProvider {
	return TokenFunc(func(ctx context.Context) (string, error) {
		for _, p := range providers {
			if p == nil {
				continue
			}
			token, err := p.Token(ctx)
			if err == nil && token != "" {
				return token, nil
			}
			if err != nil && !errors.Is(err, ErrUnauthenticated) {
				logrus.WithError(err).Warn("Token provider failed")
			}
		}
		return "", ErrUnauthenticated
	})
}

// ValidatedTokens rejects JWTs whose exp claim has passed so the editor
// aborts before calling the backend. Opaque tokens are passed through.
func ValidatedTokens(p TokenProvider) TokenProvider {
	return validatedTokens{provider: p, now: time.Now}
}

type validatedTokens struct {
	provider TokenProvider
	now      func() time.Time
}

func (v validatedTokens) Token(ctx context.Context) (string, error) {
	token, err := v.provider.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrUnauthenticated
	}

	expiresAt, ok := utils.TokenExpiry(token)
	if ok && !expiresAt.After(v.now()) {
		return "", fmt.Errorf("%w: token expired at %s", ErrUnauthenticated, expiresAt.Format(time.RFC3339))
	}
	return token, nil
}
