// internal/services/session_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/abinexis/homepage-admin/internal/database"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/utils"
)

// SessionStore keeps the operator's backend token in the database so the
// console survives restarts. It is a TokenProvider.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
	log *logrus.Entry
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{
		db:  db,
		now: time.Now,
		log: logrus.WithField("component", "session_store"),
	}
}

// Token returns the newest active session token.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func (s *SessionStore) Current(ctx context.Context) (*models.AdminSession, error) {
	var session models.AdminSession
	err := s.db.WithContext(ctx).
		Where("revoked_at IS NULL").
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin session: %w", err)
	}
	return &session, nil
}

// Save stores token as the only active session. The username and expiry
// are read from the token's claims when it is a JWT.
func (s *SessionStore) Save(ctx context.Context, token string) (*models.AdminSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session := &models.AdminSession{Token: token, Username: "admin"}
	if username, err := utils.TokenSubject(token); err == nil {
		session.Username = username
	}
	if expiresAt, ok := utils.TokenExpiry(token); ok {
		if !expiresAt.After(s.now()) {
			return nil, fmt.Errorf("%w: token expired at %s", ErrUnauthenticated, expiresAt.Format(time.RFC3339))
		}
		session.ExpiresAt = &expiresAt
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := revokeActive(tx, s.now()); err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save admin session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"username":    session.Username,
		"fingerprint": utils.Fingerprint(token),
	}).Info("Admin session saved")
	return session, nil
}

// Revoke ends every active session.
func (s *SessionStore) Revoke(ctx context.Context) error {
	if err := revokeActive(s.db.WithContext(ctx), s.now()); err != nil {
		return fmt.Errorf("failed to revoke admin sessions: %w", err)
	}
	s.log.Info("Admin sessions revoked")
	return nil
}

func revokeActive(tx *gorm.DB, now time.Time) error {
	return tx.Model(&models.AdminSession{}).
		Where("revoked_at IS NULL").
		Update("revoked_at", now).Error
}
