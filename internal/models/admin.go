// internal/models/admin.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type AuditLog struct {
	BaseModel
	Collection Collection       `json:"collection" gorm:"type:varchar(32);not null;index"`
	Action     string           `json:"action" gorm:"size:64;not null;index"`
	ResourceID string           `json:"resource_id" gorm:"size:64;index"`
	Outcome    ReconcileOutcome `json:"outcome" gorm:"type:varchar(20);not null;index"`
	Error      string           `json:"error,omitempty" gorm:"type:text"`
	RequestID  string           `json:"request_id" gorm:"size:64"`
	ProductIDs pq.StringArray   `json:"product_ids" gorm:"type:text[]"`
	Details    JSONB            `json:"details" gorm:"type:jsonb"`
}

// AdminSession stores the bearer token handed out by the backend to the
// console operator.
type AdminSession struct {
	BaseModel
	Username  string     `json:"username" gorm:"size:100;not null;index"`
	Token     string     `json:"-" gorm:"type:text;not null"`
	ExpiresAt *time.Time `json:"expires_at" gorm:"index"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (s AdminSession) Active(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
