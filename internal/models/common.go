// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type Collection string

const (
	CollectionFeatured Collection = "featuredProducts"
	CollectionOffers   Collection = "todayOffers"
	CollectionBanners  Collection = "banners"
)

type CollectionAction string

const (
	ActionAdd    CollectionAction = "add"
	ActionRemove CollectionAction = "remove"
)

type ReconcileOutcome string

const (
	// server response adopted verbatim
	OutcomeAdopted ReconcileOutcome = "adopted"
	// mutation succeeded and the collection was refetched
	OutcomeReloaded ReconcileOutcome = "reloaded"
	// mutation failed and the collection was refetched
	OutcomeRolledBack ReconcileOutcome = "rolled_back"
	// rejected before any network call
	OutcomeRejected ReconcileOutcome = "rejected"
)
