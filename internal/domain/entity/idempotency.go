package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key          string    `gorm:"uniqueIndex;size:255;not null" json:"key"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`
	RequestHash  string    `gorm:"size:64" json:"requestHash"`
	ResponseCode int       `gorm:"not null" json:"responseCode"`
	ResponseBody string    `gorm:"type:text" json:"responseBody"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expiresAt"`
}

// BeforeCreate generates a UUID before creating a new key row
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
