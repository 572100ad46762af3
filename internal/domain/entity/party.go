package entity

import (
	"strings"
	"time"

	"github.com/sangkips/billmaster-api/pkg/apperror"
)

// Customer represents a buyer account selectable at the till
type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerCode int       `gorm:"uniqueIndex;not null" json:"customerCode"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	Phone        string    `gorm:"size:50" json:"phone,omitempty"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	GSTIN        string    `gorm:"size:20" json:"gstin,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Validate checks the fields every customer needs
func (c *Customer) Validate() []apperror.FieldError {
	if strings.TrimSpace(c.Name) == "" {
		return []apperror.FieldError{{Field: "name", Message: "name is required"}}
	}
	return nil
}

// Supplier represents a vendor stock is purchased from
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	GSTIN     string    `gorm:"size:20" json:"gstin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// Validate checks the fields every supplier needs
func (s *Supplier) Validate() []apperror.FieldError {
	if strings.TrimSpace(s.Name) == "" {
		return []apperror.FieldError{{Field: "name", Message: "name is required"}}
	}
	return nil
}
