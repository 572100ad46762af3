package entity

import (
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/enum"
)

// User represents an operator of the till or the back office
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Email        string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"size:255;not null" json:"-"`
	Role         enum.UserRole `gorm:"size:20;not null;default:cashier" json:"role"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user may manage the catalog and parties
func (u *User) IsAdmin() bool {
	return u.Role == enum.UserRoleAdmin
}
