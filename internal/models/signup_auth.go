package models

import (
	"time"
)

// SignupAuth is a pending registration record. At most one live record exists
// per email; expired records are removed in bulk by the sweeper.
type SignupAuth struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Code         string    `gorm:"not null" json:"-"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expired reports whether the record's expiration time has passed.
func (s *SignupAuth) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
