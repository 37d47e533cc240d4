package auth

import (
	"time"
)

// Session maps a bearer cookie value to a user until expiry or logout
type Session struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionTTL is fixed at creation time; sessions are never refreshed
const SessionTTL = 30 * 24 * time.Hour
