package user

import (
	"time"
)

// User represents an account created from a Google identity
type User struct {
	ID        string `gorm:"primaryKey"`
	GoogleID  string `gorm:"uniqueIndex"`
	Email     string
	Name      string
	Picture   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SafeUser is the representation exposed over the API
type SafeUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
}
