package mandalart

import (
	"time"
)

// Mandalart is one user's saved grid for one year. The steady state is at most
// one row per (user, year); that is enforced by the save operation, not the schema.
type Mandalart struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index:idx_mandalart_user_year"`
	Year       string `gorm:"index:idx_mandalart_user_year"`
	Title      string
	Keyword    string
	Commitment string
	Cells      string // serialized grid
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
