package mandalart

import (
	"errors"

	"gorm.io/gorm"
)

// MandalartRepository defines the interface for mandalart data access
type MandalartRepository interface {
	ListByUser(userID string, year string) ([]Mandalart, error)
	FindByIDAndUser(id, userID string) (*Mandalart, error)
	FindByUserAndYear(userID, year string) (*Mandalart, error)
	ExistsByID(id string) (bool, error)
	Create(m *Mandalart) error
	Update(m *Mandalart) error
	DeleteByIDAndUser(id, userID string) error
}

// MandalartRepositoryImpl implements MandalartRepository
type MandalartRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new mandalart repository
func NewRepository(db *gorm.DB) MandalartRepository {
	return &MandalartRepositoryImpl{db: db}
}

// ListByUser returns a user's documents, newest created first.
// An empty year means no year filter.
func (r *MandalartRepositoryImpl) ListByUser(userID string, year string) ([]Mandalart, error) {
	query := r.db.Where("user_id = ?", userID)
	if year != "" {
		query = query.Where("year = ?", year)
	}

	var documents []Mandalart
	err := query.Order("created_at DESC").Find(&documents).Error
	return documents, err
}

// FindByIDAndUser finds a document by id, scoped to its owner
func (r *MandalartRepositoryImpl) FindByIDAndUser(id, userID string) (*Mandalart, error) {
	var m Mandalart
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByUserAndYear finds a document by the natural (user, year) key
func (r *MandalartRepositoryImpl) FindByUserAndYear(userID, year string) (*Mandalart, error) {
	var m Mandalart
	err := r.db.Where("user_id = ? AND year = ?", userID, year).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsByID reports whether any user's document carries this id
func (r *MandalartRepositoryImpl) ExistsByID(id string) (bool, error) {
	var count int64
	err := r.db.Model(&Mandalart{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new document row
func (r *MandalartRepositoryImpl) Create(m *Mandalart) error {
	return r.db.Create(m).Error
}

// Update saves all fields of an existing row
func (r *MandalartRepositoryImpl) Update(m *Mandalart) error {
	return r.db.Save(m).Error
}

// DeleteByIDAndUser deletes a document only if owned; absent rows are a no-op
func (r *MandalartRepositoryImpl) DeleteByIDAndUser(id, userID string) error {
	err := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Mandalart{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
