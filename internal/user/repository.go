package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *User) error
	FindByGoogleID(googleID string) (*User, error)
	FindByID(id string) (*User, error)
	UpdateProfile(id, email, name, picture string) error
}

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.db.Create(user).Error
}

// FindByGoogleID finds a user by the identity provider's id
func (r *UserRepositoryImpl) FindByGoogleID(googleID string) (*User, error) {
	var user User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *UserRepositoryImpl) FindByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites the provider-supplied profile fields
func (r *UserRepositoryImpl) UpdateProfile(id, email, name, picture string) error {
	return r.db.Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"email":   email,
		"name":    name,
		"picture": picture,
	}).Error
}
