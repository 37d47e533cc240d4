package auth

import "gorm.io/gorm"

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(session *Session) error
	FindByID(id string) (*Session, error)
	DeleteByID(id string) error
}

// SessionRepositoryImpl implements SessionRepository
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create creates a new session
func (r *SessionRepositoryImpl) Create(session *Session) error {
	return r.db.Create(session).Error
}

// FindByID finds a session by ID
func (r *SessionRepositoryImpl) FindByID(id string) (*Session, error) {
	var session Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByID deletes a session; deleting a missing row is not an error
func (r *SessionRepositoryImpl) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&Session{}).Error
}
