package auth

import (
	"context"
	defError "errors"
	"time"

	"mandalart/internal/errors"
	"mandalart/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the authentication business logic
type Service interface {
	AuthorizationURL(origin string) (authURL string, state string, err error)
	ExchangeCodeForSession(ctx context.Context, code, origin string) (*user.User, string, error)
	ResolveSession(sessionID string) (string, error)
	CurrentUser(sessionID string) (*user.User, error)
	EndSession(sessionID string) error
}

// DefaultService implements Service
type DefaultService struct {
	provider    Provider
	users       user.UserRepository
	sessions    SessionRepository
	stateSecret string
}

// NewService creates a new auth service
func NewService(provider Provider, users user.UserRepository, sessions SessionRepository, stateSecret string) Service {
	return &DefaultService{
		provider:    provider,
		users:       users,
		sessions:    sessions,
		stateSecret: stateSecret,
	}
}

// AuthorizationURL builds the provider consent URL with a fresh signed state
func (s *DefaultService) AuthorizationURL(origin string) (string, string, error) {
	state, err := GenerateState(s.stateSecret)
	if err != nil {
		return "", "", errors.ErrInternalServer(err)
	}
	return s.provider.AuthorizationURL(origin, state), state, nil
}

// ExchangeCodeForSession completes the OAuth exchange, upserts the user and
// issues a session. Nothing is written until both upstream calls succeed.
func (s *DefaultService) ExchangeCodeForSession(ctx context.Context, code, origin string) (*user.User, string, error) {
	profile, err := s.provider.ExchangeCode(ctx, code, origin)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.FindByGoogleID(profile.ID)
	if err != nil {
		if !defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
		// First login for this identity
		u = &user.User{
			GoogleID: profile.ID,
			Email:    profile.Email,
			Name:     profile.Name,
			Picture:  profile.Picture,
		}
		if err := s.users.Create(u); err != nil {
			return nil, "", err
		}
	} else {
		// Last write wins: the provider's current profile overwrites ours
		if err := s.users.UpdateProfile(u.ID, profile.Email, profile.Name, profile.Picture); err != nil {
			return nil, "", err
		}
		u.Email = profile.Email
		u.Name = profile.Name
		u.Picture = profile.Picture
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, "", err
	}

	return u, session.ID, nil
}

// ResolveSession maps a cookie value to a user id. Expired sessions are
// deleted on first access; unknown or expired sessions resolve to "".
func (s *DefaultService) ResolveSession(sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if session.ExpiresAt.Before(time.Now()) {
		if err := s.sessions.DeleteByID(session.ID); err != nil {
			return "", err
		}
		return "", nil
	}

	return session.UserID, nil
}

// CurrentUser resolves a session and loads the owning user, nil when logged out
func (s *DefaultService) CurrentUser(sessionID string) (*user.User, error) {
	userID, err := s.ResolveSession(sessionID)
	if err != nil || userID == "" {
		return nil, err
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// EndSession deletes the session if present; idempotent
func (s *DefaultService) EndSession(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.DeleteByID(sessionID)
}
