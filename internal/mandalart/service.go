package mandalart

import (
	"context"
	defError "errors"
	"fmt"
	"time"

	"mandalart/internal/errors"
	"mandalart/internal/worker"
	"mandalart/redis"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the mandalart business logic
type Service interface {
	ListDocuments(ctx context.Context, userID string, year string) ([]DocumentResponse, error)
	SaveDocument(ctx context.Context, userID string, input SaveInput) (string, error)
	DeleteDocument(ctx context.Context, userID string, id string) error
}

// TaskRunner is the part of the worker pool the service uses
type TaskRunner interface {
	Submit(t worker.Task)
}

// DocumentResponse is a document with its grid deserialized
type DocumentResponse struct {
	ID         string `json:"id"`
	Year       string `json:"year"`
	Title      string `json:"title"`
	Keyword    string `json:"keyword"`
	Commitment string `json:"commitment"`
	Cells      []Cell `json:"cells"`
}

// SaveInput carries one document to upsert. ID is optional: resolution is by
// explicit id first, then by the (user, year) convention.
type SaveInput struct {
	ID         string
	Year       string
	Title      string
	Keyword    string
	Commitment string
	Cells      []Cell
}

// DefaultService implements Service
type DefaultService struct {
	repository MandalartRepository
	cache      *redis.Cache
	pool       TaskRunner
}

// NewService creates a new mandalart service
func NewService(repository MandalartRepository, cache *redis.Cache, pool TaskRunner) Service {
	return &DefaultService{
		repository: repository,
		cache:      cache,
		pool:       pool,
	}
}

func versionKey(userID string) string {
	return fmt.Sprintf("user:%s:mandalart:version", userID)
}

// ListDocuments returns a user's documents, newest created first,
// optionally filtered to one year
func (s *DefaultService) ListDocuments(ctx context.Context, userID string, year string) ([]DocumentResponse, error) {
	if userID == "" {
		return nil, errors.ErrUnauthorized(nil)
	}

	// Versioned cache key: any save/delete bumps the version,
	// so stale entries are simply never read again
	v := s.cache.GetVersion(ctx, versionKey(userID))
	cacheKey := fmt.Sprintf("mandalart:u:%s:v:%d:y:%s", userID, v, year)

	var cached []DocumentResponse
	found, _ := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return cached, nil
	}

	rows, err := s.repository.ListByUser(userID, year)
	if err != nil {
		return nil, err
	}

	result := make([]DocumentResponse, 0, len(rows))
	for _, row := range rows {
		cells, err := UnmarshalCells(row.Cells)
		if err != nil {
			return nil, fmt.Errorf("corrupt grid for document %s: %w", row.ID, err)
		}
		result = append(result, DocumentResponse{
			ID:         row.ID,
			Year:       row.Year,
			Title:      row.Title,
			Keyword:    row.Keyword,
			Commitment: row.Commitment,
			Cells:      cells,
		})
	}

	if s.pool != nil {
		snapshot := result
		s.pool.Submit(func(taskCtx context.Context) error {
			s.cache.Set(taskCtx, cacheKey, snapshot, 24*time.Hour)
			return nil
		})
	}

	return result, nil
}

// SaveDocument upserts a document: explicit id first, (user, year) fallback,
// else a fresh insert. Returns the id of the saved row.
func (s *DefaultService) SaveDocument(ctx context.Context, userID string, input SaveInput) (string, error) {
	if userID == "" {
		return "", errors.ErrUnauthorized(nil)
	}
	if err := ValidateCells(input.Cells); err != nil {
		return "", errors.ErrInvalidInput(err)
	}

	serialized, err := MarshalCells(input.Cells)
	if err != nil {
		return "", err
	}

	existing, err := s.resolveExisting(userID, input)
	if err != nil {
		return "", err
	}

	if existing != nil {
		existing.Year = input.Year
		existing.Title = input.Title
		existing.Keyword = input.Keyword
		existing.Commitment = input.Commitment
		existing.Cells = serialized
		if err := s.repository.Update(existing); err != nil {
			return "", err
		}
		s.cache.IncrementVersion(ctx, versionKey(userID))
		return existing.ID, nil
	}

	id, err := s.insertID(input.ID)
	if err != nil {
		return "", err
	}
	row := &Mandalart{
		ID:         id,
		UserID:     userID,
		Year:       input.Year,
		Title:      input.Title,
		Keyword:    input.Keyword,
		Commitment: input.Commitment,
		Cells:      serialized,
	}
	if err := s.repository.Create(row); err != nil {
		return "", err
	}
	s.cache.IncrementVersion(ctx, versionKey(userID))
	return row.ID, nil
}

// resolveExisting matches by (id, user) when an id is given, else by (user, year)
func (s *DefaultService) resolveExisting(userID string, input SaveInput) (*Mandalart, error) {
	if input.ID != "" {
		m, err := s.repository.FindByIDAndUser(input.ID, userID)
		if err == nil {
			return m, nil
		}
		if !defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// id unknown or owned by someone else: fall through to insert,
		// never touch another user's row
		return nil, nil
	}

	m, err := s.repository.FindByUserAndYear(userID, input.Year)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// insertID honors a caller-supplied id unless some other row already holds it
func (s *DefaultService) insertID(requested string) (string, error) {
	if requested == "" {
		return uuid.NewString(), nil
	}
	taken, err := s.repository.ExistsByID(requested)
	if err != nil {
		return "", err
	}
	if taken {
		return uuid.NewString(), nil
	}
	return requested, nil
}

// DeleteDocument deletes only an owned document; otherwise it is a silent no-op
func (s *DefaultService) DeleteDocument(ctx context.Context, userID string, id string) error {
	if userID == "" {
		return errors.ErrUnauthorized(nil)
	}
	if err := s.repository.DeleteByIDAndUser(id, userID); err != nil {
		return err
	}
	s.cache.IncrementVersion(ctx, versionKey(userID))
	return nil
}
