package user

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) UserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return NewRepository(db)
}

func TestCreate_AssignsID(t *testing.T) {
	repo := setupRepo(t)

	u := &User{GoogleID: "google-1", Email: "a@example.com", Name: "Alice"}
	require.NoError(t, repo.Create(u))

	assert.NotEmpty(t, u.ID)
}

func TestCreate_DuplicateGoogleID(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Create(&User{GoogleID: "google-1", Email: "a@example.com"}))
	assert.Error(t, repo.Create(&User{GoogleID: "google-1", Email: "b@example.com"}))
}

func TestFindByGoogleID(t *testing.T) {
	repo := setupRepo(t)

	created := &User{GoogleID: "google-1", Email: "a@example.com"}
	require.NoError(t, repo.Create(created))

	found, err := repo.FindByGoogleID("google-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByGoogleID("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo := setupRepo(t)

	created := &User{GoogleID: "google-1", Email: "a@example.com", Name: "Alice"}
	require.NoError(t, repo.Create(created))

	require.NoError(t, repo.UpdateProfile(created.ID, "new@example.com", "Alice B", "pic"))

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", found.Email)
	assert.Equal(t, "Alice B", found.Name)
	assert.Equal(t, "pic", found.Picture)
	assert.Equal(t, "google-1", found.GoogleID)
}

func TestToSafeUser(t *testing.T) {
	u := User{ID: "u1", GoogleID: "google-1", Email: "a@example.com", Name: "Alice", Picture: "pic"}

	safe := u.ToSafeUser()
	assert.Equal(t, "u1", safe.ID)
	assert.Equal(t, "a@example.com", safe.Email)
	assert.Equal(t, "Alice", safe.Name)
	assert.Equal(t, "pic", safe.Picture)
}
