package mandalart

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) MandalartRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Mandalart{}))
	return NewRepository(db)
}

func emptyCellsJSON(t *testing.T) string {
	t.Helper()
	raw, err := MarshalCells(NewEmptyCells())
	require.NoError(t, err)
	return raw
}

func TestRepository_ListByUser_Ordering(t *testing.T) {
	repo := setupRepo(t)
	cells := emptyCellsJSON(t)

	older := &Mandalart{ID: "doc-1", UserID: "u1", Year: "2025", Cells: cells, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Mandalart{ID: "doc-2", UserID: "u1", Year: "2026", Cells: cells, CreatedAt: time.Now()}
	other := &Mandalart{ID: "doc-3", UserID: "u2", Year: "2026", Cells: cells, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(other))

	documents, err := repo.ListByUser("u1", "")
	require.NoError(t, err)
	require.Len(t, documents, 2)
	// Newest created first
	assert.Equal(t, "doc-2", documents[0].ID)
	assert.Equal(t, "doc-1", documents[1].ID)

	filtered, err := repo.ListByUser("u1", "2025")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "doc-1", filtered[0].ID)
}

func TestRepository_FindByIDAndUser_Scoped(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Create(&Mandalart{ID: "doc-1", UserID: "u1", Year: "2026", Cells: emptyCellsJSON(t)}))

	found, err := repo.FindByIDAndUser("doc-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", found.ID)

	// Another user never sees it
	_, err = repo.FindByIDAndUser("doc-1", "u2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteByIDAndUser(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Create(&Mandalart{ID: "doc-1", UserID: "u1", Year: "2026", Cells: emptyCellsJSON(t)}))

	// Foreign delete is a silent no-op
	require.NoError(t, repo.DeleteByIDAndUser("doc-1", "u2"))
	_, err := repo.FindByIDAndUser("doc-1", "u1")
	require.NoError(t, err)

	// Owned delete removes the row; repeating it is fine
	require.NoError(t, repo.DeleteByIDAndUser("doc-1", "u1"))
	_, err = repo.FindByIDAndUser("doc-1", "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteByIDAndUser("doc-1", "u1"))
}

func TestRepository_ExistsByID(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Create(&Mandalart{ID: "doc-1", UserID: "u1", Year: "2026", Cells: emptyCellsJSON(t)}))

	exists, err := repo.ExistsByID("doc-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID("nope")
	require.NoError(t, err)
	assert.False(t, exists)
}
