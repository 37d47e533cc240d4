package client

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"mandalart/internal/mandalart"

	_ "modernc.org/sqlite"
)

// LocalStore durably persists the current working document in a SQLite file,
// so edits survive restarts whether or not a sync ever reaches the server.
type LocalStore struct {
	db *sql.DB
}

// OpenLocalStore opens (and creates if needed) the client database file
func OpenLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		return nil, errors.New("empty client db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &LocalStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying DB
func (s *LocalStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// The client holds exactly one working document, so the table is single-row.
func (s *LocalStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS working_document (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  year TEXT NOT NULL,
  title TEXT NOT NULL,
  keyword TEXT NOT NULL,
  commitment TEXT NOT NULL,
  cells TEXT NOT NULL,
  server_id TEXT NOT NULL DEFAULT '',
  updated_at INTEGER NOT NULL
);
`
	_, err := s.db.Exec(ddl)
	return err
}

// Save writes the current document state and the known server id
func (s *LocalStore) Save(doc mandalart.Document, serverID string) error {
	cells, err := mandalart.MarshalCells(doc.Cells)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO working_document(id, year, title, keyword, commitment, cells, server_id, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  year = excluded.year,
  title = excluded.title,
  keyword = excluded.keyword,
  commitment = excluded.commitment,
  cells = excluded.cells,
  server_id = excluded.server_id,
  updated_at = excluded.updated_at`,
		doc.Year, doc.Title, doc.Keyword, doc.Commitment, cells, serverID, time.Now().Unix(),
	)
	return err
}

// Load restores the persisted document; ok is false when nothing was saved yet
func (s *LocalStore) Load() (doc mandalart.Document, serverID string, ok bool, err error) {
	var cells string
	row := s.db.QueryRow(`SELECT year, title, keyword, commitment, cells, server_id FROM working_document WHERE id = 1`)
	err = row.Scan(&doc.Year, &doc.Title, &doc.Keyword, &doc.Commitment, &cells, &serverID)
	if errors.Is(err, sql.ErrNoRows) {
		return mandalart.Document{}, "", false, nil
	}
	if err != nil {
		return mandalart.Document{}, "", false, err
	}
	doc.Cells, err = mandalart.UnmarshalCells(cells)
	if err != nil {
		return mandalart.Document{}, "", false, err
	}
	return doc, serverID, true, nil
}
