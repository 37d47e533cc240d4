package client

import (
	"context"
	"log"
	"sync"
	"time"

	"mandalart/internal/mandalart"
)

// DefaultDebounceInterval is the quiet period after the last local mutation
// before the accumulated state is pushed to the server.
const DefaultDebounceInterval = 1000 * time.Millisecond

// SyncAPI is the part of the server API the grid store uses
type SyncAPI interface {
	ListDocuments(ctx context.Context, year string) ([]mandalart.DocumentResponse, error)
	SaveDocument(ctx context.Context, id string, doc mandalart.Document) (string, error)
}

// Persister durably stores the working document between runs
type Persister interface {
	Save(doc mandalart.Document, serverID string) error
	Load() (doc mandalart.Document, serverID string, ok bool, err error)
}

// GridStore holds the working document. Mutations apply to local state first
// and always win; server sync is debounced and best-effort. Local state is
// never rolled back on a failed sync.
//
// The debounce timer belongs to the store instance, so independent stores
// (and tests) never share timer state.
type GridStore struct {
	mu       sync.Mutex
	doc      mandalart.Document
	serverID string
	syncing  bool
	timer    *time.Timer
	debounce time.Duration
	api      SyncAPI
	local    Persister
}

// NewGridStore creates a grid store. A zero debounce means the default 1000ms.
// local may be nil for a purely in-memory store.
func NewGridStore(api SyncAPI, local Persister, debounce time.Duration) *GridStore {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}
	g := &GridStore{
		doc:      mandalart.NewDocument(),
		debounce: debounce,
		api:      api,
		local:    local,
	}
	g.restore()
	return g
}

// restore reloads any previously persisted state, keeping the fresh
// empty document otherwise
func (g *GridStore) restore() {
	if g.local == nil {
		return
	}
	doc, serverID, ok, err := g.local.Load()
	if err != nil {
		log.Printf("Failed to restore local state: %v", err)
		return
	}
	if ok {
		g.doc = doc
		g.serverID = serverID
	}
}

// Snapshot returns a copy of the current document
func (g *GridStore) Snapshot() mandalart.Document {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *GridStore) snapshotLocked() mandalart.Document {
	doc := g.doc
	doc.Cells = make([]mandalart.Cell, len(g.doc.Cells))
	copy(doc.Cells, g.doc.Cells)
	return doc
}

// ServerID returns the known server-side document id, "" when none
func (g *GridStore) ServerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.serverID
}

// Cell reads one cell by id
func (g *GridStore) Cell(id string) (mandalart.Cell, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, cell := range g.doc.Cells {
		if cell.ID == id {
			return cell, true
		}
	}
	return mandalart.Cell{}, false
}

// UpdateMetadata sets one free-text field and schedules a sync
func (g *GridStore) UpdateMetadata(field mandalart.MetadataField, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.doc.SetMetadata(field, value); err != nil {
		return err
	}
	g.persistLocked()
	g.scheduleSyncLocked()
	return nil
}

// UpdateCell sets one cell's value and schedules a sync
func (g *GridStore) UpdateCell(id, value string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.doc.UpdateCell(id, value) {
		return false
	}
	g.persistLocked()
	g.scheduleSyncLocked()
	return true
}

// ResetSection clears one sub-grid and schedules a sync
func (g *GridStore) ResetSection(sectionIndex int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.doc.ResetSection(sectionIndex)
	g.persistLocked()
	g.scheduleSyncLocked()
}

// ResetAll clears the whole document and forgets the server id, so the next
// sync creates a new server-side document instead of overwriting the old one
func (g *GridStore) ResetAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.doc.Reset()
	g.serverID = ""
	g.persistLocked()
	g.scheduleSyncLocked()
}

// LoadFromServer fetches documents for the current year; the most recently
// created one replaces local state wholesale, server id included
func (g *GridStore) LoadFromServer(ctx context.Context) error {
	g.mu.Lock()
	year := g.doc.Year
	g.mu.Unlock()

	documents, err := g.api.ListDocuments(ctx, year)
	if err != nil {
		log.Printf("Failed to load from server: %v", err)
		return err
	}
	if len(documents) == 0 {
		return nil
	}

	latest := documents[0]

	g.mu.Lock()
	defer g.mu.Unlock()
	g.doc = mandalart.Document{
		Year:       latest.Year,
		Title:      latest.Title,
		Keyword:    latest.Keyword,
		Commitment: latest.Commitment,
		Cells:      latest.Cells,
	}
	g.serverID = latest.ID
	g.persistLocked()
	return nil
}

// SyncNow pushes the current state immediately, bypassing the debounce timer
func (g *GridStore) SyncNow() {
	g.syncToServer()
}

// Stop cancels any pending debounce timer. An in-flight sync is not awaited;
// its result is simply dropped, like closing the tab.
func (g *GridStore) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// persistLocked writes the current state to the local store; local writes
// failing never blocks an edit
func (g *GridStore) persistLocked() {
	if g.local == nil {
		return
	}
	if err := g.local.Save(g.snapshotLocked(), g.serverID); err != nil {
		log.Printf("Failed to persist local state: %v", err)
	}
}

// scheduleSyncLocked restarts the shared debounce timer: a burst of mutations
// collapses into one sync after the quiet period
func (g *GridStore) scheduleSyncLocked() {
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.debounce, g.syncToServer)
}

// syncToServer pushes the accumulated state. If a sync is already in flight
// the trigger is dropped, not queued; the state stays local and rides along
// with whatever debounce cycle fires next.
func (g *GridStore) syncToServer() {
	g.mu.Lock()
	if g.syncing {
		g.mu.Unlock()
		return
	}
	g.syncing = true
	doc := g.snapshotLocked()
	id := g.serverID
	g.mu.Unlock()

	newID, err := g.api.SaveDocument(context.Background(), id, doc)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.syncing = false
	if err != nil {
		// No retry, no backoff; local state is the source of truth
		log.Printf("Failed to sync to server: %v", err)
		return
	}
	g.serverID = newID
	g.persistLocked()
}
