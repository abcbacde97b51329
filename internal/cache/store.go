package cache

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/repository"
)

// Store keeps an in-memory copy of the data document.
type Store struct {
	mu         sync.RWMutex
	data       repository.DataDocument
	dirty      bool  // true if cache changed since last persist
	lastUpdate int64 // cache's metadata.lastUpdate
}

// NewStore creates a cache store holding doc.
func NewStore(doc repository.DataDocument) *Store {
	doc.ApplyDefaults()
	return &Store{data: doc, lastUpdate: doc.Metadata.LastUpdate}
}

// MarkDirty sets the dirty flag to true.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// IsDirty returns true if cache has uncommitted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *Store) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// GetLastUpdate returns the cache's last update timestamp.
func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate sets the cache's last update timestamp.
func (s *Store) SetLastUpdate(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = ts
}

// Snapshot returns a deep copy of the cached data.
func (s *Store) Snapshot() (repository.DataDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneData(s.data)
}

// Replace swaps the cached data.
func (s *Store) Replace(doc repository.DataDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned, err := cloneData(doc)
	if err != nil {
		return err
	}
	cloned.ApplyDefaults()
	s.data = cloned
	s.lastUpdate = doc.Metadata.LastUpdate
	s.dirty = false

	return nil
}

// Notes returns every cached note in stored order.
func (s *Store) Notes() []repository.NoteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repository.NoteRecord, len(s.data.Notes))
	copy(out, s.data.Notes)
	return out
}

// Note returns the note with the given id.
func (s *Store) Note(id string) (repository.NoteRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.FindNote(id)
}

// AddNote upserts a note by id.
func (s *Store) AddNote(note repository.NoteRecord) (repository.NoteRecord, error) {
	if note.ID == "" {
		return repository.NoteRecord{}, errors.New("note id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.data.Notes {
		if s.data.Notes[i].ID == note.ID {
			s.data.Notes[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Notes = append(s.data.Notes, note)
	}

	s.dirty = true
	return note, nil
}

// User returns the cached user, if one is set.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return model.User{}, false
	}
	return *s.data.User, true
}

// SetUser replaces the cached user.
func (s *Store) SetUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User = &user
	s.dirty = true
	return nil
}

// cloneData deep-copies the document to avoid shared slices between cache and callers.
func cloneData(doc repository.DataDocument) (repository.DataDocument, error) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return repository.DataDocument{}, err
	}
	var copy repository.DataDocument
	if err := json.Unmarshal(bytes, &copy); err != nil {
		return repository.DataDocument{}, err
	}
	return copy, nil
}
