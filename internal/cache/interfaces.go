package cache

import (
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/repository"
)

// ReadOnlyStore is the minimal cache API for read-only consumers.
type ReadOnlyStore interface {
	Snapshot() (repository.DataDocument, error)
}

// NoteStore is the cache API needed by note handlers.
type NoteStore interface {
	Notes() []repository.NoteRecord
	Note(id string) (repository.NoteRecord, bool)
	AddNote(note repository.NoteRecord) (repository.NoteRecord, error)
}

// UserStore is the cache API needed by user handlers.
type UserStore interface {
	User() (model.User, bool)
	SetUser(user model.User) error
}

// PersistableStore is the cache API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Snapshot() (repository.DataDocument, error)
	ClearDirty()
	SetLastUpdate(ts int64)
}

// AppStore is the cache contract the application container exposes.
// It is intentionally broad: it supports controllers, persistence scheduler and repository watcher.
type AppStore interface {
	repository.CacheStore
	NoteStore
	UserStore
	PersistableStore
}
