package repository

import "context"

// Saver writes the notes/user document back to the data file.
// The cache persistence scheduler only needs this half.
type Saver interface {
	Save(ctx context.Context, doc *DataDocument) error
}

// Loader reads the notes/user document served by the backend.
type Loader interface {
	Load(ctx context.Context) (*DataDocument, error)
}

// Repository is the backend's storage: it loads and saves the document and
// pushes external edits of the data file into the cache.
type Repository interface {
	Saver
	Loader
	StartWatcher(ctx context.Context, cacheStore CacheStore) error
}
