package server

import "context"

// DataStore holds the singleton tournament document.
type DataStore interface {
	// Load returns the stored document, or nil if none has ever been saved.
	Load(ctx context.Context) (map[string]any, error)
	// Replace upserts the singleton document and reports whether it was
	// newly created.
	Replace(ctx context.Context, doc map[string]any) (created bool, err error)
}

// Checker verifies a backing dependency for the health endpoint.
type Checker func(ctx context.Context) error
