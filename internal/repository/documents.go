package repository

import (
	"context"
	"maps"
)

// Document is a single record addressed by its key within a collection.
// Body never carries the key itself.
type Document struct {
	ID   string
	Body map[string]any
}

// Store is a document store scoped to one project.
//
// CommitBatch and DeleteBatch are all-or-nothing: either every document in
// the call is written (or removed) or none is. Writes merge into existing
// documents rather than replacing them.
type Store interface {
	CommitBatch(ctx context.Context, collection string, docs []Document) error
	ListIDs(ctx context.Context, collection string, limit int) ([]string, error)
	DeleteBatch(ctx context.Context, collection string, ids []string) error
	Count(ctx context.Context, collection string) (int, error)
}

// mergeBody returns existing overlaid with incoming at the top level.
func mergeBody(existing, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(incoming))
	maps.Copy(merged, existing)
	maps.Copy(merged, incoming)
	return merged
}
