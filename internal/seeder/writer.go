package seeder

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/samber/lo"

	"github.com/masbusiness/business-os/internal/repository"
	"github.com/masbusiness/business-os/internal/seeddata"
)

// BatchSize is the largest number of documents committed in one batch.
const BatchSize = 500

// Audit fields stamped onto every document that lacks them.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldCreatedBy = "createdBy"
	FieldUpdatedBy = "updatedBy"
)

type Writer struct {
	store     repository.Store
	actor     string
	now       func() time.Time
	batchSize int
}

func NewWriter(store repository.Store, actor string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{
		store:     store,
		actor:     actor,
		now:       now,
		batchSize: BatchSize,
	}
}

// WriteCollection commits records in chunks of at most BatchSize, one atomic
// batch per chunk, and returns how many were written. It stops at the first
// failing chunk; chunks committed before it stay committed.
func (w *Writer) WriteCollection(ctx context.Context, collection string, records []seeddata.Record) (int, error) {
	stamp := w.now().UTC()

	written := 0
	for i, chunk := range lo.Chunk(records, w.batchSize) {
		docs := make([]repository.Document, 0, len(chunk))
		for _, r := range chunk {
			doc, err := toDocument(r, stamp, w.actor)
			if err != nil {
				return written, fmt.Errorf("%s: %w", collection, err)
			}
			docs = append(docs, doc)
		}

		if err := w.store.CommitBatch(ctx, collection, docs); err != nil {
			return written, fmt.Errorf("%s: commit batch %d: %w", collection, i+1, err)
		}
		written += len(docs)
	}
	return written, nil
}

// toDocument keys the document by the record id, drops id from the body and
// fills in audit fields the record does not already carry.
func toDocument(r seeddata.Record, stamp time.Time, actor string) (repository.Document, error) {
	id := r.ID()
	if id == "" {
		return repository.Document{}, seeddata.ErrMissingID
	}

	body := maps.Clone(map[string]any(r))
	delete(body, "id")
	setDefault(body, FieldCreatedAt, stamp)
	setDefault(body, FieldUpdatedAt, stamp)
	setDefault(body, FieldCreatedBy, actor)
	setDefault(body, FieldUpdatedBy, actor)

	return repository.Document{ID: id, Body: body}, nil
}

// setDefault only fills keys the record does not carry at all. An explicit
// empty or null value is kept as written.
func setDefault(body map[string]any, key string, value any) {
	if _, ok := body[key]; ok {
		return
	}
	body[key] = value
}
