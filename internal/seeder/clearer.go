package seeder

import (
	"context"
	"fmt"

	"github.com/masbusiness/business-os/internal/repository"
)

// ClearPageSize bounds how many documents ClearPage reads and deletes.
const ClearPageSize = 500

type Clearer struct {
	store    repository.Store
	pageSize int
}

func NewClearer(store repository.Store) *Clearer {
	return &Clearer{store: store, pageSize: ClearPageSize}
}

// ClearPage deletes at most one page of documents in a single atomic batch
// and returns how many it removed. Anything past the page is left in place.
func (c *Clearer) ClearPage(ctx context.Context, collection string) (int, error) {
	ids, err := c.store.ListIDs(ctx, collection, c.pageSize)
	if err != nil {
		return 0, fmt.Errorf("%s: list documents: %w", collection, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := c.store.DeleteBatch(ctx, collection, ids); err != nil {
		return 0, fmt.Errorf("%s: delete batch: %w", collection, err)
	}
	return len(ids), nil
}

// ClearCollection pages through the collection until it is empty.
func (c *Clearer) ClearCollection(ctx context.Context, collection string) (int, error) {
	total := 0
	for {
		n, err := c.ClearPage(ctx, collection)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
}
