package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
)

type CallOp string

const (
	CallCommit CallOp = "commit"
	CallList   CallOp = "list"
	CallDelete CallOp = "delete"
	CallCount  CallOp = "count"
)

// Call records one store operation made against a MemoryStore.
type Call struct {
	Op         CallOp
	Collection string
	Size       int
}

// MemoryStore is an in-process Store. It keeps a log of every call and can
// be told to fail commits or deletes, which makes it the store of choice in
// tests.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	calls       []Call

	// FailCommit, when set, is consulted before each CommitBatch. A non-nil
	// error aborts the batch without writing anything.
	FailCommit func(collection string, docs []Document) error
	// FailDelete plays the same role for DeleteBatch.
	FailDelete func(collection string, ids []string) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string]map[string]any{},
	}
}

func (m *MemoryStore) record(op CallOp, collection string, size int) {
	m.calls = append(m.calls, Call{Op: op, Collection: collection, Size: size})
}

func (m *MemoryStore) CommitBatch(_ context.Context, collection string, docs []Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(CallCommit, collection, len(docs))
	if m.FailCommit != nil {
		if err := m.FailCommit(collection, docs); err != nil {
			return err
		}
	}

	coll, ok := m.collections[collection]
	if !ok {
		coll = map[string]map[string]any{}
		m.collections[collection] = coll
	}
	for _, doc := range docs {
		coll[doc.ID] = mergeBody(coll[doc.ID], doc.Body)
	}
	return nil
}

func (m *MemoryStore) ListIDs(_ context.Context, collection string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(CallList, collection, limit)
	ids := slices.Sorted(maps.Keys(m.collections[collection]))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *MemoryStore) DeleteBatch(_ context.Context, collection string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(CallDelete, collection, len(ids))
	if m.FailDelete != nil {
		if err := m.FailDelete(collection, ids); err != nil {
			return err
		}
	}

	coll := m.collections[collection]
	for _, id := range ids {
		delete(coll, id)
	}
	return nil
}

func (m *MemoryStore) Count(_ context.Context, collection string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(CallCount, collection, 0)
	return len(m.collections[collection]), nil
}

// Get returns a copy of the stored body.
func (m *MemoryStore) Get(collection, id string) (map[string]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	body, ok := m.collections[collection][id]
	if !ok {
		return nil, false
	}
	return maps.Clone(body), true
}

// Put writes a document directly, bypassing the call log.
func (m *MemoryStore) Put(collection, id string, body map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = map[string]map[string]any{}
		m.collections[collection] = coll
	}
	coll[id] = maps.Clone(body)
}

func (m *MemoryStore) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Mutations returns only the commit and delete calls.
func (m *MemoryStore) Mutations() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Call
	for _, c := range m.calls {
		if c.Op == CallCommit || c.Op == CallDelete {
			out = append(out, c)
		}
	}
	return out
}
