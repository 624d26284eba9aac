package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MergeOnWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	m.Put("users", "u1", map[string]any{"email": "old@mas.example", "locale": "ar"})

	require.NoError(t, m.CommitBatch(ctx, "users", []Document{
		{ID: "u1", Body: map[string]any{"email": "new@mas.example"}},
	}))

	body, ok := m.Get("users", "u1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"email": "new@mas.example", "locale": "ar"}, body)
}

func TestMemoryStore_FailCommitWritesNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	boom := errors.New("quota exceeded")
	m.FailCommit = func(string, []Document) error { return boom }

	err := m.CommitBatch(ctx, "users", []Document{{ID: "u1"}})
	require.ErrorIs(t, err, boom)

	n, err := m.Count(ctx, "users")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []Call{{Op: CallCommit, Collection: "users", Size: 1}}, m.Mutations())
}

func TestMemoryStore_ListIDsIsSortedAndBounded(t *testing.T) {
	m := NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		m.Put("roles", id, nil)
	}

	ids, err := m.ListIDs(context.Background(), "roles", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestMergeFields(t *testing.T) {
	docs := []Document{
		{ID: "a", Body: map[string]any{"name": "Alpha"}},
		{ID: "b", Body: map[string]any{"name": "Beta"}},
	}
	existing := []any{`{"name":"old","extra":true}`, nil}

	values, err := mergeFields(docs, existing)
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, "a", values[0])
	assert.JSONEq(t, `{"name":"Alpha","extra":true}`, values[1].(string))
	assert.Equal(t, "b", values[2])
	assert.JSONEq(t, `{"name":"Beta"}`, values[3].(string))
}

func TestMergeFields_CorruptExisting(t *testing.T) {
	_, err := mergeFields([]Document{{ID: "a"}}, []any{"not json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document a")
}
