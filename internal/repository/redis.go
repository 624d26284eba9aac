package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	rds "github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection in one hash, <project>:<collection>,
// with one JSON encoded field per document.
type RedisStore struct {
	client  *rds.Client
	logger  *zerolog.Logger
	project string
}

func NewRedisStore(client *rds.Client, logger *zerolog.Logger, project string) *RedisStore {
	return &RedisStore{
		client:  client,
		logger:  logger,
		project: project,
	}
}

func (r *RedisStore) key(collection string) string {
	return fmt.Sprintf("%s:%s", r.project, collection)
}

// CommitBatch merges docs into the hash inside a single MULTI/EXEC. The hash
// is watched while existing bodies are read, so a concurrent writer turns
// the commit into rds.TxFailedErr instead of a lost update.
func (r *RedisStore) CommitBatch(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	key := r.key(collection)
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	r.logger.Debug().Str("key", key).Int("docs", len(docs)).Msg("committing batch")
	return r.client.Watch(ctx, func(tx *rds.Tx) error {
		existing, err := tx.HMGet(ctx, key, ids...).Result()
		if err != nil {
			return fmt.Errorf("read existing documents: %w", err)
		}

		values, err := mergeFields(docs, existing)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe rds.Pipeliner) error {
			pipe.HSet(ctx, key, values...)
			return nil
		})
		if err != nil {
			return fmt.Errorf("write documents: %w", err)
		}
		return nil
	}, key)
}

// mergeFields builds the HSET argument list, overlaying each document on the
// body currently stored for it. existing is aligned with docs.
func mergeFields(docs []Document, existing []any) ([]any, error) {
	values := make([]any, 0, len(docs)*2)
	for i, doc := range docs {
		body := doc.Body
		if i < len(existing) {
			if raw, ok := existing[i].(string); ok {
				current, err := decodeBody([]byte(raw))
				if err != nil {
					return nil, fmt.Errorf("document %s: %w", doc.ID, err)
				}
				body = mergeBody(current, doc.Body)
			}
		}

		encoded, err := encodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		values = append(values, doc.ID, encoded)
	}
	return values, nil
}

func (r *RedisStore) ListIDs(ctx context.Context, collection string, limit int) ([]string, error) {
	key := r.key(collection)

	var (
		ids    []string
		cursor uint64
	)
	for {
		count := int64(limit)
		if count <= 0 {
			count = 100
		}
		fields, next, err := r.client.HScan(ctx, key, cursor, "", count).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", key, err)
		}
		// HSCAN replies with field/value pairs.
		for i := 0; i < len(fields); i += 2 {
			ids = append(ids, fields[i])
		}
		cursor = next
		if cursor == 0 || (limit > 0 && len(ids) >= limit) {
			break
		}
	}

	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *RedisStore) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	key := r.key(collection)
	r.logger.Debug().Str("key", key).Int("docs", len(ids)).Msg("deleting batch")
	_, err := r.client.TxPipelined(ctx, func(pipe rds.Pipeliner) error {
		pipe.HDel(ctx, key, ids...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	return nil
}

func (r *RedisStore) Count(ctx context.Context, collection string) (int, error) {
	// HLEN on a missing key is 0.
	n, err := r.client.HLen(ctx, r.key(collection)).Result()
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return int(n), nil
}
