package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const documentsTable = "documents"

// SQLStore keeps every collection of a project in the shared documents
// table, keyed by (project, collection, id).
type SQLStore struct {
	db      *sqlx.DB
	psql    sq.StatementBuilderType
	dialect Dialect
	project string
}

func NewSQLStore(db *sqlx.DB, dialect Dialect, project string) *SQLStore {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}
	return &SQLStore{
		db:      db,
		psql:    sq.StatementBuilder.PlaceholderFormat(placeholder),
		dialect: dialect,
		project: project,
	}
}

type DocumentFilter struct {
	Collection string
	IDs        []string
	Limit      uint64
}

func (s *SQLStore) buildQuery(filter DocumentFilter, queryType QueryType) (string, []any, error) {
	var builder sq.SelectBuilder
	switch queryType {
	case QueryTypeSelect:
		builder = s.psql.Select("id", "body").From(documentsTable)
	case QueryTypeCount:
		builder = s.psql.Select("COUNT(*)").From(documentsTable)
	default:
		return "", nil, fmt.Errorf("unsupported query type %q", queryType)
	}

	builder = builder.Where(sq.Eq{"project": s.project, "collection": filter.Collection})

	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}

	if queryType == QueryTypeSelect {
		builder = builder.OrderBy("id")
		if filter.Limit > 0 {
			builder = builder.Limit(filter.Limit)
		}
	}

	return builder.ToSql()
}

// mergeExpr is the ON CONFLICT update applied to the stored body. Postgres
// overlays the top-level keys itself; SQLite gets bodies that were already
// merged by mergeExisting, since json_patch would merge nested objects and
// drop null keys.
func (s *SQLStore) mergeExpr() string {
	if s.dialect == DialectPostgres {
		return "body = documents.body || EXCLUDED.body, updated_at = CURRENT_TIMESTAMP"
	}
	return "body = excluded.body, updated_at = CURRENT_TIMESTAMP"
}

func (s *SQLStore) buildUpsert(collection string, docs []Document) (string, []any, error) {
	builder := s.psql.Insert(documentsTable).
		Columns("project", "collection", "id", "body").
		Suffix("ON CONFLICT (project, collection, id) DO UPDATE SET " + s.mergeExpr())

	for _, doc := range docs {
		body, err := encodeBody(doc.Body)
		if err != nil {
			return "", nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		var value any = body
		if s.dialect == DialectPostgres {
			value = sq.Expr("?::jsonb", body)
		}
		builder = builder.Values(s.project, collection, doc.ID, value)
	}

	return builder.ToSql()
}

func (s *SQLStore) CommitBatch(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if s.dialect != DialectPostgres {
		docs, err = s.mergeExisting(ctx, tx, collection, docs)
		if err != nil {
			return err
		}
	}

	query, args, err := s.buildUpsert(collection, docs)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) ListIDs(ctx context.Context, collection string, limit int) ([]string, error) {
	builder := s.psql.Select("id").From(documentsTable).
		Where(sq.Eq{"project": s.project, "collection": collection}).
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	return ids, nil
}

func (s *SQLStore) DeleteBatch(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := s.psql.Delete(documentsTable).
		Where(sq.Eq{"project": s.project, "collection": collection}).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context, collection string) (int, error) {
	query, args, err := s.buildQuery(DocumentFilter{Collection: collection}, QueryTypeCount)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// mergeExisting overlays each document on the body stored for it, read
// inside tx so the merge and the write see the same rows.
func (s *SQLStore) mergeExisting(ctx context.Context, tx *sqlx.Tx, collection string, docs []Document) ([]Document, error) {
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	existing, err := s.bodies(ctx, tx, collection, ids)
	if err != nil {
		return nil, err
	}

	merged := make([]Document, len(docs))
	for i, doc := range docs {
		merged[i] = doc
		if current, ok := existing[doc.ID]; ok {
			merged[i].Body = mergeBody(current, doc.Body)
		}
	}
	return merged, nil
}

// bodies returns the stored bodies of ids, keyed by id. Missing ids are
// absent from the result.
func (s *SQLStore) bodies(ctx context.Context, q sqlx.QueryerContext, collection string, ids []string) (map[string]map[string]any, error) {
	query, args, err := s.buildQuery(DocumentFilter{Collection: collection, IDs: ids}, QueryTypeSelect)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]any, len(ids))
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		body, err := decodeBody(raw)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		out[id] = body
	}
	return out, rows.Err()
}
