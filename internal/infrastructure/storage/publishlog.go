// Package storage persists the publish audit log in Postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

var _ ports.PublishLog = (*PostgresPublishLog)(nil)

// PostgresPublishLog records every created draft for audit and history.
// A nil db makes every method a no-op so the pipelines run unchanged
// without a database configured.
type PostgresPublishLog struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewPostgresPublishLog wires a sql.DB. Pass nil to disable persistence.
func NewPostgresPublishLog(db *sql.DB) *PostgresPublishLog {
	return &PostgresPublishLog{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres with the given DSN. Empty DSN returns a
// disabled log without error.
func Open(dsn string) (*PostgresPublishLog, error) {
	if dsn == "" {
		return NewPostgresPublishLog(nil), nil
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresPublishLog(db), nil
}

// Record upserts one publish record keyed by the remote post id.
func (l *PostgresPublishLog) Record(ctx context.Context, rec domain.PublishRecord) error {
	if l.db == nil {
		return nil
	}

	query, args, err := l.builder.
		Insert("publish_log").
		Columns("post_id", "title", "link", "kind", "repo_name", "score", "status", "created_at").
		Values(rec.PostID, rec.Title, rec.Link, rec.Kind, rec.RepoName, rec.Score, rec.Status, rec.CreatedAt).
		Suffix(`ON CONFLICT (post_id) DO UPDATE
                SET title = EXCLUDED.title,
                    link = EXCLUDED.link,
                    status = EXCLUDED.status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record publish: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (l *PostgresPublishLog) Recent(ctx context.Context, limit int) ([]domain.PublishRecord, error) {
	if l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query, args, err := l.builder.
		Select("post_id", "title", "link", "kind", "repo_name", "score", "status", "created_at").
		From("publish_log").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query publish log: %w", err)
	}
	defer rows.Close()

	var records []domain.PublishRecord
	for rows.Next() {
		var rec domain.PublishRecord
		if err := rows.Scan(&rec.PostID, &rec.Title, &rec.Link, &rec.Kind,
			&rec.RepoName, &rec.Score, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (l *PostgresPublishLog) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}
