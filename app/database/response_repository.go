package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var _ ResponseRepository = (*ResponseRepositoryImpl)(nil)

const responsesTable = "responses"

// ResponseRepositoryImpl stores raw provider responses keyed by request.
type ResponseRepositoryImpl struct {
	db  *DB
	now func() time.Time
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db *DB) *ResponseRepositoryImpl {
	return &ResponseRepositoryImpl{db: db, now: time.Now}
}

// GetResponse returns the cached body for key. Expired rows count as misses.
func (r *ResponseRepositoryImpl) GetResponse(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sq.Select("body").
		From(responsesTable).
		Where(sq.Eq{"cache_key": key}).
		Where(sq.Gt{"expires_at": r.now().UnixMilli()}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build response query: %w", err)
	}

	var body []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get response: %w", err)
	}

	return body, true, nil
}

// SetResponse inserts or replaces the body for key with a fresh expiry
func (r *ResponseRepositoryImpl) SetResponse(ctx context.Context, key, url string, body []byte, ttl time.Duration) error {
	now := r.now()
	query, args, err := sq.Insert(responsesTable).
		Columns("cache_key", "url", "body", "created_at", "expires_at").
		Values(key, url, body, now.UnixMilli(), now.Add(ttl).UnixMilli()).
		Suffix(`ON CONFLICT (cache_key) DO UPDATE SET
			url = excluded.url,
			body = excluded.body,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build response upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set response: %w", err)
	}

	return nil
}

// PurgeExpired deletes expired rows and reports how many were removed
func (r *ResponseRepositoryImpl) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete(responsesTable).
		Where(sq.LtOrEq{"expires_at": r.now().UnixMilli()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired responses: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged responses: %w", err)
	}

	return count, nil
}

func (r *ResponseRepositoryImpl) GetStats(ctx context.Context) (CacheStats, error) {
	query, args, err := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(LENGTH(body)), 0)",
	).
		Column(sq.Expr("COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0)", r.now().UnixMilli())).
		From(responsesTable).
		ToSql()
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to build stats query: %w", err)
	}

	var stats CacheStats
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Entries, &stats.Bytes, &stats.Expired)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to get cache stats: %w", err)
	}

	return stats, nil
}
