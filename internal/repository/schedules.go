package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmaguardia/segovia/backend/internal/engine"
)

// EnsureSchema creates the schedules table on first boot.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			location_id TEXT PRIMARY KEY,
			records JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL
		)
	`

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(queryCtx, query)
	return err
}

// Get returns the cached schedule for a location, or nil when none is stored.
func (r *Repository) Get(ctx context.Context, locationID string) (*engine.StoredSchedule, error) {
	query := `
		SELECT records, fetched_at
		FROM schedules
		WHERE location_id = $1
	`

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var (
		raw       []byte
		fetchedAt time.Time
	)
	if err := r.dbpool.QueryRowContext(queryCtx, query, locationID).Scan(&raw, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	schedule := &engine.StoredSchedule{}
	if err := json.Unmarshal(raw, schedule); err != nil {
		return nil, err
	}
	schedule.FetchedAt = fetchedAt

	return schedule, nil
}

// Put replaces the whole stored schedule for a location; records are never
// updated piecewise.
func (r *Repository) Put(ctx context.Context, locationID string, schedule *engine.StoredSchedule) error {
	query := `
		INSERT INTO schedules (location_id, records, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (location_id) DO UPDATE
		SET records = EXCLUDED.records, fetched_at = EXCLUDED.fetched_at
	`

	raw, err := json.Marshal(schedule)
	if err != nil {
		return err
	}

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(queryCtx, query, locationID, raw, schedule.FetchedAt); err != nil {
		return err
	}

	// The marker lets the common path skip postgres; losing it only costs an
	// extra freshness query.
	markerCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	maxAge := time.Duration(r.cfg.Cache.MaxAgeHours) * time.Hour
	_ = r.redisClient.Set(markerCtx, freshnessKey(locationID), "1", maxAge).Err()

	return nil
}

// IsFresh reports whether the stored schedule is recent enough to serve
// without a refresh. The redis marker answers first; postgres decides when
// the marker is gone.
func (r *Repository) IsFresh(ctx context.Context, locationID string) (bool, error) {
	markerCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if _, err := r.redisClient.Get(markerCtx, freshnessKey(locationID)).Result(); err == nil {
		return true, nil
	} else if !errors.Is(err, redis.Nil) {
		return false, err
	}

	query := `
		SELECT fetched_at
		FROM schedules
		WHERE location_id = $1
	`

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var fetchedAt time.Time
	if err := r.dbpool.QueryRowContext(queryCtx, query, locationID).Scan(&fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	maxAge := time.Duration(r.cfg.Cache.MaxAgeHours) * time.Hour
	return time.Since(fetchedAt) < maxAge, nil
}

func freshnessKey(locationID string) string {
	return fmt.Sprintf("schedule_fresh_%s", locationID)
}
