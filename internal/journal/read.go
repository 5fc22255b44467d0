package journal

import (
	"context"
	"fmt"
	"time"
)

// ReadHits returns hits in seq order, optionally filtered by location.
// limit <= 0 means no limit.
func (j *Journal) ReadHits(ctx context.Context, location string, limit int) ([]Hit, error) {
	query := `SELECT seq, logged_at, location, line FROM hits`
	var args []any
	if location != "" {
		query += ` WHERE location = ?`
		args = append(args, location)
	}
	query += ` ORDER BY seq`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read hits: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var hit Hit
		var loggedAt string
		if err := rows.Scan(&hit.Seq, &loggedAt, &hit.Location, &hit.Line); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse hit timestamp %q: %w", loggedAt, err)
		}
		hit.LoggedAt = ts
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read hits: %w", err)
	}

	return hits, nil
}

// CountHits returns the total number of journaled hits.
func (j *Journal) CountHits(ctx context.Context) (int64, error) {
	var count int64
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hits`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count hits: %w", err)
	}
	return count, nil
}

// LocationCount is the number of hits journaled for one location.
type LocationCount struct {
	Location string
	Hits     int64
}

// CountByLocation returns per-location hit counts, most-hit first, ties
// broken by location for deterministic output.
func (j *Journal) CountByLocation(ctx context.Context) ([]LocationCount, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT location, COUNT(*) AS n
		FROM hits
		GROUP BY location
		ORDER BY n DESC, location
	`)
	if err != nil {
		return nil, fmt.Errorf("count by location: %w", err)
	}
	defer rows.Close()

	var counts []LocationCount
	for rows.Next() {
		var lc LocationCount
		if err := rows.Scan(&lc.Location, &lc.Hits); err != nil {
			return nil, fmt.Errorf("scan location count: %w", err)
		}
		counts = append(counts, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by location: %w", err)
	}

	return counts, nil
}

// MaxSeq returns the highest journaled seq, or 0 when the journal is
// empty. Used to resume the logical clock on an existing journal.
func (j *Journal) MaxSeq(ctx context.Context) (int64, error) {
	var max int64
	if err := j.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM hits`).Scan(&max); err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return max, nil
}
