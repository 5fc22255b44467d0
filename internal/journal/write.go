package journal

import (
	"context"
	"fmt"
	"time"
)

// Hit is one emitted tracepoint hit.
type Hit struct {
	// Seq is the logical clock value stamped at emission. Seq order is
	// emission order.
	Seq int64

	// LoggedAt is the wall-clock time of the hit.
	LoggedAt time.Time

	// Location is the tracepoint's location spec.
	Location string

	// Line is the formatted log line exactly as written to the sink.
	Line string
}

// WriteHit inserts a hit record.
// Uses ON CONFLICT(seq) DO NOTHING for idempotency - a replayed seq is
// silently ignored.
func (j *Journal) WriteHit(ctx context.Context, hit Hit) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO hits (seq, logged_at, location, line)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		hit.Seq,
		hit.LoggedAt.UTC().Format(time.RFC3339Nano),
		hit.Location,
		hit.Line,
	)
	if err != nil {
		return fmt.Errorf("write hit: %w", err)
	}

	return nil
}
