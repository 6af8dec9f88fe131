package persist

import (
	"context"
	"fmt"
	"time"
)

// RunRecord is one generation run's summary, written once at shutdown.
type RunRecord struct {
	ServerName         string
	StartedAt          time.Time
	Ticks              int64
	ChunksCreated      int64
	PlatformsCommitted uint64
	PlatformsRejected  uint64
	PlatformsRemoved   uint64
	PeakLive           int
	FrontierY          float64
}

// RunRepo records run telemetry.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Insert writes one run record and returns its ID.
func (r *RunRepo) Insert(ctx context.Context, rec RunRecord) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO runs (
			server_name, started_at, ticks, chunks_created,
			platforms_committed, platforms_rejected, platforms_removed,
			peak_live, frontier_y
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rec.ServerName, rec.StartedAt, rec.Ticks, rec.ChunksCreated,
		int64(rec.PlatformsCommitted), int64(rec.PlatformsRejected), int64(rec.PlatformsRemoved),
		rec.PeakLive, rec.FrontierY,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}
