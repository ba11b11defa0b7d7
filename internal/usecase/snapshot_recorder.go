package usecase

import (
	"context"
	"fmt"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
)

const (
	BackendNone       = "none"
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// SnapshotRecorder routes jar snapshots to the configured backend.
type SnapshotRecorder struct {
	pub     drepo.SnapshotPublisher
	store   drepo.SnapshotStorage
	metrics drepo.Metrics
	backend string
	now     func() time.Time
}

// NewSnapshotRecorder creates a recorder. pub and store may be nil when their backend is not selected.
func NewSnapshotRecorder(
	pub drepo.SnapshotPublisher,
	store drepo.SnapshotStorage,
	metrics drepo.Metrics,
	backend string,
) *SnapshotRecorder {
	if backend == "" {
		backend = BackendNone
	}
	return &SnapshotRecorder{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		now:     time.Now,
	}
}

// Backend returns the selected backend name.
func (r *SnapshotRecorder) Backend() string {
	return r.backend
}

// Record stores a snapshot of j observed now.
func (r *SnapshotRecorder) Record(ctx context.Context, j *models.Jar) error {
	if j == nil || r.backend == BackendNone {
		return nil
	}

	start := time.Now()
	s := models.NewSnapshot(j, r.now())

	var err error
	switch r.backend {
	case BackendKafka:
		if r.pub == nil {
			err = fmt.Errorf("kafka publisher not configured")
			break
		}
		err = r.pub.Publish(ctx, s)
	case BackendClickHouse:
		if r.store == nil {
			err = fmt.Errorf("clickhouse storage not configured")
			break
		}
		err = r.store.Store(ctx, s)
	default:
		err = fmt.Errorf("unknown backend: %s", r.backend)
	}

	if err != nil {
		r.metrics.RecordError("snapshot")
		return fmt.Errorf("record snapshot: %w", err)
	}

	r.metrics.RecordSnapshot(r.backend)
	r.metrics.RecordLatency("snapshot", time.Since(start).Seconds())
	return nil
}

// History returns stored snapshots of sendID, newest first.
func (r *SnapshotRecorder) History(ctx context.Context, sendID string, limit int) ([]*models.JarSnapshot, error) {
	if r.backend != BackendClickHouse || r.store == nil {
		return nil, models.ErrHistoryDisabled
	}
	if sendID == "" {
		return nil, models.ErrMissingSendID
	}
	out, err := r.store.Query(ctx, sendID, limit)
	if err != nil {
		r.metrics.RecordError("history")
		return nil, fmt.Errorf("query history: %w", err)
	}
	return out, nil
}

// Close closes underlying resources if available.
func (r *SnapshotRecorder) Close() {
	if r.pub != nil {
		_ = r.pub.Close()
	}
	if r.store != nil {
		_ = r.store.Close()
	}
}
