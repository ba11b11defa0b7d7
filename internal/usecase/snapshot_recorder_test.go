package usecase

import (
	"context"
	"testing"
	"time"

	"AvkuWeb/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRecorderRoutesByBackend(t *testing.T) {
	ctx := context.Background()
	j := &models.Jar{SendID: "abc", Balance: 5, Source: models.SourceAPI}
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	pub, store := &fakePublisher{}, &fakeStorage{}

	kafka := NewSnapshotRecorder(pub, store, newMetrics(), BackendKafka)
	kafka.now = func() time.Time { return at }
	require.NoError(t, kafka.Record(ctx, j))
	require.Equal(t, 1, pub.Len())
	assert.Equal(t, at, pub.got[0].ObservedAt)
	assert.Empty(t, store.stored)

	ch := NewSnapshotRecorder(pub, store, newMetrics(), BackendClickHouse)
	require.NoError(t, ch.Record(ctx, j))
	assert.Len(t, store.stored, 1)
	assert.Equal(t, 1, pub.Len())

	none := NewSnapshotRecorder(nil, nil, newMetrics(), "")
	assert.Equal(t, BackendNone, none.Backend())
	assert.NoError(t, none.Record(ctx, j))
}

func TestSnapshotRecorderErrors(t *testing.T) {
	ctx := context.Background()
	j := &models.Jar{SendID: "abc"}

	assert.Error(t, NewSnapshotRecorder(nil, nil, newMetrics(), BackendKafka).Record(ctx, j))
	assert.Error(t, NewSnapshotRecorder(nil, nil, newMetrics(), "s3").Record(ctx, j))
	assert.Error(t, NewSnapshotRecorder(&fakePublisher{err: assert.AnError}, nil, newMetrics(), BackendKafka).Record(ctx, j))
}

func TestSnapshotRecorderHistory(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	r := NewSnapshotRecorder(nil, store, newMetrics(), BackendClickHouse)

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, r.Record(ctx, &models.Jar{SendID: "abc", Balance: i}))
	}
	require.NoError(t, r.Record(ctx, &models.Jar{SendID: "other", Balance: 99}))

	got, err := r.History(ctx, "abc", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Balance)
	assert.Equal(t, int64(2), got[1].Balance)

	_, err = NewSnapshotRecorder(&fakePublisher{}, nil, newMetrics(), BackendKafka).History(ctx, "abc", 10)
	assert.ErrorIs(t, err, models.ErrHistoryDisabled)

	r.Close()
	assert.True(t, store.closed)
}
