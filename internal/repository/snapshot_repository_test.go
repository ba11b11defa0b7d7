package repository

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"AvkuWeb/internal/domain/models"
	pkgch "AvkuWeb/pkg/clickhouse"
	pkgkafka "AvkuWeb/pkg/kafka"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	msgs []kafka.Message
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error { return nil }

func TestKafkaPublisherKeysBySendID(t *testing.T) {
	w := &memWriter{}
	producer, err := pkgkafka.NewProducer(pkgkafka.WithTopic("avku.jar-snapshots"), pkgkafka.WithWriter(w))
	require.NoError(t, err)

	pub := NewKafkaPublisher(producer)
	at := time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC)
	snap := models.NewSnapshot(&models.Jar{SendID: "abc", Balance: 42, Goal: models.Int64Ptr(100), Source: models.SourceAPI}, at)

	require.NoError(t, pub.Publish(context.Background(), snap))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "abc", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "abc", got["sendId"])
	assert.EqualValues(t, 42, got["balance"])
	assert.EqualValues(t, 100, got["goal"])
	assert.Equal(t, "monobank-api", got["source"])
	assert.Equal(t, "2025-05-01T08:30:00Z", got["observedAt"])

	require.NoError(t, pub.Close())
}

func TestSchemaStatements(t *testing.T) {
	stmts := SchemaStatements("avku")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS avku", stmts[0])
	assert.True(t, strings.HasPrefix(stmts[1], "CREATE TABLE IF NOT EXISTS avku.jar_snapshots"))
	assert.Contains(t, stmts[1], "goal          Nullable(Int64)")
}

func TestClickHouseStorageCloseReleasesPool(t *testing.T) {
	client, err := pkgch.NewClient(pkgch.WithHost("127.0.0.1"), pkgch.WithoutPing())
	require.NoError(t, err)

	store := NewClickHouseStorage(client.DB(), client.Database())
	require.NoError(t, store.Close())

	err = client.DB().PingContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")
}
