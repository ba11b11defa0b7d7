package repository

import (
	"context"

	"AvkuWeb/internal/domain/models"
)

// JarSource resolves a jar balance from one upstream.
type JarSource interface {
	Name() string
	FetchJar(ctx context.Context, sendID string) (*models.Jar, error)
}

// JarCache stores resolved jars per source namespace.
type JarCache interface {
	Get(ctx context.Context, namespace, sendID string) (*models.Jar, bool)
	Set(ctx context.Context, namespace, sendID string, j *models.Jar) error
}

// Notifier delivers a rendered contact message.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// SnapshotPublisher pushes snapshots to a stream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, s *models.JarSnapshot) error
	Close() error
}

// SnapshotStorage persists and queries snapshots.
type SnapshotStorage interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, s *models.JarSnapshot) error
	Query(ctx context.Context, sendID string, limit int) ([]*models.JarSnapshot, error)
	Close() error
}

// DictionaryLoader loads a flat translation dictionary for a language code.
type DictionaryLoader interface {
	Load(ctx context.Context, lang string) (map[string]string, error)
}

type Metrics interface {
	RecordLookup(source, result string)
	RecordCache(source string, hit bool)
	RecordContact(result string)
	RecordSnapshot(backend string)
	RecordBalance(source string, balance float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
