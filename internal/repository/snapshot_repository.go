package repository

import (
	"context"
	"database/sql"
	"fmt"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/internal/domain/repository"
	pkgkafka "AvkuWeb/pkg/kafka"
)

const SnapshotTable = "jar_snapshots"

// SchemaStatements returns the DDL for the snapshot table in database.
func SchemaStatements(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
	observed_at   DateTime64(3, 'UTC'),
	send_id       String,
	source        LowCardinality(String),
	title         String,
	currency_code UInt16,
	balance       Int64,
	goal          Nullable(Int64)
) ENGINE = MergeTree
ORDER BY (send_id, observed_at)
TTL toDateTime(observed_at) + INTERVAL 1 YEAR`, database, SnapshotTable),
	}
}

// ClickHouseStorage implements SnapshotStorage for ClickHouse.
type ClickHouseStorage struct {
	db       *sql.DB
	database string
	table    string
}

// NewClickHouseStorage creates ClickHouse storage writing to <database>.jar_snapshots.
// Closing the storage closes db.
func NewClickHouseStorage(db *sql.DB, database string) repository.SnapshotStorage {
	return &ClickHouseStorage{db: db, database: database, table: database + "." + SnapshotTable}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	for _, stmt := range SchemaStatements(s.database) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init snapshot schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseStorage) Store(ctx context.Context, snap *models.JarSnapshot) error {
	q := fmt.Sprintf("INSERT INTO %s (observed_at, send_id, source, title, currency_code, balance, goal) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	var goal sql.NullInt64
	if snap.Goal != nil {
		goal = sql.NullInt64{Int64: *snap.Goal, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, q,
		snap.ObservedAt,
		snap.SendID,
		snap.Source,
		snap.Title,
		uint16(snap.CurrencyCode),
		snap.Balance,
		goal,
	)
	return err
}

func (s *ClickHouseStorage) Query(ctx context.Context, sendID string, limit int) ([]*models.JarSnapshot, error) {
	q := fmt.Sprintf("SELECT observed_at, send_id, source, title, currency_code, balance, goal FROM %s WHERE send_id = ? ORDER BY observed_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, sendID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.JarSnapshot
	for rows.Next() {
		var (
			snap     models.JarSnapshot
			currency uint16
			goal     sql.NullInt64
		)
		if err := rows.Scan(&snap.ObservedAt, &snap.SendID, &snap.Source, &snap.Title, &currency, &snap.Balance, &goal); err != nil {
			return nil, err
		}
		snap.CurrencyCode = int(currency)
		if goal.Valid {
			snap.Goal = models.Int64Ptr(goal.Int64)
		}
		out = append(out, &snap)
	}
	return out, rows.Err()
}

// Close releases the connection pool. The storage owns db once constructed.
func (s *ClickHouseStorage) Close() error {
	return s.db.Close()
}

// KafkaPublisher implements SnapshotPublisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer) repository.SnapshotPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish writes s as JSON keyed by sendId so one jar stays on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, s *models.JarSnapshot) error {
	return p.producer.Publish(ctx, []byte(s.SendID), s)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
