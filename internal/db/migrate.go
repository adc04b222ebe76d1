package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS events
(
	event_id     String,
	project_id   UInt64,
	issue        UInt64,
	environment  UInt64,
	release      Nullable(String),
	user_id      String,
	email        String,
	username     String,
	ip_address   String,
	timestamp    DateTime64(3, 'UTC'),
	tags Nested
	(
		key   String,
		value String
	),
	ingested_at  DateTime DEFAULT now()
)
ENGINE = MergeTree
PARTITION BY toYYYYMMDD(timestamp)
ORDER BY (project_id, issue, timestamp)
SETTINGS index_granularity = 8192;
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
