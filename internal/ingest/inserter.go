// Package ingest provides the write path that populates the analytics
// store. It is a sidecar to the query layer: nothing in the tag store
// depends on it.
package ingest

import (
	"context"
	"fmt"
	"sort"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/amos-lsl/sentry/internal/model"
)

// Inserter writes event batches to the analytics store.
type Inserter interface {
	InsertBatch(ctx context.Context, events []model.Event) error
}

type clickhouseInserter struct {
	conn clickhouse.Conn
}

// NewInserter creates an Inserter backed by ClickHouse.
func NewInserter(conn clickhouse.Conn) Inserter {
	return &clickhouseInserter{conn: conn}
}

const insertEventQuery = `
	INSERT INTO events (event_id, project_id, issue, environment, release, user_id, email, username, ip_address, timestamp, tags.key, tags.value)
`

func (i *clickhouseInserter) InsertBatch(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := i.conn.PrepareBatch(ctx, insertEventQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, event := range events {
		keys, values := splitTags(event.Tags)
		err := batch.Append(
			event.EventID,
			uint64(event.ProjectID),
			uint64(event.GroupID),
			uint64(event.Environment),
			nullIfEmpty(event.Release),
			event.UserID,
			event.Email,
			event.Username,
			event.IPAddress,
			event.Timestamp,
			keys,
			values,
		)
		if err != nil {
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// splitTags flattens a tag map into the parallel key/value arrays of the
// nested tags column, in key order.
func splitTags(tags map[string]string) ([]string, []string) {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = tags[key]
	}
	return keys, values
}

func nullIfEmpty(val string) interface{} {
	if val == "" {
		return nil
	}
	return val
}
