package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis mirror TTLs. Snapshots are read by sibling services; they are
// advisory copies of the in-process generation, so expiring them is
// always safe.
const (
	SnapshotTrendsTTL      = 10 * time.Minute
	SnapshotPredictionsTTL = 30 * time.Minute
	SnapshotInjuriesTTL    = 1 * time.Hour
	SnapshotNewsTTL        = 1 * time.Hour
)

// SnapshotWriter mirrors aggregation generations to Redis.
// A nil writer is valid and drops every write, so the service runs
// without Redis in development.
type SnapshotWriter struct {
	client *redis.Client
}

// NewSnapshotWriter creates a new snapshot writer
func NewSnapshotWriter(client *redis.Client) *SnapshotWriter {
	return &SnapshotWriter{
		client: client,
	}
}

// WriteSnapshot stores one resource's latest generation for a sport.
// resource is "trends", "predictions", "injuries" or "news".
func (w *SnapshotWriter) WriteSnapshot(ctx context.Context, resource, sportKey string, payload interface{}, ttl time.Duration) error {
	if w == nil || w.client == nil {
		return nil
	}

	key := fmt.Sprintf("vantage:%s:%s", resource, sportKey)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s snapshot: %w", resource, err)
	}

	return w.client.Set(ctx, key, data, ttl).Err()
}
