// Package publisher pushes refreshed aggregation generations onto Redis
// streams so downstream consumers (notification workers, other services)
// see updates without polling our API. Publishing is optional: a nil
// publisher drops everything.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher publishes trend refresh events to per-sport streams
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a publisher on an existing Redis client.
// client may be nil, which disables publishing.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// PublishRefresh announces that a resource's generation for one sport
// scope was rebuilt. The payload rides along serialized so consumers
// need no follow-up read.
func (p *StreamPublisher) PublishRefresh(ctx context.Context, resource, scope string, payload interface{}) error {
	if p == nil || p.client == nil {
		return nil
	}

	streamKey := fmt.Sprintf("trends.updates.%s", scope)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s refresh: %w", resource, err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		MaxLen: 256,
		Approx: true,
		Values: map[string]interface{}{
			"resource": resource,
			"scope":    scope,
			"data":     string(data),
		},
	}).Err()
}
