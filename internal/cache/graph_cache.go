package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"paperdeck/internal/model"
)

// GraphCache handles Redis operations for computed graph analytics. Entries
// are whole snapshots: any condition change invalidates the paper's entry
// and the next read rebuilds from scratch.
type GraphCache interface {
	GetAnalytics(ctx context.Context, paperID string) (*model.GraphAnalytics, error)
	SetAnalytics(ctx context.Context, paperID string, analytics *model.GraphAnalytics) error
	Invalidate(ctx context.Context, paperID string) error
}

type graphCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGraphCache creates a new graph analytics cache
func NewGraphCache(client *redis.Client) GraphCache {
	return &graphCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *graphCache) analyticsKey(paperID string) string {
	return fmt.Sprintf("paper:%s:graph", paperID)
}

func (c *graphCache) GetAnalytics(ctx context.Context, paperID string) (*model.GraphAnalytics, error) {
	data, err := c.client.Get(ctx, c.analyticsKey(paperID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var analytics model.GraphAnalytics
	if err := json.Unmarshal([]byte(data), &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (c *graphCache) SetAnalytics(ctx context.Context, paperID string, analytics *model.GraphAnalytics) error {
	data, err := json.Marshal(analytics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.analyticsKey(paperID), data, c.ttl).Err()
}

func (c *graphCache) Invalidate(ctx context.Context, paperID string) error {
	return c.client.Del(ctx, c.analyticsKey(paperID)).Err()
}
