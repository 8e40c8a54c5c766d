package redis_store

import (
	"context"

	"spigot/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	keyRecentActivity = "activity:recent"

	// the feed is a bounded ticker, not a durable log
	recentActivityMax = 50
)

func PushActivity(ctx context.Context, client redis.UniversalClient, event *models.ActivityEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}

	if err := client.LPush(ctx, keyRecentActivity, b).Err(); err != nil {
		return err
	}

	return client.LTrim(ctx, keyRecentActivity, 0, recentActivityMax-1).Err()
}

func GetRecentActivity(ctx context.Context, client redis.UniversalClient, limit int) ([]*models.ActivityEvent, error) {
	if limit <= 0 || limit > recentActivityMax {
		limit = recentActivityMax
	}

	values, err := client.LRange(ctx, keyRecentActivity, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*models.ActivityEvent, 0, len(values))
	for _, value := range values {
		var event models.ActivityEvent
		if err := msgpack.Unmarshal([]byte(value), &event); err != nil {
			continue
		}
		events = append(events, &event)
	}

	return events, nil
}
