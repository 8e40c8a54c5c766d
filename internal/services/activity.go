package services

import (
	"context"

	"spigot/internal/datastore/redis_store"
	"spigot/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

type ServiceActivity struct {
	redisDB redis.UniversalClient
}

func NewServiceActivity(container *do.Injector) (*ServiceActivity, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-feed")
	if err != nil {
		return nil, err
	}

	return &ServiceActivity{redisDB}, nil
}

func (service *ServiceActivity) Recent(ctx context.Context, limit int) ([]*models.ActivityEvent, error) {
	return redis_store.GetRecentActivity(ctx, service.redisDB, limit)
}
