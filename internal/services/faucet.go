package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"spigot/internal/datastore"
	"spigot/internal/datastore/redis_store"
	"spigot/internal/interfaces"
	"spigot/internal/models"
	"spigot/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceFaucet struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB
	cache      caching.Cache
	rs         *redsync.Redsync
	limiter    interfaces.Limiter

	serviceConfig *ServiceConfig
}

func NewServiceFaucet(container *do.Injector) (*ServiceFaucet, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-feed")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceFaucet{container, redisDB, postgresDB, cache, rs, limiter, serviceConfig}, nil
}

// Claim grants the fixed faucet reward once per cooldown window. The
// per-user mutex serializes concurrent claims so two requests inside the
// window can never both pass the cooldown check.
func (service *ServiceFaucet) Claim(ctx context.Context, user *models.User) (*models.FaucetClaim, error) {
	err := service.limiter.Allow(ctx, LimitKeyFaucetClaim(user.ID), redis_rate.PerMinute(FAUCET_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyFaucetClaim(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrFaucetClaimLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()

	// read the primary here: a stale replica could re-open the window
	last, err := datastore.GetLastFaucetClaim(ctx, service.postgresDB, user.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	cooldownHours, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_FAUCET_COOLDOWN_HOURS, DEFAULT_FAUCET_COOLDOWN_HOURS)
	cooldown := time.Duration(cooldownHours) * time.Hour

	var lastClaimedAt *time.Time
	if last != nil {
		lastClaimedAt = &last.ClaimedAt
	}

	available, nextClaimAt := claimAvailable(lastClaimedAt, cooldown, now)
	if !available {
		return nil, errorx.Wrap(fmt.Errorf("faucet available again at %s", nextClaimAt.UTC().Format(time.RFC3339)), errorx.Invalid)
	}

	reward, _ := service.serviceConfig.GetFloatConfig(ctx, CONFIG_FAUCET_REWARD, DEFAULT_FAUCET_REWARD)

	claim := &models.FaucetClaim{
		UserID:    user.ID,
		ClaimedAt: now,
	}

	if err := datastore.InsertClaimAndCredit(ctx, service.postgresDB, claim, reward); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if err := service.cache.Delete(ctx, DBKeyUserBalance(user.ID)); err != nil {
		log.Println(err)
	}

	event := &models.ActivityEvent{
		Kind:      models.ActivityKindClaim,
		UserID:    user.ID,
		Amount:    reward,
		CreatedAt: now,
	}
	if err := redis_store.PushActivity(ctx, service.redisDB, event); err != nil {
		log.Println(err)
	}

	return claim, nil
}

// claimAvailable decides a rolling-window cooldown against wall-clock time
// and reports when the next claim opens.
func claimAvailable(last *time.Time, cooldown time.Duration, now time.Time) (bool, time.Time) {
	if last == nil {
		return true, now
	}

	next := last.Add(cooldown)
	if now.Before(next) {
		return false, next
	}

	return true, now
}
