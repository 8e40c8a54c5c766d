package services

import (
	"context"
	"database/sql"
	"errors"

	"spigot/internal/datastore"
	"spigot/internal/models"
	"spigot/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceBalance struct {
	container          *do.Injector
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceBalance(container *do.Injector) (*ServiceBalance, error) {
	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceBalance{container, readonlyPostgresDB, cache, readonlyCache}, nil
}

// GetBalance returns the current balance (0 when no ledger row exists) and
// the last faucet claim time (nil when never claimed). Pure read.
func (service *ServiceBalance) GetBalance(ctx context.Context, userID string) (*models.BalanceSummary, error) {
	if userID == "" {
		return nil, errorx.Wrap(errors.New("user id is required"), errorx.Validation)
	}

	callback := func() (*models.BalanceSummary, error) {
		summary := &models.BalanceSummary{}

		balance, err := datastore.GetUserBalance(ctx, service.readonlyPostgresDB, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if balance != nil {
			summary.Balance = balance.Balance
		}

		claim, err := datastore.GetLastFaucetClaim(ctx, service.readonlyPostgresDB, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if claim != nil {
			summary.LastClaimTime = &claim.ClaimedAt
		}

		return summary, nil
	}

	summary, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUserBalance(userID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return summary, nil
}
