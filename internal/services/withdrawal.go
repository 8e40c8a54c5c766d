package services

import (
	"context"
	"errors"
	"log"
	"time"

	"spigot/internal/datastore"
	"spigot/internal/datastore/redis_store"
	"spigot/internal/interfaces"
	"spigot/internal/models"
	"spigot/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type ServiceWithdrawal struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB
	cache      caching.Cache
	rs         *redsync.Redsync
	limiter    interfaces.Limiter
	gateway    interfaces.PayoutGateway

	serviceConfig *ServiceConfig
}

func NewServiceWithdrawal(container *do.Injector) (*ServiceWithdrawal, error) {
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

	gateway, err := do.Invoke[interfaces.PayoutGateway](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceWithdrawal{container, redisDB, postgresDB, cache, rs, limiter, gateway, serviceConfig}, nil
}

// RequestWithdrawal is a two-phase operation. Phase one reserves funds:
// a guarded atomic debit plus a pending audit row, in one transaction,
// before any external call. Phase two settles against the payout provider;
// any failure, timeout included, flips the row to failed and refunds the
// reservation so funds are conserved.
func (service *ServiceWithdrawal) RequestWithdrawal(ctx context.Context, user *models.User, amount float64, walletAddress, currency string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, errorx.Wrap(errors.New("amount must be positive"), errorx.Validation)
	}
	if walletAddress == "" {
		return nil, errorx.Wrap(errors.New("wallet address is required"), errorx.Validation)
	}
	if currency == "" {
		currency = models.DefaultWithdrawalCurrency
	}

	err := service.limiter.Allow(ctx, LimitKeyWithdrawal(user.ID), redis_rate.PerMinute(WITHDRAWAL_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyWithdrawal(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrWithdrawalLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	withdrawal := &models.Withdrawal{
		Reference:     uuid.NewString(),
		UserID:        user.ID,
		Amount:        amount,
		Currency:      currency,
		WalletAddress: walletAddress,
		Status:        models.WithdrawalStatusPending,
		RequestedAt:   time.Now(),
	}

	if err := datastore.ReserveWithdrawal(ctx, service.postgresDB, withdrawal); err != nil {
		if errors.Is(err, datastore.ErrInsufficientBalance) {
			return nil, errorx.Wrap(ErrInsufficientBalance, errorx.Invalid)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.invalidateBalance(ctx, user.ID)

	return service.settle(ctx, withdrawal)
}

func (service *ServiceWithdrawal) settle(ctx context.Context, withdrawal *models.Withdrawal) (*models.Withdrawal, error) {
	callCtx, cancel := context.WithTimeout(ctx, PAYOUT_CALL_TIMEOUT)
	defer cancel()

	result, err := service.gateway.Send(callCtx, &interfaces.PayoutRequest{
		Reference:     withdrawal.Reference,
		Amount:        withdrawal.Amount,
		WalletAddress: withdrawal.WalletAddress,
		Currency:      withdrawal.Currency,
	})
	if err != nil {
		log.Println("payout failed:", withdrawal.Reference, err)
		// refund with a fresh context: the request context may be the
		// reason the call failed
		refundCtx, refundCancel := settlementContext()
		defer refundCancel()

		if refundErr := datastore.FailWithdrawalAndRefund(refundCtx, service.postgresDB, withdrawal); refundErr != nil {
			log.Println("refund failed:", withdrawal.Reference, refundErr)
			return nil, errorx.Wrap(refundErr, errorx.Service)
		}

		withdrawal.Status = models.WithdrawalStatusFailed
		service.invalidateBalance(refundCtx, withdrawal.UserID)

		return withdrawal, errorx.Wrap(errors.New("withdrawal failed, funds returned"), errorx.Service)
	}

	// the provider has paid; record it on a fresh context too, so a client
	// disconnect cannot leave a paid row pending for the reconciler to
	// refund
	markCtx, markCancel := settlementContext()
	defer markCancel()

	if err := datastore.MarkWithdrawalProcessed(markCtx, service.postgresDB, withdrawal.ID, result.TransactionID); err != nil {
		log.Println("mark processed failed:", withdrawal.Reference, err)
		return nil, errorx.Wrap(err, errorx.Service)
	}

	withdrawal.Status = models.WithdrawalStatusProcessed
	withdrawal.TransactionID = &result.TransactionID

	event := &models.ActivityEvent{
		Kind:      models.ActivityKindPayout,
		UserID:    withdrawal.UserID,
		Amount:    withdrawal.Amount,
		Currency:  withdrawal.Currency,
		CreatedAt: time.Now(),
	}
	if err := redis_store.PushActivity(markCtx, service.redisDB, event); err != nil {
		log.Println(err)
	}

	return withdrawal, nil
}

// settlementContext detaches post-payout bookkeeping from the request
// context. Once the provider call has resolved, the refund or the
// mark-processed write must run even if the client has disconnected.
func settlementContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// ReconcilePending fails and refunds withdrawals stuck pending beyond the
// configured deadline, typically after a crash between reserve and settle.
func (service *ServiceWithdrawal) ReconcilePending(ctx context.Context) (int, error) {
	deadlineMins, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_WITHDRAWAL_PENDING_DEADLINE_MINS, DEFAULT_WITHDRAWAL_PENDING_DEADLINE_MINS)
	before := time.Now().Add(-time.Duration(deadlineMins) * time.Minute)

	stale, err := datastore.GetStalePendingWithdrawals(ctx, service.postgresDB, before, 100)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, withdrawal := range stale {
		if err := datastore.FailWithdrawalAndRefund(ctx, service.postgresDB, withdrawal); err != nil {
			log.Println("reconcile failed:", withdrawal.Reference, err)
			continue
		}
		service.invalidateBalance(ctx, withdrawal.UserID)
		reconciled++
	}

	return reconciled, nil
}

func (service *ServiceWithdrawal) ListWithdrawals(ctx context.Context, userID string, limit, offset int) ([]*models.Withdrawal, error) {
	return datastore.GetWithdrawalsByUser(ctx, service.postgresDB, userID, limit, offset)
}

func (service *ServiceWithdrawal) invalidateBalance(ctx context.Context, userID string) {
	if err := service.cache.Delete(ctx, DBKeyUserBalance(userID)); err != nil {
		log.Println(err)
	}
}
