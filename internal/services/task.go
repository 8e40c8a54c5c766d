package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"spigot/internal/datastore"
	"spigot/internal/models"
	"spigot/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrTaskAlreadyCompleted = errors.New("task already completed")

type ServiceTask struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceTask(container *do.Injector) (*ServiceTask, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

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

	return &ServiceTask{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceTask) ListTasks(ctx context.Context) ([]*models.Task, error) {
	callback := func() ([]*models.Task, error) {
		return datastore.GetEnabledTasks(ctx, service.readonlyPostgresDB)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTasks(), CACHE_TTL_15_MINS, callback)
}

func (service *ServiceTask) GetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	callback := func() (*models.Task, error) {
		return datastore.GetTaskByID(ctx, service.readonlyPostgresDB, taskID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTask(taskID), CACHE_TTL_15_MINS, callback)
}

// CompleteTask records a one-time completion and credits the task's reward.
// The read-then-check below is advisory; the unique index on
// (user_id, task_id) is the authoritative guard, and its violation maps to
// the same conflict error.
func (service *ServiceTask) CompleteTask(ctx context.Context, user *models.User, taskID int64) (*models.TaskCompletion, error) {
	if taskID <= 0 {
		return nil, errorx.Wrap(errors.New("task id is required"), errorx.Validation)
	}

	task, err := service.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(ErrTaskNotFound, errorx.NotExist)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	completed, err := datastore.HasCompletedTask(ctx, service.postgresDB, user.ID, taskID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if completed {
		return nil, errorx.Wrap(ErrTaskAlreadyCompleted, errorx.Invalid)
	}

	completion := &models.TaskCompletion{
		UserID:      user.ID,
		TaskID:      task.ID,
		CompletedAt: time.Now(),
	}

	err = datastore.CompleteTaskAndCredit(ctx, service.postgresDB, completion, task.Reward)
	if err != nil {
		if datastore.IsUniqueViolation(err) {
			return nil, errorx.Wrap(ErrTaskAlreadyCompleted, errorx.Invalid)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if err := service.cache.Delete(ctx, DBKeyUserBalance(user.ID)); err != nil {
		log.Println(err)
	}

	return completion, nil
}
