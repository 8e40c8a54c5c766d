package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"spigot/internal/datastore"
	"spigot/internal/models"
	"spigot/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
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

	return &ServiceUser{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.User, error) {
	if userAuth == nil || userAuth.ID == "" {
		return nil, errors.New("missing user identity")
	}

	user, err := service.FindUserByID(ctx, userAuth.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if user != nil {
		if user.Username != strings.ToLower(userAuth.Username) && userAuth.Username != "" {
			user.Username = strings.ToLower(userAuth.Username)
			user.UpdatedAt = time.Now()
			if err := datastore.UpdateUserProfile(ctx, service.postgresDB, user); err != nil {
				log.Println(err)
			}
			_ = service.cache.Delete(ctx, DBKeyUser(user.ID))
		}
		return user, nil
	}

	now := time.Now()
	newUser := &models.User{
		ID:        userAuth.ID,
		Username:  strings.ToLower(userAuth.Username),
		CreatedAt: now,
		UpdatedAt: now,
	}

	log.Println("create new user:", newUser.ID)
	created, err := datastore.CreateUser(ctx, service.postgresDB, newUser)
	if err != nil {
		return nil, err
	}
	if !created {
		// a concurrent create won the insert; read its row instead of
		// reporting our candidate as new
		return datastore.FindUserByID(ctx, service.postgresDB, newUser.ID)
	}

	newUser.IsNewUser = true
	return newUser, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.readonlyPostgresDB, userID)
	}
	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUser(userID), CACHE_TTL_5_MINS, callback)
}
