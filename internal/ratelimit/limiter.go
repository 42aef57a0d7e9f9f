// Package ratelimit ограничивает число запросов на ключ вызывающего в фиксированном окне.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const (
	DefaultLimit  int64 = 10
	DefaultPeriod       = time.Minute

	storePrefix = "promptfolio:ratelimit"
)

// AnonymousKey общий ключ для запросов без авторизации.
const AnonymousKey = "anonymous"

// Result состояние счётчика после учёта запроса.
type Result struct {
	Limit     int64
	Remaining int64
	// Reset unix-время окончания текущего окна.
	Reset   int64
	Reached bool
}

// Limiter считает запросы на ключ. Окно начинается с первого запроса и сбрасывается по истечении периода.
type Limiter struct {
	instance *limiter.Limiter
}

// New создаёт ограничитель поверх переданного хранилища счётчиков.
func New(store limiter.Store, limit int64, period time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if period <= 0 {
		period = DefaultPeriod
	}

	return &Limiter{
		instance: limiter.New(store, limiter.Rate{Period: period, Limit: limit}),
	}
}

// NewMemoryStore хранит счётчики в памяти процесса: они не разделяются между экземплярами
// и обнуляются при перезапуске.
func NewMemoryStore() limiter.Store {
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          storePrefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
}

// NewRedisStore хранит счётчики в Redis, общие для всех экземпляров сервиса.
func NewRedisStore(client *redis.Client) (limiter.Store, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   storePrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("ratelimit: redis store: %w", err)
	}
	return store, nil
}

// Allow учитывает запрос для ключа и сообщает, превышен ли лимит.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if key == "" {
		key = AnonymousKey
	}

	lctx, err := l.instance.Get(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: %w", err)
	}

	return Result{
		Limit:     lctx.Limit,
		Remaining: lctx.Remaining,
		Reset:     lctx.Reset,
		Reached:   lctx.Reached,
	}, nil
}
