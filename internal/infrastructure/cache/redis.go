package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lending-ledger/internal/infrastructure/logging"
)

// dialTimeout bounds the startup ping.
const dialTimeout = 5 * time.Second

// OpenRedis connects the idempotency store and fails fast when it is unreachable.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  dialTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	logging.WithComponent("cache").Info("redis: connected")
	return r, nil
}

// HealthCheck adapts a client to the health check's PingContext contract.
type HealthCheck struct{ rdb redis.UniversalClient }

func NewHealthCheck(rdb redis.UniversalClient) HealthCheck { return HealthCheck{rdb: rdb} }

func (h HealthCheck) PingContext(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}
