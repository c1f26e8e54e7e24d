package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sikopifasta-backend/internal/infrastructure/logging"
)

const pingTimeout = 5 * time.Second

type Options struct {
	Addr     string
	Password string
	DB       int
}

// OpenRedis connects and pings. The caller owns the returned client.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	logging.Logger.WithField("addr", o.Addr).Info("redis: connected")
	return r, nil
}
