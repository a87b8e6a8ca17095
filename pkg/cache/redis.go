package cache

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stackgrid/pkg/errors"
)

// RedisConfig configures a [RedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "stackgrid:".
	Prefix string
	// DialTimeout bounds connection setup. Zero uses go-redis defaults.
	DialTimeout time.Duration
	// Backoff retries individual commands on connection errors. The zero
	// value uses a short policy suited to request paths.
	Backoff Backoff
}

// redisCommandBackoff keeps a flaky Redis from stalling a render for more
// than a fraction of a second.
var redisCommandBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond, MaxDelay: 200 * time.Millisecond}

// RedisCache stores entries in Redis so that several server instances share
// resolved grids and artifacts.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	backoff Backoff
	logger  *log.Logger
}

// NewRedisCache connects to Redis and verifies the connection with PING.
// Transient connection failures are retried with backoff.
func NewRedisCache(ctx context.Context, cfg RedisConfig, logger *log.Logger) (*RedisCache, error) {
	return newRedisCache(ctx, &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	}, cfg.Prefix, cfg.Backoff, logger)
}

// NewRedisCacheFromURL connects using a redis:// or rediss:// URL.
func NewRedisCacheFromURL(ctx context.Context, url string, logger *log.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid redis url")
	}
	return newRedisCache(ctx, opts, "", Backoff{}, logger)
}

func newRedisCache(ctx context.Context, opts *redis.Options, prefix string, backoff Backoff, logger *log.Logger) (*RedisCache, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if backoff.Attempts == 0 {
		backoff = redisCommandBackoff
	}
	c := &RedisCache{
		client:  redis.NewClient(opts),
		prefix:  prefix,
		backoff: backoff,
		logger:  logger,
	}

	err := RetryWithBackoff(ctx, func() error {
		if err := c.client.Ping(ctx).Err(); err != nil {
			c.logger.Debug("redis ping failed", "addr", opts.Addr, "err", err)
			return c.classify(err)
		}
		return nil
	})
	if err != nil {
		_ = c.client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", opts.Addr)
	}
	c.logger.Debug("redis cache connected", "addr", opts.Addr, "db", opts.DB)
	return c, nil
}

// Get retrieves a value from Redis. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := c.backoff.Retry(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return c.classify(err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeNetwork, err, "redis get %s", key)
	}
	return data, hit, nil
}

// Set stores a value in Redis with the given expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.backoff.Retry(ctx, func() error {
		return c.classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis set %s", key)
	}
	return nil
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.backoff.Retry(ctx, func() error {
		return c.classify(c.client.Del(ctx, c.prefix+key).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis del %s", key)
	}
	return nil
}

// Close closes the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection-level failures as retryable. Context errors
// and Redis server replies are returned as-is.
func (c *RedisCache) classify(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var redisErr redis.Error
	if stderrors.As(err, &redisErr) {
		return err
	}
	c.logger.Warn("redis unavailable, retrying", "err", err)
	return Retryable(stderrors.Join(ErrNetwork, err))
}

var _ Cache = (*RedisCache)(nil)
