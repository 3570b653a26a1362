package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned by AcquireLock when another owner holds the key.
var ErrLockHeld = errors.New("lock already held")

type Cache interface {
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error

	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	// AcquireLock sets key to a fresh owner token if it is free and returns
	// that token. ErrLockHeld means someone else owns it.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key string, owner string) error

	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	newID  func() string
}

// compare-and-delete so a lock that expired and was re-taken is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisCache(cfg config.RedisConfig, newID func() string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client, newID: newID}, nil
}

func (r *RedisCache) Client() *redis.Client {
	return r.client
}

func (r *RedisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, constants.RedisKeyLoginAttempt+key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= constants.MaxLoginAttempts, nil
}

func (r *RedisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	fullKey := constants.RedisKeyLoginAttempt + key
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, constants.BlockDuration)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, constants.RedisKeyLoginAttempt+key, ttl).Err()
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, constants.RedisKeyLoginAttempt+key).Err()
}

func (r *RedisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return r.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, 1, ttl).Err()
}

func (r *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	owner := r.newID()
	ok, err := r.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrLockHeld
	}
	return owner, nil
}

func (r *RedisCache) ReleaseLock(ctx context.Context, key string, owner string) error {
	return releaseScript.Run(ctx, r.client, []string{key}, owner).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
