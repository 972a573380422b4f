package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"clubscheduler/internal/domain"
)

const keyPrefix = "clubscheduler:lock:"

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config controls lock lifetime and how long Acquire waits for a held key.
type Config struct {
	TTL   time.Duration
	Wait  time.Duration
	Retry time.Duration
}

// RedisLocker implements domain.Locker with SET NX PX and a token-checked release.
type RedisLocker struct {
	client redis.UniversalClient
	cfg    Config
}

// NewRedisClient connects to addr and verifies the connection with a ping.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisLocker(client redis.UniversalClient, cfg Config) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Retry <= 0 {
		cfg.Retry = 50 * time.Millisecond
	}
	return &RedisLocker{client: client, cfg: cfg}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	key = keyPrefix + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.cfg.Wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return l.release(ctx, key, token)
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, domain.ErrLockNotAcquired
		}

		t := time.NewTimer(l.cfg.Retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, errors.Join(domain.ErrLockNotAcquired, ctx.Err())
		case <-t.C:
		}
	}
}

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

var _ domain.Locker = (*RedisLocker)(nil)
