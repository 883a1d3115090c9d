package redis

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "vidtube:toggle:"

// Locker 基于 redsync 的互斥锁，串行化同一 (用户, 目标) 上的切换操作。
// 唯一索引仍然是正确性的保证，锁只用来减少重试
type Locker struct {
	rs    *redsync.Redsync
	ttl   time.Duration
	tries int
}

func NewLocker(client redis.UniversalClient, ttl time.Duration) *Locker {
	return &Locker{
		rs:    redsync.New(goredis.NewPool(client)),
		ttl:   ttl,
		tries: 8,
	}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	mutex := l.rs.NewMutex(lockKeyPrefix+key,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(l.tries),
		redsync.WithRetryDelay(l.ttl/time.Duration(l.tries*4)),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "lock %s", key)
	}
	return func(ctx context.Context) error {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			return errors.Wrapf(err, "unlock %s", key)
		}
		return nil
	}, nil
}
