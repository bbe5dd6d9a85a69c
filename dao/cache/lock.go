package cache

import (
	"Moodboard/pkg/log"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	AllocLockKey = "lock:review:alloc"

	DefaultLockTTL  = 10 * time.Second
	DefaultLockWait = 3 * time.Second
	lockRetry       = 50 * time.Millisecond
)

// ErrLockTimeout 等待锁超时
var ErrLockTimeout = errors.New("lock wait timeout")

// SerialLockKey 单个序列号的写锁
func SerialLockKey(sno int64) string {
	return fmt.Sprintf("lock:review:sno:%d", sno)
}

// Locker 按 key 串行化写操作, 保证同一序列号同一时刻只有一个写者
type Locker interface {
	// Lock 阻塞到拿到锁或超过等待时间, 返回的 unlock 必须调用
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// NewLocker 配置了 redis 用分布式锁, 否则退化为进程内锁
func NewLocker(rdb *redis.Client) Locker {
	if rdb == nil {
		return NewLocalLocker(DefaultLockWait)
	}
	return NewRedisLocker(rdb, DefaultLockTTL, DefaultLockWait)
}

// RedisLocker SETNX + 过期时间, 释放时校验 token 防止误删别人的锁
type RedisLocker struct {
	redis *redis.Client
	ttl   time.Duration
	wait  time.Duration
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{redis: rdb, ttl: ttl, wait: wait}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// 请求 ctx 可能已取消, 释放锁用独立 ctx
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, l.redis, []string{key}, token).Err(); err != nil {
					log.L.Warn("release lock failed, waiting for ttl", zap.String("key", key), zap.Duration("ttl", l.ttl), zap.Error(err))
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}
}

// LocalLocker 单进程部署时使用
// slots 每个 key 一个容量为 1 的 channel, 不回收; 单进程下序列号数量有限, 可以接受
type LocalLocker struct {
	slots cmap.ConcurrentMap[string, chan struct{}]
	wait  time.Duration
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: cmap.New[chan struct{}](), wait: wait}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	slot := l.slots.Upsert(key, nil, func(exist bool, current, _ chan struct{}) chan struct{} {
		if exist {
			return current
		}
		return make(chan struct{}, 1)
	})

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrLockTimeout
	}
}
