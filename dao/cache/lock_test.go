package cache

import (
	"Moodboard/pkg/log"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestNewLockerFallsBackToLocal(t *testing.T) {
	_, ok := NewLocker(nil).(*LocalLocker)
	assert.True(t, ok)

	_, rdb := setupTestRedis(t)
	_, ok = NewLocker(rdb).(*RedisLocker)
	assert.True(t, ok)
}

func TestRedisLockerExclusive(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	locker := NewRedisLocker(rdb, time.Minute, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, SerialLockKey(5))
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:review:sno:5"))

	_, err = locker.Lock(ctx, SerialLockKey(5))
	assert.ErrorIs(t, err, ErrLockTimeout)

	// 其他序列号不受影响
	other, err := locker.Lock(ctx, SerialLockKey(6))
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists("lock:review:sno:5"))

	again, err := locker.Lock(ctx, SerialLockKey(5))
	require.NoError(t, err)
	again()
}

func TestRedisLockerDoesNotReleaseForeignLock(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	locker := NewRedisLocker(rdb, time.Second, 100*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), AllocLockKey)
	require.NoError(t, err)

	// 锁过期后被别人拿走
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(AllocLockKey, "someone-else"))

	unlock()
	got, err := mr.Get(AllocLockKey)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockerLogsFailedRelease(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := log.L
	log.L = zap.New(core)
	t.Cleanup(func() { log.L = prev })

	mr, rdb := setupTestRedis(t)
	locker := NewRedisLocker(rdb, time.Minute, 100*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), SerialLockKey(7))
	require.NoError(t, err)

	mr.Close()
	unlock()

	entries := logs.FilterMessage("release lock failed, waiting for ttl").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "lock:review:sno:7", entries[0].ContextMap()["key"])
}

func TestLocalLockerSerializes(t *testing.T) {
	locker := NewLocalLocker(time.Second)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int32
		maxSeen int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, SerialLockKey(1))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
}

func TestLocalLockerTimeoutAndCancel(t *testing.T) {
	locker := NewLocalLocker(50 * time.Millisecond)

	unlock, err := locker.Lock(context.Background(), SerialLockKey(2))
	require.NoError(t, err)
	defer unlock()

	_, err = locker.Lock(context.Background(), SerialLockKey(2))
	assert.ErrorIs(t, err, ErrLockTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Lock(ctx, SerialLockKey(2))
	assert.ErrorIs(t, err, context.Canceled)
}
