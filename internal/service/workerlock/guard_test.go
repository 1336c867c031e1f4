package workerlock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type recordingLocker struct {
	mu     sync.Mutex
	locked []int64
	err    error
}

func (l *recordingLocker) LockWorker(_ context.Context, workerID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = append(l.locked, workerID)
	return l.err
}

func TestGuard_SerializesSameWorker(t *testing.T) {
	guard := NewGuard(passTx{}, &recordingLocker{})

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = guard.Do(context.Background(), 7, func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestGuard_LocksInStorage(t *testing.T) {
	locker := &recordingLocker{}
	guard := NewGuard(passTx{}, locker)

	called := false
	err := guard.Do(context.Background(), 3, func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []int64{3}, locker.locked)
}

func TestGuard_LockErrorSkipsFn(t *testing.T) {
	guard := NewGuard(passTx{}, &recordingLocker{err: errors.New("timeout")})

	called := false
	err := guard.Do(context.Background(), 3, func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLock)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.False(t, called)
}
