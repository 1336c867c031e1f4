package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := New[int64]()

	var (
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(42)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, locks.Size())
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	locks := New[int64]()

	unlockA := locks.Lock(1)
	// Другой ключ не должен блокироваться
	unlockB := locks.Lock(2)

	assert.Equal(t, 2, locks.Size())

	unlockB()
	unlockA()

	assert.Equal(t, 0, locks.Size())
}

func TestKeyLock_ReleasedKeysAreDropped(t *testing.T) {
	locks := New[int64]()

	for id := int64(1); id <= 1000; id++ {
		unlock := locks.Lock(id)
		unlock()
	}

	assert.Equal(t, 0, locks.Size())
}

func TestKeyLock_EntryKeptWhileWaiting(t *testing.T) {
	locks := New[int64]()

	unlock := locks.Lock(5)
	acquired := make(chan func())
	go func() {
		acquired <- locks.Lock(5)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock must wait for unlock")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	assert.Equal(t, 1, locks.Size())

	second := <-acquired
	second()
	assert.Equal(t, 0, locks.Size())
}
