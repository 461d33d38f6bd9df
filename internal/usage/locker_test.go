package usage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	t.Parallel()
	locks := newKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("usage:a")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Zero(t, locks.size())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	t.Parallel()
	locks := newKeyedMutex()

	unlockA := locks.Lock("usage:a")
	// Must not block while a is held.
	unlockB := locks.Lock("usage:b")
	assert.Equal(t, 2, locks.size())

	unlockB()
	unlockA()
	assert.Zero(t, locks.size())
}
