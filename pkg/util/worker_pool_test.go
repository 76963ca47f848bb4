package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPseudoWorkerPool(t *testing.T) {
	p := NewPseudoWorkerPool()

	ran := false
	require.NoError(t, p.Submit(func() { ran = true }))
	require.True(t, ran, "pseudo pool must run the task in the caller's routine")

	p.Release()
	require.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}

func TestWorkerPool(t *testing.T) {
	p, err := NewWorkerPool(4)
	require.NoError(t, err)

	var (
		wg  sync.WaitGroup
		mtx sync.Mutex

		done int
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)

		require.NoError(t, p.Submit(func() {
			defer wg.Done()

			mtx.Lock()
			done++
			mtx.Unlock()
		}))
	}

	wg.Wait()
	require.Equal(t, 16, done)

	p.Release()
	require.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}
