package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("every task exactly once", func(t *testing.T) {
		const tasks = 1000
		p := New(context.Background(), 8)
		counters := make([]atomic.Int32, tasks)
		futures := make([]*Future, 0, tasks)

		for i := 0; i < tasks; i++ {
			i := i
			future, err := p.Enqueue(func() error {
				counters[i].Add(1)
				return nil
			})
			require.NoError(t, err)
			futures = append(futures, future)
		}

		for _, future := range futures {
			require.NoError(t, future.Wait())
		}

		p.Stop()

		for i := range counters {
			require.Equal(t, int32(1), counters[i].Load(), "task %d", i)
		}
	})

	t.Run("stop drains the queue", func(t *testing.T) {
		p := New(context.Background(), 2)
		var completed atomic.Int32

		for i := 0; i < 20; i++ {
			_, err := p.Enqueue(func() error {
				time.Sleep(time.Millisecond)
				completed.Add(1)
				return nil
			})
			require.NoError(t, err)
		}

		p.Stop()
		require.Equal(t, int32(20), completed.Load())
		require.Zero(t, p.Len())
	})

	t.Run("enqueue after stop", func(t *testing.T) {
		p := New(context.Background(), 1)
		p.Stop()

		future, err := p.Enqueue(func() error { return nil })
		require.ErrorIs(t, err, ErrStopped)
		require.Nil(t, future)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		p := New(context.Background(), 4)
		var wg sync.WaitGroup

		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Stop()
			}()
		}

		wg.Wait()
		p.Stop()
	})

	t.Run("fifo dequeue", func(t *testing.T) {
		p := New(context.Background(), 1)
		block := make(chan struct{})
		_, err := p.Enqueue(func() error {
			<-block
			return nil
		})
		require.NoError(t, err)

		var order []int
		for i := 0; i < 10; i++ {
			i := i
			_, err = p.Enqueue(func() error {
				order = append(order, i)
				return nil
			})
			require.NoError(t, err)
		}

		close(block)
		p.Stop()
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	})

	t.Run("task error", func(t *testing.T) {
		p := New(context.Background(), 1)
		defer p.Stop()

		someErr := errors.New("some error")
		future, err := p.Enqueue(func() error {
			return someErr
		})
		require.NoError(t, err)
		require.ErrorIs(t, future.Wait(), someErr)
	})

	t.Run("panic doesn't kill the worker", func(t *testing.T) {
		p := New(context.Background(), 1)
		defer p.Stop()

		future, err := p.Enqueue(func() error {
			panic("oops")
		})
		require.NoError(t, err)
		require.ErrorIs(t, future.Wait(), ErrPanic)

		future, err = p.Enqueue(func() error { return nil })
		require.NoError(t, err)
		require.NoError(t, future.Wait())
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := New(ctx, 2)
		future, err := p.Enqueue(func() error { return nil })
		require.NoError(t, err)

		cancel()
		require.Eventually(t, func() bool {
			_, err := p.Enqueue(func() error { return nil })
			return errors.Is(err, ErrStopped)
		}, time.Second, time.Millisecond)

		p.Stop()
		select {
		case <-future.Done():
		default:
			require.Fail(t, "queued task wasn't completed")
		}
	})
}
