package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrStopped = errors.New("pool is stopped")
	ErrPanic   = errors.New("task panicked")
)

type Task func() error

// Future is a handle to the eventual result of a task.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(err error) {
	f.err = err
	close(f.done)
}

// Done is closed as soon as the task returns.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the task completes and returns its error.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}

type job struct {
	task   Task
	future *Future
}

// Pool is a fixed set of workers draining a shared FIFO queue. The queue and the stop
// flag are guarded by a single mutex paired with a condition variable.
type Pool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []job
	stopping bool
	workers  sync.WaitGroup
	stopOnce sync.Once
	release  func() bool
}

// New starts n workers. Once ctx is done, the pool stops in background, so
// no new tasks are accepted afterward. Stop still must be called in order to wait
// for the workers.
func New(ctx context.Context, n int) *Pool {
	if n < 1 {
		n = 1
	}

	p := new(Pool)
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(n)

	for i := 0; i < n; i++ {
		go p.worker()
	}

	p.release = context.AfterFunc(ctx, p.halt)

	return p
}

// Enqueue appends the task to the queue. It fails with ErrStopped if the pool was
// stopped, the task isn't queued then.
func (p *Pool) Enqueue(task Task) (*Future, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopping {
		return nil, ErrStopped
	}

	future := newFuture()
	p.queue = append(p.queue, job{task: task, future: future})
	p.cond.Signal()

	return future, nil
}

// Stop rejects all the consequent tasks and blocks until every already queued one is
// completed and all the workers have exited. It's safe to call Stop multiple times
// and from multiple goroutines.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.release()
	})

	p.halt()
	p.workers.Wait()
}

// Len returns the number of tasks waiting in the queue.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

func (p *Pool) halt() {
	p.mu.Lock()
	p.stopping = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *Pool) worker() {
	defer p.workers.Done()

	for {
		j, ok := p.next()
		if !ok {
			return
		}

		j.future.resolve(run(j.task))
	}
}

// next blocks until there is a task to run. It returns false only when the pool is
// stopping and the queue is drained.
func (p *Pool) next() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.stopping {
		p.cond.Wait()
	}

	if len(p.queue) == 0 {
		return job{}, false
	}

	j := p.queue[0]
	p.queue[0] = job{}
	p.queue = p.queue[1:]

	return j, true
}

func run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return task()
}
