// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"sync"

	"kreads/internal/seqio"
)

// Task binds one opened read source to its group context; the context
// travels with every unit the source yields, so the callback knows
// which input group it is working for.
type Task[G any] struct {
	Source seqio.Source
	Group  G
}

// RunPool drains every task with one reader goroutine per task feeding
// a shared pool of worker goroutines, each invoking fn once per read or
// read pair. It blocks until all units are processed and all sources
// are closed. The first error from a reader or from fn cancels the
// pool and is returned; no ordering is guaranteed across units.
func RunPool[G any](ctx context.Context, tasks []Task[G], threads int, fn func(seqio.Pair, G) error) error {
	if threads < 1 {
		threads = 1
	}

	type job struct {
		pair  seqio.Pair
		group G
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		cerr error
	)
	fail := func(err error) {
		mu.Lock()
		if cerr == nil {
			cerr = err
			cancel()
		}
		mu.Unlock()
	}

	jobs := make(chan job, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					if err := fn(j.pair, j.group); err != nil {
						fail(err)
						return
					}
				}
			}
		}()
	}

	// Readers, one per task
	var rwg sync.WaitGroup
	rwg.Add(len(tasks))
	for _, t := range tasks {
		go func(t Task[G]) {
			defer rwg.Done()
			defer func() {
				if err := t.Source.Close(); err != nil {
					fail(err)
				}
			}()
			for {
				pair, err := t.Source.Next()
				if err == io.EOF {
					return
				}
				if err != nil {
					fail(err)
					return
				}
				select {
				case <-ctx.Done():
					return
				case jobs <- job{pair: pair, group: t.Group}:
				}
			}
		}(t)
	}

	rwg.Wait()
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}
