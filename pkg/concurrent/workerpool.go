// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool represents a pool of workers that can process jobs concurrently
type WorkerPool struct {
	workerCount int
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// A count of zero or less removes the limit: every function gets its own goroutine.
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = -1
	}
	return &WorkerPool{
		workerCount: workerCount,
	}
}

// Run executes all functions using errgroup with goroutine limiting.
// Each function receives the group context, which is cancelled as soon as
// one of them fails. Run returns the first error encountered.
func (wp *WorkerPool) Run(ctx context.Context, functions ...func(ctx context.Context) error) error {
	if len(functions) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workerCount)

	for _, fn := range functions {
		g.Go(func() error {
			// Check if context was cancelled before starting
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			return fn(groupCtx)
		})
	}

	return g.Wait()
}

// RunAll executes all functions without cancellation on error.
// The returned slice is aligned with functions: errs[i] is the result of
// functions[i], nil on success. A function that never started because ctx
// was already done reports ctx.Err().
func (wp *WorkerPool) RunAll(ctx context.Context, functions ...func(ctx context.Context) error) []error {
	if len(functions) == 0 {
		return nil
	}

	errs := make([]error, len(functions))

	g := new(errgroup.Group)
	g.SetLimit(wp.workerCount)

	for i, fn := range functions {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return nil
			default:
			}

			errs[i] = fn(ctx)
			return nil // Always return nil to prevent errgroup from short-circuiting
		})
	}

	_ = g.Wait()

	return errs
}
