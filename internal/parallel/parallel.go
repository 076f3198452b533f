// Package parallel provides the bounded fan-out runner shared by every build
// phase: discovery, document processing, rendering, asset copying and link
// validation all schedule work through it.
package parallel

import (
	"fmt"
	"sync"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// DefaultWorkers is used when a caller passes a non-positive worker count.
const DefaultWorkers = 8

// Run fans items out over at most workers goroutines. Workers that return a
// nil result pointer contribute nothing to the output; result order is
// unspecified. Every worker runs to completion even after a failure, and all
// failures are collected into one aggregate error with item context.
func Run[T any, R any](items []T, workers int, fn func(T) (*R, error)) ([]R, error) {
	return RunWith(items, struct{}{}, workers, func(item T, _ struct{}) (*R, error) {
		return fn(item)
	})
}

// RunWith is Run with a shared read-only context value passed to every worker.
func RunWith[T any, C any, R any](items []T, shared C, workers int, fn func(T, C) (*R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	sem := make(chan struct{}, workers)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []R
		agg     = errors.NewAggregate("parallel run")
	)

	for _, item := range items {
		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			v, err := fn(item, shared)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				agg.Add(fmt.Errorf("%v: %w", item, err))
				return
			}
			if v != nil {
				results = append(results, *v)
			}
		}(item)
	}
	wg.Wait()

	if err := agg.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunVoid fans out workers that produce no results.
func RunVoid[T any](items []T, workers int, fn func(T) error) error {
	_, err := Run(items, workers, func(item T) (*struct{}, error) {
		return nil, fn(item)
	})
	return err
}
