package tools

import (
	"context"
	"sync"
)

// BatchExecutor runs one function per item with bounded concurrency.
type BatchExecutor struct {
	maxConcurrency int
}

func NewBatchExecutor(maxConcurrency int) *BatchExecutor {
	if maxConcurrency <= 0 {
		maxConcurrency = 5
	}
	return &BatchExecutor{
		maxConcurrency: maxConcurrency,
	}
}

// Process returns one result per item, in input order.
func (e *BatchExecutor) Process(ctx context.Context, items []BatchItem, fn func(ctx context.Context, item BatchItem) error) []BatchResult {
	results := make([]BatchResult, len(items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.maxConcurrency)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, itm BatchItem) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
				results[idx] = BatchResult{ID: itm.ID, Error: fn(ctx, itm)}
			case <-ctx.Done():
				results[idx] = BatchResult{
					ID:    itm.ID,
					Error: ctx.Err(),
				}
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

// FirstError returns the first failed result's error, if any.
func FirstError(results []BatchResult) error {
	for _, r := range results {
		if r.Error != nil {
			return r.Error
		}
	}
	return nil
}
