// Package batch splits large transaction sets into fixed-size batches so
// completion and aggregation run in bounded memory and report progress.
package batch

import (
	"context"
	"errors"
	"fmt"
)

// Batch size limits.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

var (
	// ErrInvalidBatchSize is returned by NewProcessor for a size outside
	// MinBatchSize..MaxBatchSize.
	ErrInvalidBatchSize = fmt.Errorf("batch size must be between %d and %d", MinBatchSize, MaxBatchSize)

	// ErrNilCallback is returned by Process when no callback is given.
	ErrNilCallback = errors.New("batch callback cannot be nil")
)

// Callback handles one batch. index is 0-based. The batch slice aliases the
// input, so writes through it are visible to the caller.
type Callback[T any] func(ctx context.Context, batch []T, index int) error

// ProgressFunc receives a snapshot after each batch.
type ProgressFunc func(Snapshot)

// Processor walks a slice in batches.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinBatchSize || size > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// NewProcessorWithDefaults returns a processor using DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{size: DefaultBatchSize}
}

// WithProgress registers fn to be called after every batch.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// Size returns the configured batch size.
func (p *Processor[T]) Size() int {
	return p.size
}

// Process calls cb for each batch of items in order and stops at the first
// error or when ctx is cancelled. An empty items slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, cb Callback[T]) error {
	if cb == nil {
		return ErrNilCallback
	}
	if len(items) == 0 {
		return nil
	}

	bounds := p.Bounds(len(items))
	progress := NewProgress(len(items), len(bounds))

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := items[b[0]:b[1]]
		if err := cb(ctx, batch, i); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress.Add(len(batch))
		if p.onProgress != nil {
			p.onProgress(progress.Snapshot())
		}
	}

	return nil
}

// Bounds returns the [start, end) index pairs of each batch over n items.
func (p *Processor[T]) Bounds(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	count := (n + p.size - 1) / p.size
	bounds := make([][2]int, count)
	for i := range count {
		start := i * p.size
		bounds[i] = [2]int{start, min(start+p.size, n)}
	}
	return bounds
}
