package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress counts processed items and batches. It is safe for concurrent use.
type Progress struct {
	mu           sync.Mutex
	totalItems   int
	totalBatches int
	items        int
	batches      int
	started      time.Time
}

// Snapshot is a point-in-time copy of Progress.
type Snapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	Elapsed          time.Duration
}

// NewProgress starts tracking a run of totalItems split into totalBatches.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		started:      time.Now(),
	}
}

// Add records one finished batch of n items.
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items += n
	p.batches++
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.items,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.batches,
		Elapsed:          time.Since(p.started),
	}
}

// Percent returns completion in the range 0..100.
func (s Snapshot) Percent() float64 {
	if s.TotalItems == 0 {
		return 0
	}
	return float64(s.ProcessedItems) / float64(s.TotalItems) * percentMultiplier
}

// Done reports whether every item has been processed.
func (s Snapshot) Done() bool {
	return s.ProcessedItems >= s.TotalItems
}

// ItemsPerSecond is the observed throughput.
func (s Snapshot) ItemsPerSecond() float64 {
	secs := s.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(s.ProcessedItems) / secs
}
