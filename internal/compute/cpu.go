package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk keeps small populations on a single goroutine, where the
// scheduling cost would outweigh the work.
const DefaultMinChunk = 4096

type ParallelBackend struct {
	workers  int
	minChunk int
}

func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelBackend{workers: workers, minChunk: DefaultMinChunk}
}

// WithMinChunk overrides the smallest range handed to one goroutine.
func (p *ParallelBackend) WithMinChunk(n int) *ParallelBackend {
	if n < 1 {
		n = 1
	}
	p.minChunk = n
	return p
}

func (p *ParallelBackend) Name() string { return "parallel" }
func (p *ParallelBackend) Cleanup()     {}
func (p *ParallelBackend) Workers() int { return p.workers }

func (p *ParallelBackend) Range(n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if n <= p.minChunk || p.workers <= 1 {
		return fn(0, n)
	}

	workers := p.workers
	if n/p.minChunk < workers {
		workers = n / p.minChunk
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
