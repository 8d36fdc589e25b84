// Package parallel fans independent per-sample work out over goroutines.
package parallel

import (
	"runtime"
	"sync"

	"github.com/born-ml/pullback/internal/vectorspace"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4, // A pullback per item is already coarse work.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
//
// A panic in any f(i) is re-raised on the calling goroutine once all
// workers have stopped.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		for i := range n {
			f(i)
		}
		return
	}

	var (
		wg        sync.WaitGroup
		once      sync.Once
		recovered any
	)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() { recovered = r })
				}
			}()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()

	if recovered != nil {
		panic(recovered)
	}
}

// Map returns f(i) for i in [0, n), in index order.
func Map[T any](n int, f func(i int) T, cfg Config) []T {
	out := make([]T, n)
	For(n, func(i int) {
		out[i] = f(i)
	}, cfg)
	return out
}

// Sum returns the sum of f(i) for i in [0, n). Terms are added in index
// order, so the result does not depend on scheduling. The sum of no terms
// is the zero of V.
func Sum[V vectorspace.Vector[V]](n int, f func(i int) V, cfg Config) V {
	return vectorspace.Sum(Map(n, f, cfg)...)
}
