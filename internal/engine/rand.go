package engine

import (
	"math/rand"
	"sync"
)

// Rand is the randomness source consumed by demand draws and scenario
// rolls. It is always injected so tests can script exact sequences; the
// engine never reaches for a package-level generator.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// lockedRand wraps math/rand with a mutex so one source can be shared by
// the request handlers and the timeout scanner.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a concurrency-safe Rand seeded with the given seed.
func NewRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
