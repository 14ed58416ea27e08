// Package particles owns the particle population of one simulation episode.
//
// Particles have no identity beyond their slot in the store; nothing outside
// the store holds a reference to an individual particle.
package particles

import (
	"math"

	"github.com/san-kum/partfield/internal/dynamo"
)

// MaxParticles caps the lattice a single episode may allocate.
const MaxParticles = 1 << 24

type Particle struct {
	Pos dynamo.Vec2
	Vel dynamo.Vec2
}

// GridSize returns the lattice dimensions Populate uses for bounds and
// interval. Non-positive or non-finite inputs give an empty grid.
func GridSize(bounds dynamo.Rect, interval float32) (cols, rows int) {
	if !(interval > 0) || bounds.Empty() {
		return 0, 0
	}
	c := math.Floor(float64(bounds.Width / interval))
	r := math.Floor(float64(bounds.Height / interval))
	if math.IsInf(c, 0) || math.IsInf(r, 0) {
		return 0, 0
	}
	return int(c), int(r)
}

// LatticeSize is cols*rows for bounds and interval, computed in float64 so
// that oversized lattices can be rejected before anything is allocated.
func LatticeSize(bounds dynamo.Rect, interval float32) float64 {
	if !(interval > 0) || bounds.Empty() {
		return 0
	}
	return math.Floor(float64(bounds.Width/interval)) * math.Floor(float64(bounds.Height/interval))
}

type Store struct {
	items []Particle
	pool  *Pool
}

// NewStore returns an empty store. pool may be nil.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Populate replaces the contents with one resting particle per lattice cell,
// x-major: index = x*rows + y, position (x*interval, y*interval).
// A lattice larger than MaxParticles leaves the store empty.
func (s *Store) Populate(bounds dynamo.Rect, interval float32) int {
	s.Clear()
	if LatticeSize(bounds, interval) > MaxParticles {
		return 0
	}

	cols, rows := GridSize(bounds, interval)
	n := cols * rows
	if n == 0 {
		return 0
	}

	if s.pool != nil {
		s.items = s.pool.Get(n)
	} else {
		s.items = make([]Particle, 0, n)
	}

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			s.items = append(s.items, Particle{
				Pos: dynamo.Vec2{X: float32(x) * interval, Y: float32(y) * interval},
			})
		}
	}
	return len(s.items)
}

// Clear disposes every particle. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	if s.items == nil {
		return
	}
	if s.pool != nil {
		s.pool.Put(s.items)
	}
	s.items = nil
}

func (s *Store) Len() int { return len(s.items) }

// Particles returns the live slice. Callers may mutate elements in place but
// must not retain the slice past the next Populate or Clear.
func (s *Store) Particles() []Particle { return s.items }

// Positions appends every particle position to dst and returns it.
func (s *Store) Positions(dst []dynamo.Vec2) []dynamo.Vec2 {
	for i := range s.items {
		dst = append(dst, s.items[i].Pos)
	}
	return dst
}
