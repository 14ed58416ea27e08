package particles

import "sync"

// Pool recycles particle slabs between episodes so that re-entering the
// simulation does not allocate a fresh backing array each time.
type Pool struct {
	pool sync.Pool
}

func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]Particle, 0)
				return &s
			},
		},
	}
}

// Get returns an empty slice with capacity of at least n.
func (p *Pool) Get(n int) []Particle {
	s := *p.pool.Get().(*[]Particle)
	if cap(s) < n {
		return make([]Particle, 0, n)
	}
	return s[:0]
}

func (p *Pool) Put(s []Particle) {
	if cap(s) == 0 {
		return
	}
	s = s[:cap(s)]
	for i := range s {
		s[i] = Particle{}
	}
	s = s[:0]
	p.pool.Put(&s)
}
