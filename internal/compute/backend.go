package compute

import (
	"fmt"
	"sort"

	"github.com/san-kum/partfield/internal/dynamo"
)

type Backend interface {
	Name() string
	// Range calls fn over disjoint [lo, hi) ranges covering [0, n) and
	// returns only after every call has finished.
	Range(n int, fn func(lo, hi int) error) error
	Cleanup()
}

var factories = map[string]func(workers int) Backend{
	"serial":   func(int) Backend { return NewSerialBackend() },
	"parallel": func(w int) Backend { return NewParallelBackend(w) },
}

// New builds the named backend. workers <= 0 means one per CPU.
func New(name string, workers int) (Backend, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownBackend, name)
	}
	return fn(workers), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string { return "serial" }
func (s *SerialBackend) Cleanup()     {}

func (s *SerialBackend) Range(n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	return fn(0, n)
}
