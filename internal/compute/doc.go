// Package compute provides the backends that fan a frame's particle updates
// out over index ranges.
//
//   - serial: one call covering every particle
//   - parallel: disjoint chunks run on an errgroup, joined before returning
//
// Both backends visit every index exactly once, and because each particle
// update reads only its own slot plus shared read-only data, they produce
// bit-identical results:
//
//	backend, _ := compute.New("parallel", 0)
//	err := backend.Range(len(ps), func(lo, hi int) error {
//	    for i := lo; i < hi; i++ { step(&ps[i]) }
//	    return nil
//	})
package compute
