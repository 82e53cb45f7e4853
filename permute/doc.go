// Package permute provides memory-efficient iterators that visit integer
// ranges and slices in pseudo-random order without storing the permutation.
//
// The core is Engine, which generates a permutation of [0, max] for any
// 32-bit max using O(1) state and O(1) amortized work per value. The engine
// applies a bijective mixing function (two odd multiplications and two xors,
// all modulo 2^32) to a walking index over the smallest power-of-two domain
// that holds max+1 values, and skips mixed values that fall outside the
// range. Since that domain is less than twice as large as the range, fewer
// than two probes are needed per value on average.
//
// Adapters map the engine's output onto the caller's domain:
//   - Range, RangeFrom, RangeTo and RangeInclusive for every integer type
//   - Slice for the elements of a slice
//   - Indices for the indices of any indexable collection
//
// All constructors take a Source, read exactly five values from it and never
// touch it again. Domains that are empty or hold more than 2^32 values are
// rejected with an error before anything is read.
//
// Note: This package makes no claims about the statistical quality of the
// permutations, and the mixing function may change between versions. It does
// not provide cryptographic security.
//
// Example usage:
//
//	// Visit [0, 1000000) in random order
//	iter, err := permute.Range(rand.New(rand.NewPCG(1, 2)), 0, 1000000)
//	if err != nil {
//	    return err
//	}
//	for n := range iter.All() {
//	    // Process number
//	}
package permute
