package permute

// Source is a source of uniformly distributed 32-bit values.
//
// It is satisfied by *math/rand.Rand, *math/rand/v2.Rand and
// *golang.org/x/exp/rand.Rand, as well as by the sources in the
// github.com/lanrat/shuffle/source package. Constructors in this package
// only read from a Source while building an iterator.
type Source interface {
	Uint32() uint32
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func() uint32

// Uint32 calls f.
func (f SourceFunc) Uint32() uint32 {
	return f()
}
