// Package shuffle builds random-order traversals on top of the permute
// package: the subnets of a network prefix, and endless index streams that
// reshuffle after every pass.
package shuffle

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/lanrat/shuffle/permute"
)

// Logger receives debug messages from this package when set.
var Logger func(format string, a ...any)

func v(format string, a ...any) {
	if Logger != nil {
		Logger(format, a...)
	}
}

// SubnetIterator visits every subnet of a given size within a network prefix
// exactly once, in random order.
type SubnetIterator struct {
	iter   *permute.RangeIter[uint64]
	prefix netip.Prefix
	bits   int
	count  uint64
}

// NewSubnetIterator creates an iterator over the /bits subnets of prefix.
//
// Returns an error if:
//   - prefix is invalid, or bits is smaller than the prefix length or larger
//     than the address length
//     (permute.ErrInvalidRange)
//   - there are more than 2^32 subnets (permute.ErrRangeTooLarge)
func NewSubnetIterator(src permute.Source, prefix netip.Prefix, bits int) (*SubnetIterator, error) {
	prefix = prefix.Masked()
	count, err := subnetCount(prefix, bits)
	if err != nil {
		return nil, err
	}
	iter, err := permute.RangeInclusive(src, 0, count-1)
	if err != nil {
		return nil, fmt.Errorf("subnets of %s: %w", prefix, err)
	}
	v("subnet iterator for %s with /%d subnets, pool size is %d", prefix, bits, count)
	return &SubnetIterator{
		iter:   iter,
		prefix: prefix,
		bits:   bits,
		count:  count,
	}, nil
}

// Next returns the next subnet.
// It returns false once every subnet has been returned.
func (it *SubnetIterator) Next() (netip.Prefix, bool) {
	i, ok := it.iter.Next()
	if !ok {
		return netip.Prefix{}, false
	}
	return nthSubnet(it.prefix, it.bits, i), true
}

// Size returns the total number of subnets.
func (it *SubnetIterator) Size() uint64 {
	return it.count
}

// Remaining returns the number of subnets not yet returned.
func (it *SubnetIterator) Remaining() uint64 {
	return it.iter.Remaining()
}

// subnetCount calculates the number of subnets of size newBits that fit in
// network, limited to what a single permutation can address.
func subnetCount(network netip.Prefix, newBits int) (uint64, error) {
	if !network.IsValid() || newBits < network.Bits() || newBits > network.Addr().BitLen() {
		return 0, fmt.Errorf("/%d subnets of %s: %w", newBits, network, permute.ErrInvalidRange)
	}
	additionalBits := newBits - network.Bits()
	if additionalBits > 32 {
		return 0, fmt.Errorf("/%d subnets of %s: %w", newBits, network, permute.ErrRangeTooLarge)
	}
	return 1 << additionalBits, nil
}

// nthSubnet returns the nth subnet of size newBits within network.
// n must be lower than the subnet count.
func nthSubnet(network netip.Prefix, newBits int, n uint64) netip.Prefix {
	if network.Addr().Is4() {
		return nthSubnetIPv4(network, newBits, n)
	}
	return nthSubnetIPv6(network, newBits, n)
}

func nthSubnetIPv4(network netip.Prefix, newBits int, n uint64) netip.Prefix {
	as4 := network.Addr().As4()
	baseInt := uint32(as4[0])<<24 | uint32(as4[1])<<16 | uint32(as4[2])<<8 | uint32(as4[3])

	shift := 32 - newBits
	subnetInt := baseInt + (uint32(n) << shift)

	newAddr := netip.AddrFrom4([4]byte{
		byte(subnetInt >> 24),
		byte(subnetInt >> 16),
		byte(subnetInt >> 8),
		byte(subnetInt),
	})
	return netip.PrefixFrom(newAddr, newBits)
}

// nthSubnetIPv6 uses big.Int for the 128-bit address arithmetic.
func nthSubnetIPv6(network netip.Prefix, newBits int, n uint64) netip.Prefix {
	shift := 128 - newBits

	as16 := network.Addr().As16()
	baseInt := new(big.Int).SetBytes(as16[:])

	nBig := new(big.Int).SetUint64(n)
	nBig.Lsh(nBig, uint(shift))
	subnetInt := baseInt.Add(baseInt, nBig)

	var addr16 [16]byte
	subnetInt.FillBytes(addr16[:])
	return netip.PrefixFrom(netip.AddrFrom16(addr16), newBits)
}
