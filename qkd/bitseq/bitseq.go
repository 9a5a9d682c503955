// Package bitseq provides utilities for operating on densely-packed
// sequences of bits, as produced and consumed by the exchange simulations.
package bitseq

import (
	"fmt"
	"math/bits"
	"math/rand"
)

const byteSize = 8

// Random returns a Dense of n uniformly random bits drawn from r.
func Random(r *rand.Rand, n int) Dense {
	buf := make([]byte, BytesFor(n))
	r.Read(buf)
	return NewDense(buf, n)
}

// Biased returns a Dense of n bits where each bit is set independently with
// probability p.
func Biased(r *rand.Rand, n int, p float64) Dense {
	var d Dense
	for i := 0; i < n; i++ {
		d.AppendBit(r.Float64() < p)
	}
	return d
}

// FromString converts a string of '1's and '0's to a Dense. Spaces are
// ignored.
func FromString(s string) (Dense, error) {
	d := Dense{}
	for _, c := range s {
		switch c {
		case '1':
			d.AppendBit(true)
		case '0':
			d.AppendBit(false)
		case ' ':
			continue
		default:
			return Dense{}, fmt.Errorf("invalid bit string rep: %s", s)
		}
	}
	return d, nil
}

// CountOnes returns the total number of bits set in d.
func CountOnes(d Dense) int {
	var sum int
	for _, b := range d.bits {
		sum += bits.OnesCount8(b)
	}
	return sum
}

// Equal returns true iff a and b have the same length and contain the same
// bits.
func Equal(a, b Dense) bool {
	return a.len == b.len && CountOnes(XOr(a, b)) == 0
}

// BytesFor returns the number of bytes necessary to hold the provided number
// of bits.
func BytesFor(bits int) int {
	return (bits + byteSize - 1) / byteSize
}
