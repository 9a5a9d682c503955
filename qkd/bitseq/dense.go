package bitseq

import "math/rand"

// A Dense is a bit sequence where every bit is explicitly represented.
type Dense struct {
	bits []byte
	len  int
}

// NewDense returns a new Dense whose data is a copy of data and whose length
// is bitLen. If bitLen is longer than data, trailing zeros are added. If
// bitLen is negative, it is inferred from data.
func NewDense(data []byte, bitLen int) Dense {
	if bitLen < 0 {
		bitLen = len(data) * byteSize
	}
	b := make([]byte, BytesFor(bitLen))
	copy(b, data)
	d := Dense{bits: b, len: bitLen}
	d.clearTail()
	return d
}

// Empty returns an empty bit sequence.
func Empty() Dense {
	return Dense{}
}

// Size returns the number of bits in d.
func (d Dense) Size() int {
	return d.len
}

// SizeBytes returns the number of bytes necessary to represent d.
func (d Dense) SizeBytes() int {
	return BytesFor(d.len)
}

// Data returns a copy of the bytes underlying d.
func (d Dense) Data() []byte {
	b := make([]byte, len(d.bits))
	copy(b, d.bits)
	return b
}

// Get returns the bit at idx. Out-of-range reads return false.
func (d Dense) Get(idx int) bool {
	if idx < 0 || idx >= d.len {
		return false
	}
	block := d.bits[idx/byteSize]
	return 0 < block&(1<<(idx%byteSize))
}

// AppendBit adds a single bit to the end of d.
func (d *Dense) AppendBit(bit bool) {
	i, pos := d.len/byteSize, d.len%byteSize
	d.len += 1
	if pos == 0 {
		d.bits = append(d.bits, 0)
	}
	if bit {
		d.bits[i] |= 1 << pos
	}
}

// Flip inverts the bit at idx.
func (d *Dense) Flip(idx int) {
	d.bits[idx/byteSize] ^= 1 << (idx % byteSize)
}

// Shuffle randomly permutes the contents of d, using r as a source of
// randomness.
func (d *Dense) Shuffle(r *rand.Rand) {
	r.Shuffle(d.len, d.swap)
}

func (d *Dense) swap(i, j int) {
	if d.Get(i) == d.Get(j) {
		return
	}
	d.Flip(i)
	d.Flip(j)
}

// Bools unpacks d into a slice of booleans.
func (d Dense) Bools() []bool {
	r := make([]bool, 0, d.len)
	for i := 0; i < d.len; i++ {
		r = append(r, d.Get(i))
	}
	return r
}

// Ints unpacks d into a slice of 0/1 ints.
func (d Dense) Ints() []int {
	r := make([]int, 0, d.len)
	for i := 0; i < d.len; i++ {
		if d.Get(i) {
			r = append(r, 1)
		} else {
			r = append(r, 0)
		}
	}
	return r
}

// clearTail zeroes any bits past len in the final byte, so that whole-byte
// operations see deterministic data.
func (d *Dense) clearTail() {
	off := d.len % byteSize
	if off == 0 || len(d.bits) == 0 {
		return
	}
	d.bits[len(d.bits)-1] &= 0xFF >> (byteSize - off)
}
