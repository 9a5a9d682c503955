package bitseq

import "fmt"

// And returns the bitwise AND of two bit sequences. If one is shorter than
// the other, trailing zeros are implied to make the sizes match.
func And(a, b Dense) Dense {
	short := a
	if b.len < a.len {
		short = b
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(short.len)),
		len:  short.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, a.bits[i]&b.bits[i])
	}
	r.clearTail()
	return r
}

// Or returns the bitwise OR of two bit sequences. If one is shorter than the
// other, trailing zeros are implied to make the sizes match.
func Or(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, a.bits[i]|b.bits[i])
	}
	for i := len(short.bits); i < len(long.bits); i++ {
		r.bits = append(r.bits, long.bits[i])
	}
	return r
}

// XOr returns the bitwise XOR of two bit sequences. If one is shorter than
// the other, trailing zeros are implied to make the sizes match.
func XOr(a, b Dense) Dense {
	short, long := a, b
	if b.len < a.len {
		short, long = b, a
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(long.len)),
		len:  long.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, a.bits[i]^b.bits[i])
	}
	for i := len(short.bits); i < len(long.bits); i++ {
		r.bits = append(r.bits, long.bits[i]) // 0^v == v
	}
	return r
}

// XNor returns the bitwise equality of two bit sequences, truncated to the
// shorter of the two.
func XNor(a, b Dense) Dense {
	short := a
	if b.len < a.len {
		short = b
	}
	r := Dense{
		bits: make([]byte, 0, BytesFor(short.len)),
		len:  short.len,
	}
	for i := range short.bits {
		r.bits = append(r.bits, ^(a.bits[i] ^ b.bits[i]))
	}
	r.clearTail()
	return r
}

// Select selects the subset of bits from data at positions where mask is
// set.
func Select(data, mask Dense) Dense {
	var d Dense
	for i := 0; i < data.Size(); i++ {
		if !mask.Get(i) {
			continue
		}
		d.AppendBit(data.Get(i))
	}
	return d
}

// Slice copies bits [start, end) of d into a fresh sequence.
func Slice(d Dense, start, end int) (Dense, error) {
	if start < 0 {
		return Dense{}, fmt.Errorf("slicing bit sequence with negative start: %d", start)
	}
	if end < start {
		return Dense{}, fmt.Errorf("slicing bit sequence to negative length: %d", end-start)
	}
	if end > d.len {
		return Dense{}, fmt.Errorf("slicing bit sequence of len %d up to %d", d.len, end)
	}
	r := Dense{}
	for i := start; i < end; i++ {
		r.AppendBit(d.Get(i))
	}
	return r, nil
}
