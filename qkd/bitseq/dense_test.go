package bitseq

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestDenseGet(t *testing.T) {
	tcs := []struct {
		name  string
		d     Dense
		edata []bool
	}{
		{"aligned", mustDense(t, "10101010"), []bool{true, false, true, false, true, false, true, false}},
		{"multibyte",
			mustDense(t, "00000000 101"),
			[]bool{false, false, false, false, false, false, false, false, true, false, true}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var got []bool
			for i := 0; i < tc.d.Size(); i++ {
				got = append(got, tc.d.Get(i))
			}
			if !reflect.DeepEqual(got, tc.edata) {
				t.Errorf("d.Get() == %v, want %v", got, tc.edata)
			}
		})
	}
}

func TestDenseGetOutOfRange(t *testing.T) {
	d := mustDense(t, "111")
	if d.Get(3) {
		t.Errorf("d.Get(3) == true, want false for out-of-range read")
	}
	if d.Get(-1) {
		t.Errorf("d.Get(-1) == true, want false for out-of-range read")
	}
}

func TestNewDenseInferredLength(t *testing.T) {
	d := NewDense([]byte{0xFF, 0x01}, -1)
	if d.Size() != 16 {
		t.Errorf("d.Size() == %d, want 16", d.Size())
	}
	if CountOnes(d) != 9 {
		t.Errorf("CountOnes(d) == %d, want 9", CountOnes(d))
	}
}

func TestNewDenseClearsTail(t *testing.T) {
	// Bits past bitLen in the source data must not leak into counts.
	d := NewDense([]byte{0xFF}, 3)
	if CountOnes(d) != 3 {
		t.Errorf("CountOnes(d) == %d, want 3", CountOnes(d))
	}
}

func TestNewDenseCopies(t *testing.T) {
	src := []byte{0xFF}
	d := NewDense(src, 8)
	src[0] = 0
	if CountOnes(d) != 8 {
		t.Errorf("mutating source data changed the sequence: CountOnes == %d, want 8", CountOnes(d))
	}
}

func TestAppendBit(t *testing.T) {
	var d Dense
	for _, b := range []bool{true, false, true, true, false, false, true, false, true} {
		d.AppendBit(b)
	}
	want := mustDense(t, "10110010 1")
	if !Equal(d, want) {
		t.Errorf("built %v, want %v", d.Bools(), want.Bools())
	}
}

func TestFlip(t *testing.T) {
	d := mustDense(t, "1010")
	d.Flip(0)
	d.Flip(3)
	want := mustDense(t, "0011")
	if !Equal(d, want) {
		t.Errorf("flipped to %v, want %v", d.Bools(), want.Bools())
	}
}

func TestShuffle(t *testing.T) {
	d := mustDense(t, "11110000 11110000")
	before := CountOnes(d)
	d.Shuffle(rand.New(rand.NewSource(99)))
	if CountOnes(d) != before {
		t.Errorf("shuffle changed popcount: %d != %d", CountOnes(d), before)
	}
	if d.Size() != 16 {
		t.Errorf("shuffle changed size: %d != 16", d.Size())
	}

	// Identical seeds yield identical permutations.
	a := mustDense(t, "11001010 01101001")
	b := mustDense(t, "11001010 01101001")
	a.Shuffle(rand.New(rand.NewSource(4)))
	b.Shuffle(rand.New(rand.NewSource(4)))
	if !Equal(a, b) {
		t.Errorf("same-seed shuffles diverged: %v != %v", a.Bools(), b.Bools())
	}
}

func TestInts(t *testing.T) {
	d := mustDense(t, "1011")
	want := []int{1, 0, 1, 1}
	if got := d.Ints(); !reflect.DeepEqual(got, want) {
		t.Errorf("d.Ints() == %v, want %v", got, want)
	}
}
