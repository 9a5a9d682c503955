package qkd

import (
	"math/rand"

	"github.com/qkdlab/qkdsim/qkd/bitseq"
)

// Basis and polarization display symbols. The rectilinear basis is "+", the
// diagonal basis is "x"; a photon's polarization arrow depends on both the
// bit and the preparation basis.
var bb84Polarizations = [2][2]string{
	{"↑", "↗"}, // bit 0, bases {+, x}
	{"→", "↘"}, // bit 1, bases {+, x}
}

func runBB84(n int, pIntercept, sampleProp float64, rng *rand.Rand) *Result {
	aliceBits := bitseq.Random(rng, n)
	aliceBases := bitseq.Random(rng, n)
	bobBases := bitseq.Random(rng, n)
	intercepted := bitseq.Biased(rng, n, pIntercept)

	// Measuring in the wrong basis flips the received bit with probability
	// 1/2; an intercept-and-resend adds another independent coin flip.
	mismatch := bitseq.XOr(aliceBases, bobBases)
	flips := bitseq.Or(
		bitseq.And(bitseq.Random(rng, n), mismatch),
		bitseq.And(bitseq.Random(rng, n), intercepted),
	)
	bobBits := bitseq.XOr(aliceBits, flips)

	matched := bitseq.XNor(aliceBases, bobBases)
	aliceSifted := bitseq.Select(aliceBits, matched)
	bobSifted := bitseq.Select(bobBits, matched)

	sampled, errs := sampleDisagreements(aliceSifted, bobSifted, sampleProp, rng.Int63())
	var qber float64
	if sampled > 0 {
		qber = float64(errs) / float64(sampled)
	}

	return &Result{
		Protocol:           BB84,
		AliceBits:          aliceBits.Ints(),
		BobBits:            bobBits.Ints(),
		AliceBases:         bb84BasisLabels(aliceBases),
		BobBases:           bb84BasisLabels(bobBases),
		AlicePolarizations: polarizationLabels(aliceBits, aliceBases),
		Matched:            matched.Bools(),
		Intercepted:        intercepted.Bools(),
		SharedKey:          bobSifted.Ints(),
		Metrics: Metrics{
			Matched:     bitseq.CountOnes(matched),
			KeyLength:   bobSifted.Size(),
			Sampled:     sampled,
			Errors:      errs,
			ErrorRate:   qber,
			Correlation: 1 - qber,
			Secure:      qber <= bb84SecureQBER,
		},
	}
}

// sampleDisagreements estimates the error rate between Alice's and Bob's
// sifted bits by shuffling copies of both with a shared seed and comparing
// the trailing proportion of the two permutations. The key itself is left
// untouched.
func sampleDisagreements(a, b bitseq.Dense, proportion float64, seed int64) (sampled, errs int) {
	n := a.Size()
	k := int(proportion * float64(n))
	if k <= 0 {
		return 0, 0
	}
	ac := bitseq.NewDense(a.Data(), n)
	bc := bitseq.NewDense(b.Data(), n)
	ac.Shuffle(rand.New(rand.NewSource(seed)))
	bc.Shuffle(rand.New(rand.NewSource(seed)))
	as, err := bitseq.Slice(ac, n-k, n)
	if err != nil {
		return 0, 0
	}
	bs, err := bitseq.Slice(bc, n-k, n)
	if err != nil {
		return 0, 0
	}
	return k, bitseq.CountOnes(bitseq.XOr(as, bs))
}

func bb84BasisLabels(bases bitseq.Dense) []string {
	r := make([]string, 0, bases.Size())
	for i := 0; i < bases.Size(); i++ {
		if bases.Get(i) {
			r = append(r, "x")
		} else {
			r = append(r, "+")
		}
	}
	return r
}

func polarizationLabels(bits, bases bitseq.Dense) []string {
	r := make([]string, 0, bits.Size())
	for i := 0; i < bits.Size(); i++ {
		bit, basis := 0, 0
		if bits.Get(i) {
			bit = 1
		}
		if bases.Get(i) {
			basis = 1
		}
		r = append(r, bb84Polarizations[bit][basis])
	}
	return r
}
