package qkd

import (
	"math/rand"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/qkdlab/qkdsim/qkd/bitseq"
)

// Measurement angles in degrees. The two sides overlap on 45° and 90°; only
// those positions contribute key bits. The remaining combinations are what a
// full E91 implementation would spend on a Bell-inequality test.
var (
	e91AliceAngles = [3]int{0, 45, 90}
	e91BobAngles   = [3]int{45, 90, 135}
)

func runE91(n int, pIntercept float64, rng *rand.Rand) *Result {
	aliceIdx := make([]int, n)
	bobIdx := make([]int, n)
	for i := 0; i < n; i++ {
		aliceIdx[i] = rng.Intn(len(e91AliceAngles))
		bobIdx[i] = rng.Intn(len(e91BobAngles))
	}

	var matched, mismatch bitseq.Dense
	for i := 0; i < n; i++ {
		eq := e91AliceAngles[aliceIdx[i]] == e91BobAngles[bobIdx[i]]
		matched.AppendBit(eq)
		mismatch.AppendBit(!eq)
	}

	// Alice's halves of the entangled pairs. At a shared angle Bob's
	// outcome is perfectly correlated with hers unless the eavesdropper
	// broke the entanglement; elsewhere his outcome is an independent coin
	// flip.
	aliceBits := bitseq.Random(rng, n)
	intercepted := bitseq.Biased(rng, n, pIntercept)
	flips := bitseq.Or(
		bitseq.And(bitseq.Random(rng, n), mismatch),
		bitseq.And(bitseq.Random(rng, n), intercepted),
	)
	bobBits := bitseq.XOr(aliceBits, flips)

	aliceSifted := bitseq.Select(aliceBits, matched)
	bobSifted := bitseq.Select(bobBits, matched)

	// Every matched pair participates in the correlation check; a violation
	// of the expected perfect correlation is the eavesdropping signal.
	agreements := make([]float64, 0, aliceSifted.Size())
	for i := 0; i < aliceSifted.Size(); i++ {
		if aliceSifted.Get(i) == bobSifted.Get(i) {
			agreements = append(agreements, 1)
		} else {
			agreements = append(agreements, 0)
		}
	}
	correlation := 1.0
	if len(agreements) > 0 {
		correlation = stat.Mean(agreements, nil)
	}
	errs := bitseq.CountOnes(bitseq.XOr(aliceSifted, bobSifted))
	var errRate float64
	if len(agreements) > 0 {
		errRate = float64(errs) / float64(len(agreements))
	}

	return &Result{
		Protocol:    E91,
		AliceBits:   aliceBits.Ints(),
		BobBits:     bobBits.Ints(),
		AliceBases:  e91AngleLabels(e91AliceAngles, aliceIdx),
		BobBases:    e91AngleLabels(e91BobAngles, bobIdx),
		Matched:     matched.Bools(),
		Intercepted: intercepted.Bools(),
		SharedKey:   bobSifted.Ints(),
		Metrics: Metrics{
			Matched:     bitseq.CountOnes(matched),
			KeyLength:   bobSifted.Size(),
			Sampled:     len(agreements),
			Errors:      errs,
			ErrorRate:   errRate,
			Correlation: correlation,
			Secure:      correlation >= e91SecureCorrelation,
		},
	}
}

func e91AngleLabels(angles [3]int, idx []int) []string {
	r := make([]string, 0, len(idx))
	for _, i := range idx {
		r = append(r, strconv.Itoa(angles[i])+"°")
	}
	return r
}
