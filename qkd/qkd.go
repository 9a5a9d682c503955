// Package qkd simulates quantum key distribution exchanges between two
// parties, with an optional intercept-and-resend eavesdropper. The
// simulations are toys: qubits are uniform random bits, measurement is
// bit-mask algebra, and eavesdropping detection is a threshold comparison on
// an estimated error rate. Identical options always reproduce identical
// results.
package qkd

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	// DefaultInterceptProb is the per-qubit probability that the simulated
	// eavesdropper intercepts and resends.
	DefaultInterceptProb = 0.2

	// DefaultSampleProportion is the proportion of sifted bits sacrificed to
	// error rate estimation.
	DefaultSampleProportion = 0.5
)

const (
	// Error rate above which a BB84 exchange is considered compromised.
	bb84SecureQBER = 0.15

	// Correlation rate below which an E91 exchange is considered
	// compromised.
	e91SecureCorrelation = 0.7
)

// ErrQubitCount is returned when a simulation is requested for fewer than
// one qubit.
var ErrQubitCount = errors.New("qubit count must be at least 1")

// A Protocol selects which key distribution scheme to simulate.
type Protocol int

const (
	BB84 Protocol = iota
	E91
)

// String implements fmt.Stringer.
func (p Protocol) String() string {
	switch p {
	case BB84:
		return "BB84"
	case E91:
		return "E91"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ParseProtocol converts a case-insensitive protocol name to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BB84":
		return BB84, nil
	case "E91":
		return E91, nil
	}
	return 0, fmt.Errorf("unknown protocol: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Protocol) UnmarshalText(b []byte) error {
	parsed, err := ParseProtocol(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Options packages together the arguments for a single simulated exchange.
type Options struct {
	// Protocol selects the exchange scheme. Defaults to BB84.
	Protocol Protocol

	// Qubits is the number of qubits to exchange. Must be at least 1.
	Qubits int

	// Seed seeds the deterministic generator driving the simulation.
	// Ignored when Rand is non-nil.
	Seed int64

	// Rand overrides the simulation's randomness source. Optional.
	Rand *rand.Rand

	// InterceptProb is the per-qubit probability of an intercept-and-resend
	// by the eavesdropper. Defaults to DefaultInterceptProb. Negative values
	// disable the eavesdropper.
	InterceptProb float64

	// SampleProportion is the proportion of sifted bits compared during
	// error rate estimation. Defaults to DefaultSampleProportion. Negative
	// values skip estimation. Only meaningful for BB84; E91 compares every
	// matched pair.
	SampleProportion float64
}

// Metrics packages together the aggregate statistics of a simulated
// exchange.
type Metrics struct {
	// Matched is the number of positions where both parties measured in the
	// same basis.
	Matched int `json:"matched_count"`

	// KeyLength is the number of bits in the sifted shared key. Always
	// equal to Matched.
	KeyLength int `json:"key_length"`

	// Sampled and Errors describe the error estimation round: how many
	// sifted bits were compared and how many disagreed.
	Sampled int `json:"sampled_count"`
	Errors  int `json:"error_count"`

	// ErrorRate is Errors/Sampled, or 0 when nothing was sampled.
	ErrorRate float64 `json:"error_rate"`

	// Correlation is the agreement rate over the sampled bits.
	Correlation float64 `json:"correlation_rate"`

	// Secure reports whether the error rate stayed below the protocol's
	// detection threshold.
	Secure bool `json:"channel_secure"`

	// Elapsed is the wall time the simulation took.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// A Result holds everything a single simulated exchange produced, ready for
// display.
type Result struct {
	Protocol Protocol `json:"protocol"`

	// Per-qubit sequences, one entry per exchanged qubit.
	AliceBits          []int    `json:"alice_bits"`
	BobBits            []int    `json:"bob_bits"`
	AliceBases         []string `json:"alice_bases"`
	BobBases           []string `json:"bob_bases"`
	AlicePolarizations []string `json:"alice_polarizations,omitempty"`
	Matched            []bool   `json:"matched_bases"`
	Intercepted        []bool   `json:"intercepted"`

	// SharedKey is Bob's sifted bits, i.e. the bits retained at
	// matched-basis positions.
	SharedKey []int `json:"shared_key"`

	Metrics Metrics `json:"metrics"`
}

// Run performs one simulated key exchange and returns its full transcript.
// It is pure apart from the Elapsed metric: identical options produce
// identical results.
func Run(opts Options) (*Result, error) {
	start := time.Now()
	if opts.Qubits < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrQubitCount, opts.Qubits)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	pIntercept := opts.InterceptProb
	if pIntercept == 0 {
		pIntercept = DefaultInterceptProb
	}
	if pIntercept < 0 {
		pIntercept = 0
	}
	sampleProp := opts.SampleProportion
	if sampleProp == 0 {
		sampleProp = DefaultSampleProportion
	}
	if sampleProp < 0 {
		sampleProp = 0
	}

	var res *Result
	switch opts.Protocol {
	case BB84:
		res = runBB84(opts.Qubits, pIntercept, sampleProp, rng)
	case E91:
		res = runE91(opts.Qubits, pIntercept, rng)
	default:
		return nil, fmt.Errorf("unknown protocol: %v", opts.Protocol)
	}
	res.Metrics.Elapsed = time.Since(start)
	return res, nil
}
