package qkd

import "testing"

func TestE91Scenario(t *testing.T) {
	res, err := Run(Options{Protocol: E91, Qubits: 10, Seed: 42})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	checkInvariants(t, res, 10)
	if res.Protocol != E91 {
		t.Errorf("Protocol == %v, want E91", res.Protocol)
	}
	if len(res.AlicePolarizations) != 0 {
		t.Errorf("E91 produced polarization labels: %v", res.AlicePolarizations)
	}
	if got, want := res.Metrics.Secure, res.Metrics.Correlation >= 0.7; got != want {
		t.Errorf("Secure == %v, want %v for correlation %v", got, want, res.Metrics.Correlation)
	}
}

func TestE91AngleLabels(t *testing.T) {
	res, err := Run(Options{Protocol: E91, Qubits: 64, Seed: 9})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	aliceAngles := map[string]bool{"0°": true, "45°": true, "90°": true}
	bobAngles := map[string]bool{"45°": true, "90°": true, "135°": true}
	for i := range res.AliceBases {
		if !aliceAngles[res.AliceBases[i]] {
			t.Fatalf("alice angle %d is %q, want one of 0°/45°/90°", i, res.AliceBases[i])
		}
		if !bobAngles[res.BobBases[i]] {
			t.Fatalf("bob angle %d is %q, want one of 45°/90°/135°", i, res.BobBases[i])
		}
		if got, want := res.Matched[i], res.AliceBases[i] == res.BobBases[i]; got != want {
			t.Errorf("Matched[%d] == %v, want %v for angles %q/%q",
				i, got, want, res.AliceBases[i], res.BobBases[i])
		}
	}
}

func TestE91WithoutEavesdropper(t *testing.T) {
	res, err := Run(Options{Protocol: E91, Qubits: 256, Seed: 42, InterceptProb: -1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	checkInvariants(t, res, 256)
	// Intact entanglement means perfect correlation at shared angles.
	if res.Metrics.Correlation != 1 {
		t.Errorf("Correlation == %v, want 1 without an eavesdropper", res.Metrics.Correlation)
	}
	if !res.Metrics.Secure {
		t.Errorf("Secure == false, want true without an eavesdropper")
	}
	for i, m := range res.Matched {
		if m && res.AliceBits[i] != res.BobBits[i] {
			t.Errorf("matched position %d disagrees without an eavesdropper", i)
		}
	}
}

func TestE91EavesdropperBreaksCorrelation(t *testing.T) {
	res, err := Run(Options{Protocol: E91, Qubits: 2048, Seed: 42, InterceptProb: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	checkInvariants(t, res, 2048)
	if res.Metrics.Correlation > 0.7 {
		t.Errorf("Correlation == %v, want well below 0.7 with full interception", res.Metrics.Correlation)
	}
	if res.Metrics.Secure {
		t.Errorf("Secure == true, want false with full interception")
	}
}

func TestE91ComparesEveryMatchedPair(t *testing.T) {
	res, err := Run(Options{Protocol: E91, Qubits: 100, Seed: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Metrics.Sampled != res.Metrics.KeyLength {
		t.Errorf("Sampled == %d, want KeyLength == %d", res.Metrics.Sampled, res.Metrics.KeyLength)
	}
}
