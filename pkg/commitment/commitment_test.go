package commitment

import "testing"

func TestComputeDeterministic(t *testing.T) {
	var secret [32]byte
	secret[0] = 0x42
	a, err := Compute(7500, secret)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(7500, secret)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("Compute is not deterministic")
	}
}

func TestComputeRejectsOutOfRangeScore(t *testing.T) {
	var secret [32]byte
	if _, err := Compute(MaxScore+1, secret); err != ErrScoreOutOfRange {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	var secret [32]byte
	secret[0] = 0x01
	claimed, err := Compute(5000, secret)
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(claimed, 5000, secret); err != nil {
		t.Fatalf("expected matching commitment to verify: %v", err)
	}
	if err := Verify(claimed, 5001, secret); err != ErrCommitmentMismatch {
		t.Fatalf("expected ErrCommitmentMismatch, got %v", err)
	}
}

func TestClassifyTier(t *testing.T) {
	cases := []struct {
		score uint32
		want  Tier
	}{
		{0, TierNone},
		{2499, TierNone},
		{2500, TierBronze},
		{4999, TierBronze},
		{5000, TierSilver},
		{7499, TierSilver},
		{7500, TierGold},
		{8999, TierGold},
		{9000, TierPlatinum},
		{10000, TierPlatinum},
	}
	for _, c := range cases {
		got, err := ClassifyTier(c.score)
		if err != nil {
			t.Fatalf("score %d: %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %d: got tier %v, want %v", c.score, got, c.want)
		}
	}
}

func TestClassifyTierRejectsOutOfRange(t *testing.T) {
	if _, err := ClassifyTier(MaxScore + 1); err != ErrScoreOutOfRange {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
}
