// Copyright 2025 Certen Protocol
//
// Commitment - reputation score commitments and tier classification
//
// Adapted from the teacher's canonical commitment helpers (SHA-256 over
// canonical JSON) to the Poseidon-based binding this protocol uses:
// commitment = Poseidon(score, secret). Tier classification is a pure,
// caller-facing convenience and never consulted by the crypto core.

package commitment

import (
	"errors"

	"github.com/certen/repzk/internal/poseidon"
)

// MaxScore is the highest representable reputation score (spec §6).
const MaxScore = 10000

var (
	ErrScoreOutOfRange    = errors.New("commitment: score must be in [0, 10000]")
	ErrCommitmentMismatch = errors.New("commitment: recomputed commitment does not match claimed value")
)

// Tier is a reputation tier derived from a verified score. It is purely a
// caller-facing classification; the crypto core never branches on it.
type Tier int

const (
	TierNone Tier = iota
	TierBronze
	TierSilver
	TierGold
	TierPlatinum
)

func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "bronze"
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	default:
		return "none"
	}
}

// Tier thresholds from spec §6.
const (
	bronzeThreshold   = 2500
	silverThreshold   = 5000
	goldThreshold     = 7500
	platinumThreshold = 9000
)

// ClassifyTier maps a score in [0, 10000] to its reputation tier.
func ClassifyTier(score uint32) (Tier, error) {
	if score > MaxScore {
		return TierNone, ErrScoreOutOfRange
	}
	switch {
	case score >= platinumThreshold:
		return TierPlatinum, nil
	case score >= goldThreshold:
		return TierGold, nil
	case score >= silverThreshold:
		return TierSilver, nil
	case score >= bronzeThreshold:
		return TierBronze, nil
	default:
		return TierNone, nil
	}
}

// Compute returns Poseidon(score, secret), the Pedersen-style binding a
// prover publishes ahead of any later threshold proof. secret is a
// 32-byte blinding value interpreted as a field element.
func Compute(score uint32, secret [32]byte) ([32]byte, error) {
	if score > MaxScore {
		return [32]byte{}, ErrScoreOutOfRange
	}
	var scoreBytes [32]byte
	scoreBytes[28] = byte(score >> 24)
	scoreBytes[29] = byte(score >> 16)
	scoreBytes[30] = byte(score >> 8)
	scoreBytes[31] = byte(score)

	return poseidon.HashBytes(scoreBytes, secret), nil
}

// Verify recomputes Poseidon(score, secret) and compares it against a
// prover-claimed commitment. A mismatch is a caller-facing business
// outcome (spec §7, "Policy outcomes"), surfaced as ErrCommitmentMismatch
// at the outer API layer rather than inside the crypto core's
// verification path (spec §8 scenario 6).
func Verify(claimed [32]byte, score uint32, secret [32]byte) error {
	got, err := Compute(score, secret)
	if err != nil {
		return err
	}
	if got != claimed {
		return ErrCommitmentMismatch
	}
	return nil
}
