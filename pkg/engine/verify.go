// Copyright 2025 Certen Protocol

package engine

import (
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/certen/repzk/internal/poseidon"
	"github.com/certen/repzk/internal/smt"
	"github.com/certen/repzk/pkg/groth16"
)

// derivePublicInput computes Poseidon(agent_id, commitment, threshold),
// the single public input the Groth16 layer checks against (spec §4.6).
func derivePublicInput(agentID, commitment [32]byte, threshold uint16) *big.Int {
	var agentFE, commitFE, thresholdFE fr.Element
	agentFE.SetBytes(agentID[:])
	commitFE.SetBytes(commitment[:])
	thresholdFE.SetUint64(uint64(threshold))

	digest := poseidon.Hash(agentFE, commitFE, thresholdFE)
	b := digest.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// VerifyProof runs one proof record through the full per-proof state
// machine: WIRE_IN -> PARSED -> POLICY_OK -> CRYPTO_OK -> ACCEPT, with
// exits to MALFORMED, EXPIRED, BELOW_THRESHOLD, BLACKLISTED, or
// INVALID_PROOF (spec §4.6). blacklistPath may be nil when no exclusion
// set is configured (zero BlacklistRoot).
func (c *Context) VerifyProof(data []byte, now time.Time, blacklistPath []smt.PathStep) (Result, error) {
	start := time.Now()
	cp := c.scratch.Arena().Mark()
	res, err := c.verifyProof(data, now, blacklistPath)
	c.scratch.Arena().Restore(cp)
	ok := res.Status == StatusOK
	c.stats.recordVerify(ok, time.Since(start).Microseconds(), uint64(c.scratch.Arena().PeakUsage()))
	return res, err
}

func (c *Context) verifyProof(data []byte, now time.Time, blacklistPath []smt.PathStep) (Result, error) {
	// WIRE_IN -> PARSED: stage the wire bytes in the scratch arena so the
	// parsed record's backing memory is reclaimed on the Restore above
	// rather than lingering as a caller-owned slice.
	staged := c.stageBytes(data)
	wp, err := ParseWireProof(staged)
	if err != nil {
		return Result{Status: StatusMalformed}, nil
	}
	res := Result{AgentID: wp.AgentID}

	// PARSED -> POLICY_OK: expiry
	if c.MaxProofAge > 0 {
		expiresAt := time.Unix(int64(wp.Timestamp), 0).Add(c.MaxProofAge)
		if expiresAt.Before(now) {
			res.Status = StatusExpired
			return res, nil
		}
	}

	// threshold
	if wp.Threshold < c.MinThreshold {
		res.Status = StatusBelowThreshold
		return res, nil
	}

	// blacklist
	var zeroRoot [32]byte
	if c.BlacklistRoot != zeroRoot {
		ok, err := smt.VerifyExclusion(c.BlacklistRoot, wp.Commitment, blacklistPath)
		if err != nil || !ok {
			res.Status = StatusBlacklisted
			return res, nil
		}
	}

	// POLICY_OK -> CRYPTO_OK
	if c.VK == nil {
		return Result{}, ErrNoVK
	}
	proof, err := wp.ToGroth16Proof()
	if err != nil {
		// A proof point off the curve or outside the subgroup fails the
		// cryptographic check rather than the wire parse.
		res.Status = StatusInvalidProof
		return res, nil
	}
	publicInput := derivePublicInput(wp.AgentID, wp.Commitment, wp.Threshold)

	if err := groth16.VerifySingle(c.VK, proof, []*big.Int{publicInput}); err != nil {
		res.Status = StatusInvalidProof
		return res, nil
	}

	// CRYPTO_OK -> ACCEPT
	res.Status = StatusOK
	return res, nil
}
