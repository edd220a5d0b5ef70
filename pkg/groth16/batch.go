// Copyright 2025 Certen Protocol
//
// Groth16 batch verification - random-linear-combination amortized check.
//
// For n proofs sharing a VK and public-input shape, draw fresh 128-bit
// random scalars r_1..r_n and check
//   prod_i e(r_i*A_i, B_i) * e(-IC_acc, gamma) * e(-sumC, delta) = e((sum_i r_i)*alpha, beta)
// in one (n+2)-term multi-pairing against a single pairing on the right.
// With 128-bit scalars, an adversarial invalid proof set passes with
// probability at most 2^-127 per batch (spec §4.5).

package groth16

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/certen/repzk/internal/pairing"
)

// MinBatchSize is the smallest n for which VerifyBatch runs the
// randomized check; below this, it verifies sequentially.
const MinBatchSize = 4

// randomScalarBits is the bit width of each per-proof batching scalar.
const randomScalarBits = 128

// ErrRNGFailure is fatal for the batch that requested it; no partial
// result is emitted per spec §4.5/§7.
var ErrRNGFailure = errors.New("groth16: failed to draw batch random scalars")

// ErrEmptyBatch is returned when VerifyBatch is called with no proofs.
var ErrEmptyBatch = errors.New("groth16: batch is empty")

func randomScalar() (*big.Int, error) {
	max := new(big.Int).Lsh(big.NewInt(1), randomScalarBits)
	r, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, err
	}
	// A zero scalar would drop a proof from the linear combination
	// entirely; resample rather than silently weakening the batch.
	if r.Sign() == 0 {
		return randomScalar()
	}
	return r, nil
}

// VerifyBatch checks n proofs sharing vk and the same public-input
// length. For n >= MinBatchSize it draws independent random scalars and
// runs the randomized multi-pairing check; for n < MinBatchSize it
// verifies sequentially (randomization only pays off once it replaces
// several separate pairings with one shared Miller loop). It returns a
// single bool: true iff every proof is valid. Callers that need to
// localize a failure within a batch call VerifySequential themselves.
func VerifyBatch(vk *VerifyingKey, proofs []*Proof, inputs [][]*big.Int) (bool, error) {
	n := len(proofs)
	if n == 0 {
		return false, ErrEmptyBatch
	}
	if len(inputs) != n {
		return false, ErrWrongInputCount
	}

	if n < MinBatchSize {
		for i := range proofs {
			if err := VerifySingle(vk, proofs[i], inputs[i]); err != nil {
				return false, nil
			}
		}
		return true, nil
	}

	scalars := make([]*big.Int, n)
	for i := range scalars {
		r, err := randomScalar()
		if err != nil {
			return false, ErrRNGFailure
		}
		scalars[i] = r
	}

	sumScalar := new(big.Int)
	sumC := pairing.G1Infinity()
	icAccWeighted := pairing.G1Infinity()
	weightedA := make([]pairing.G1, n)

	for i := 0; i < n; i++ {
		ri := scalars[i]
		sumScalar.Add(sumScalar, ri)

		weightedA[i] = pairing.ScalarMulG1(proofs[i].A, ri)

		icAcc, err := icAccumulate(vk, inputs[i])
		if err != nil {
			return false, err
		}
		icAccWeighted = pairing.AddG1(icAccWeighted, pairing.ScalarMulG1(icAcc, ri))
		sumC = pairing.AddG1(sumC, pairing.ScalarMulG1(proofs[i].C, ri))
	}

	terms := make([]pairing.PairingTerm, 0, n+2)
	for i := 0; i < n; i++ {
		terms = append(terms, pairing.Term(weightedA[i], proofs[i].B))
	}
	terms = append(terms, pairing.Term(pairing.NegG1(icAccWeighted), vk.Gamma))
	terms = append(terms, pairing.Term(pairing.NegG1(sumC), vk.Delta))

	lhs, err := pairing.MultiPairing(terms...)
	if err != nil {
		return false, err
	}

	sumAlpha := pairing.ScalarMulG1(vk.Alpha, sumScalar)
	rhs, err := pairing.Pair(sumAlpha, vk.Beta)
	if err != nil {
		return false, err
	}

	return lhs.Equal(rhs), nil
}

// VerifySequential verifies each proof independently, used as the
// fallback when a batch check fails (to localize which proof is invalid).
func VerifySequential(vk *VerifyingKey, proofs []*Proof, inputs [][]*big.Int) []error {
	results := make([]error, len(proofs))
	for i := range proofs {
		results[i] = VerifySingle(vk, proofs[i], inputs[i])
	}
	return results
}
