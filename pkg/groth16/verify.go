package groth16

import (
	"errors"
	"math/big"

	"github.com/certen/repzk/internal/pairing"
)

// ErrWrongInputCount is returned when the number of public inputs does
// not satisfy k+1 = len(IC).
var ErrWrongInputCount = errors.New("groth16: wrong number of public inputs")

// ErrInvalidProof is the cryptographic-failure outcome: the proof parsed
// and its points passed subgroup checks, but the pairing equation did not
// hold.
var ErrInvalidProof = errors.New("groth16: pairing check failed")

// icAccumulate computes IC[0] + sum(inputs[i] * IC[i+1]) in G1 via MSM.
func icAccumulate(vk *VerifyingKey, inputs []*big.Int) (pairing.G1, error) {
	if len(inputs)+1 != len(vk.IC) {
		return pairing.G1{}, ErrWrongInputCount
	}
	if len(inputs) == 0 {
		return vk.IC[0], nil
	}
	combined, err := pairing.MSMG1(vk.IC[1:], inputs)
	if err != nil {
		return pairing.G1{}, err
	}
	return pairing.AddG1(vk.IC[0], combined), nil
}

// VerifySingle checks e(A,B) * e(-IC_acc,gamma) * e(-C,delta) = e(alpha,beta)
// via a three-term multi-pairing against the cached e(alpha,beta). Proof
// points were already subgroup-checked by ParseProof; this function only
// re-derives IC_acc and runs the pairing equation.
func VerifySingle(vk *VerifyingKey, proof *Proof, inputs []*big.Int) error {
	icAcc, err := icAccumulate(vk, inputs)
	if err != nil {
		return err
	}

	lhs, err := pairing.MultiPairing(
		pairing.Term(proof.A, proof.B),
		pairing.Term(pairing.NegG1(icAcc), vk.Gamma),
		pairing.Term(pairing.NegG1(proof.C), vk.Delta),
	)
	if err != nil {
		return err
	}

	if !lhs.Equal(vk.alphaBeta) {
		return ErrInvalidProof
	}
	return nil
}
