package pairing

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// Pair computes the optimal-ate pairing e(P, Q). Callers are responsible
// for running CheckG1/CheckG2 on untrusted inputs first; Pair itself does
// not re-validate subgroup membership, matching the cost model implied by
// spec §4.4 (the checks are a one-time gate before any pairing use).
func Pair(p G1, q G2) (GT, error) {
	if p.infinity || q.infinity {
		return GTOne(), nil
	}
	res, err := bn254.Pair([]bn254.G1Affine{p.inner}, []bn254.G2Affine{q.inner})
	if err != nil {
		return GT{}, err
	}
	return GT{inner: res}, nil
}

// PairingTerm is one (P, Q) factor of a multi-pairing product.
type PairingTerm struct {
	P G1
	Q G2
}

// Term builds a multi-pairing factor.
func Term(p G1, q G2) PairingTerm {
	return PairingTerm{P: p, Q: q}
}

// MultiPairing computes the product prod_i e(P_i, Q_i) via one shared
// Miller loop and a single final exponentiation — the performance-critical
// primitive the Groth16 layer uses for both single and batch verification.
func MultiPairing(terms ...PairingTerm) (GT, error) {
	affineP := make([]bn254.G1Affine, 0, len(terms))
	affineQ := make([]bn254.G2Affine, 0, len(terms))
	for _, t := range terms {
		if t.P.infinity || t.Q.infinity {
			continue
		}
		affineP = append(affineP, t.P.inner)
		affineQ = append(affineQ, t.Q.inner)
	}
	if len(affineP) == 0 {
		return GTOne(), nil
	}
	res, err := bn254.Pair(affineP, affineQ)
	if err != nil {
		return GT{}, err
	}
	return GT{inner: res}, nil
}
