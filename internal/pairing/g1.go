// Copyright 2025 Certen Protocol
//
// Pairing - G1/G2/GT group operations and the optimal-ate pairing over
// BN254. Per spec §4.4 ("Implementation freedom"), group arithmetic and
// the pairing itself delegate to gnark-crypto's library-quality BN254
// engine; this package pins the exact contract the verifier core needs:
// subgroup discipline before any point reaches a pairing, constant-time
// scalar multiplication, and a shared-Miller-loop multi-pairing.

package pairing

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrNotOnCurve is returned when an untrusted point fails the curve
// equation check.
var ErrNotOnCurve = errors.New("pairing: point is not on curve")

// ErrNotInSubgroup is returned when an untrusted point is on the curve but
// outside the prime-order subgroup.
var ErrNotInSubgroup = errors.New("pairing: point is not in the prime-order subgroup")

// ErrLengthMismatch is returned by MSM and multi-pairing when the point
// and scalar/partner slices disagree in length.
var ErrLengthMismatch = errors.New("pairing: mismatched slice lengths")

// G1 is an affine point on the BN254 base curve y^2 = x^3 + 3, or the
// point at infinity.
type G1 struct {
	inner    bn254.G1Affine
	infinity bool
}

// G1Infinity returns the G1 identity element.
func G1Infinity() G1 {
	return G1{infinity: true}
}

// G1FromBytes decodes x||y, each 32 bytes big-endian, without validating
// the curve or subgroup membership — callers must call CheckG1 themselves
// before the point is trusted (the verify engine always does, per the
// subgroup discipline in spec §4.4).
func G1FromBytes(x, y [32]byte) (G1, error) {
	var p G1
	if x == ([32]byte{}) && y == ([32]byte{}) {
		p.infinity = true
		return p, nil
	}
	p.inner.X.SetBytes(x[:])
	p.inner.Y.SetBytes(y[:])
	return p, nil
}

// Bytes encodes the point as 32-byte big-endian x||y; the infinity point
// encodes as 64 zero bytes.
func (p G1) Bytes() (x, y [32]byte) {
	if p.infinity {
		return
	}
	return p.inner.X.Bytes(), p.inner.Y.Bytes()
}

// IsInfinity reports whether p is the identity element.
func (p G1) IsInfinity() bool {
	return p.infinity
}

// CheckG1 performs the on-curve check followed by the prime-order
// subgroup check required before any untrusted point enters a pairing.
func CheckG1(p G1) error {
	if p.infinity {
		return nil
	}
	if !p.inner.IsOnCurve() {
		return ErrNotOnCurve
	}
	if !p.inner.IsInSubGroup() {
		return ErrNotInSubgroup
	}
	return nil
}

// AddG1 returns a + b.
func AddG1(a, b G1) G1 {
	if a.infinity {
		return b
	}
	if b.infinity {
		return a
	}
	var out G1
	out.inner.Add(&a.inner, &b.inner)
	out.infinity = out.inner.IsInfinity()
	return out
}

// NegG1 returns -a.
func NegG1(a G1) G1 {
	if a.infinity {
		return a
	}
	var out G1
	out.inner.Neg(&a.inner)
	return out
}

func scalarToFr(scalar *big.Int) fr.Element {
	var e fr.Element
	e.SetBigInt(scalar)
	return e
}

// ScalarMulG1 computes scalar * p using gnark-crypto's constant-time
// scalar multiplication (a Montgomery ladder with masked conditional
// swaps internally).
func ScalarMulG1(p G1, scalar *big.Int) G1 {
	if p.infinity || scalar.Sign() == 0 {
		return G1Infinity()
	}
	var out G1
	out.inner.ScalarMultiplication(&p.inner, scalar)
	return out
}

// MSMG1 computes the linear combination sum(scalars[i] * points[i]) via
// gnark-crypto's Pippenger-style multi-scalar multiplication, which
// internally adapts its window size to n (the spec's 4/6/8-bit windows
// for small/medium/large batches).
func MSMG1(points []G1, scalars []*big.Int) (G1, error) {
	if len(points) != len(scalars) {
		return G1{}, ErrLengthMismatch
	}
	affine := make([]bn254.G1Affine, 0, len(points))
	frScalars := make([]fr.Element, 0, len(points))
	for i, p := range points {
		if p.infinity || scalars[i].Sign() == 0 {
			continue
		}
		affine = append(affine, p.inner)
		frScalars = append(frScalars, scalarToFr(scalars[i]))
	}
	if len(affine) == 0 {
		return G1Infinity(), nil
	}
	var out bn254.G1Affine
	if _, err := out.MultiExp(affine, frScalars, ecc.MultiExpConfig{}); err != nil {
		return G1{}, err
	}
	return G1{inner: out}, nil
}
