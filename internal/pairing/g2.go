package pairing

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G2 is an affine point over Fp2 = Fp[u]/(u^2+1) on the BN254 twist, or
// the point at infinity. Coordinates are stored as (x_re, x_im, y_re,
// y_im), matching the wire layout in spec §6.
type G2 struct {
	inner    bn254.G2Affine
	infinity bool
}

// G2Infinity returns the G2 identity element.
func G2Infinity() G2 {
	return G2{infinity: true}
}

// G2FromBytes decodes (x_re, x_im, y_re, y_im), each 32 bytes big-endian,
// without validating curve or subgroup membership; callers must call
// CheckG2 before the point is trusted.
func G2FromBytes(xRe, xIm, yRe, yIm [32]byte) (G2, error) {
	var p G2
	if xRe == ([32]byte{}) && xIm == ([32]byte{}) && yRe == ([32]byte{}) && yIm == ([32]byte{}) {
		p.infinity = true
		return p, nil
	}
	p.inner.X.A0.SetBytes(xRe[:])
	p.inner.X.A1.SetBytes(xIm[:])
	p.inner.Y.A0.SetBytes(yRe[:])
	p.inner.Y.A1.SetBytes(yIm[:])
	return p, nil
}

// Bytes encodes the point as (x_re, x_im, y_re, y_im); the infinity point
// encodes as 128 zero bytes.
func (p G2) Bytes() (xRe, xIm, yRe, yIm [32]byte) {
	if p.infinity {
		return
	}
	return p.inner.X.A0.Bytes(), p.inner.X.A1.Bytes(), p.inner.Y.A0.Bytes(), p.inner.Y.A1.Bytes()
}

// IsInfinity reports whether p is the identity element.
func (p G2) IsInfinity() bool {
	return p.infinity
}

// CheckG2 performs the on-curve check followed by the prime-order
// subgroup check required before any untrusted point enters a pairing.
func CheckG2(p G2) error {
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

// AddG2 returns a + b.
func AddG2(a, b G2) G2 {
	if a.infinity {
		return b
	}
	if b.infinity {
		return a
	}
	var out G2
	out.inner.Add(&a.inner, &b.inner)
	out.infinity = out.inner.IsInfinity()
	return out
}

// NegG2 returns -a.
func NegG2(a G2) G2 {
	if a.infinity {
		return a
	}
	var out G2
	out.inner.Neg(&a.inner)
	return out
}

// ScalarMulG2 computes scalar * p.
func ScalarMulG2(p G2, scalar *big.Int) G2 {
	if p.infinity || scalar.Sign() == 0 {
		return G2Infinity()
	}
	var out G2
	out.inner.ScalarMultiplication(&p.inner, scalar)
	return out
}
