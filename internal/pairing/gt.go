package pairing

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// GT is an element of the target group, the order-r subgroup of Fp12
// produced by the pairing. It supports multiply, equality, and identity
// test; nothing else is meaningful at this layer.
type GT struct {
	inner bn254.GT
}

// GTOne returns the GT identity.
func GTOne() GT {
	var g GT
	g.inner.SetOne()
	return g
}

// Mul returns a * b in GT.
func (a GT) Mul(b GT) GT {
	var out GT
	out.inner.Mul(&a.inner, &b.inner)
	return out
}

// Equal reports whether a == b.
func (a GT) Equal(b GT) bool {
	return a.inner.Equal(&b.inner)
}

// IsIdentity reports whether a is the GT identity element.
func (a GT) IsIdentity() bool {
	return a.Equal(GTOne())
}

// Bytes returns the opaque 384-byte encoding of the Fp12 element.
func (a GT) Bytes() [384]byte {
	return a.inner.Bytes()
}
