package groth16

import (
	"fmt"

	"github.com/certen/repzk/internal/pairing"
)

// ProofSize is the uncompressed wire size of a Groth16 proof: A(64) +
// B(128) + C(64).
const ProofSize = 64 + 128 + 64

// Proof is (A in G1, B in G2, C in G1).
type Proof struct {
	A pairing.G1
	B pairing.G2
	C pairing.G1
}

// ParseProof decodes the 256-byte proof_points layout from spec §3/§6:
// A.x | A.y | B.x_re | B.x_im | B.y_re | B.y_im | C.x | C.y, each 32
// bytes big-endian. It validates every point on-curve and in-subgroup.
func ParseProof(data []byte) (*Proof, error) {
	if len(data) != ProofSize {
		return nil, fmt.Errorf("groth16: proof blob is %d bytes, want %d", len(data), ProofSize)
	}

	var ax, ay, bxRe, bxIm, byRe, byIm, cx, cy [32]byte
	copy(ax[:], data[0:32])
	copy(ay[:], data[32:64])
	copy(bxRe[:], data[64:96])
	copy(bxIm[:], data[96:128])
	copy(byRe[:], data[128:160])
	copy(byIm[:], data[160:192])
	copy(cx[:], data[192:224])
	copy(cy[:], data[224:256])

	a, err := pairing.G1FromBytes(ax, ay)
	if err != nil {
		return nil, fmt.Errorf("groth16: A: %w", err)
	}
	if err := pairing.CheckG1(a); err != nil {
		return nil, fmt.Errorf("groth16: A: %w", err)
	}

	b, err := pairing.G2FromBytes(bxRe, bxIm, byRe, byIm)
	if err != nil {
		return nil, fmt.Errorf("groth16: B: %w", err)
	}
	if err := pairing.CheckG2(b); err != nil {
		return nil, fmt.Errorf("groth16: B: %w", err)
	}

	c, err := pairing.G1FromBytes(cx, cy)
	if err != nil {
		return nil, fmt.Errorf("groth16: C: %w", err)
	}
	if err := pairing.CheckG1(c); err != nil {
		return nil, fmt.Errorf("groth16: C: %w", err)
	}

	return &Proof{A: a, B: b, C: c}, nil
}
