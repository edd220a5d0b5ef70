package pairing

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

func genG1(t *testing.T) G1 {
	t.Helper()
	_, _, g1gen, _ := bn254.Generators()
	return G1{inner: g1gen}
}

func genG2(t *testing.T) G2 {
	t.Helper()
	_, _, _, g2gen := bn254.Generators()
	return G2{inner: g2gen}
}

func TestCheckG1AcceptsGenerator(t *testing.T) {
	g := genG1(t)
	if err := CheckG1(g); err != nil {
		t.Fatalf("generator should pass subgroup checks: %v", err)
	}
}

func TestCheckG1RejectsOffCurve(t *testing.T) {
	g := genG1(t)
	x, y := g.Bytes()
	y[31] ^= 0x01
	tampered, err := G1FromBytes(x, y)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := CheckG1(tampered); err == nil {
		t.Fatal("expected off-curve point to be rejected")
	}
}

func TestScalarMulAndNeg(t *testing.T) {
	g := genG1(t)
	two := ScalarMulG1(g, big.NewInt(2))
	doubled := AddG1(g, g)
	x1, y1 := two.Bytes()
	x2, y2 := doubled.Bytes()
	if x1 != x2 || y1 != y2 {
		t.Fatal("2*G != G+G")
	}
	sum := AddG1(g, NegG1(g))
	if !sum.IsInfinity() {
		t.Fatal("g + (-g) should be infinity")
	}
}

func TestPairingBilinearity(t *testing.T) {
	g1 := genG1(t)
	g2 := genG2(t)

	a := big.NewInt(7)
	b := big.NewInt(11)

	lhs, err := Pair(ScalarMulG1(g1, a), ScalarMulG2(g2, b))
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	ab := new(big.Int).Mul(a, b)
	rhs, err := Pair(ScalarMulG1(g1, ab), g2)
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	if !lhs.Equal(rhs) {
		t.Fatal("e(aG, bH) != e(abG, H)")
	}
}

func TestMultiPairingMatchesProductOfPairs(t *testing.T) {
	g1 := genG1(t)
	g2 := genG2(t)

	p1 := ScalarMulG1(g1, big.NewInt(3))
	p2 := ScalarMulG1(g1, big.NewInt(5))
	q1 := ScalarMulG2(g2, big.NewInt(9))
	q2 := ScalarMulG2(g2, big.NewInt(13))

	e1, err := Pair(p1, q1)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := Pair(p2, q2)
	if err != nil {
		t.Fatal(err)
	}
	want := e1.Mul(e2)

	got, err := MultiPairing(Term(p1, q1), Term(p2, q2))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatal("multi-pairing does not match product of individual pairings")
	}
}

func TestMSMG1MatchesScalarSum(t *testing.T) {
	g1 := genG1(t)
	p1 := ScalarMulG1(g1, big.NewInt(2))
	p2 := ScalarMulG1(g1, big.NewInt(3))

	got, err := MSMG1([]G1{p1, p2}, []*big.Int{big.NewInt(5), big.NewInt(7)})
	if err != nil {
		t.Fatal(err)
	}
	want := AddG1(ScalarMulG1(p1, big.NewInt(5)), ScalarMulG1(p2, big.NewInt(7)))
	gx, gy := got.Bytes()
	wx, wy := want.Bytes()
	if gx != wx || gy != wy {
		t.Fatal("MSM result does not match scalar-mul-then-add")
	}
}

func TestGTIdentity(t *testing.T) {
	if !GTOne().IsIdentity() {
		t.Fatal("GTOne should be identity")
	}
}
