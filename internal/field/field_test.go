package field

import "testing"

func mustElement(v uint64) Element {
	return FromUint64(v)
}

func TestAddSubRoundTrip(t *testing.T) {
	a := mustElement(12345)
	b := mustElement(98765)
	got := Sub(Add(a, b), b)
	if !Eq(got, a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestAddAssociative(t *testing.T) {
	a, b, c := mustElement(7), mustElement(11), mustElement(13)
	lhs := Add(Add(a, b), c)
	rhs := Add(a, Add(b, c))
	if !Eq(lhs, rhs) {
		t.Fatal("addition not associative")
	}
}

func TestMulIdentityAndZero(t *testing.T) {
	a := mustElement(424242)
	if !Eq(Mul(a, One()), a) {
		t.Fatal("a * 1 != a")
	}
	if !Mul(a, Zero()).IsZero() {
		t.Fatal("a * 0 != 0")
	}
}

func TestMulCommutativeAssociativeDistributive(t *testing.T) {
	a, b, c := mustElement(3), mustElement(1000003), mustElement(777)
	if !Eq(Mul(a, b), Mul(b, a)) {
		t.Fatal("multiplication not commutative")
	}
	if !Eq(Mul(Mul(a, b), c), Mul(a, Mul(b, c))) {
		t.Fatal("multiplication not associative")
	}
	lhs := Mul(a, Add(b, c))
	rhs := Add(Mul(a, b), Mul(a, c))
	if !Eq(lhs, rhs) {
		t.Fatal("multiplication does not distribute over addition")
	}
}

func TestInverse(t *testing.T) {
	a := mustElement(999983)
	inv := Inverse(a)
	if !Eq(Mul(a, inv), One()) {
		t.Fatal("a * inv(a) != 1")
	}
	if !Eq(Inverse(inv), a) {
		t.Fatal("inv(inv(a)) != a")
	}
}

func TestFromBytesToBytesRoundTrip(t *testing.T) {
	a := mustElement(123456789)
	b := a.Bytes()
	got := FromBytes(b)
	if !Eq(got, a) {
		t.Fatal("from_bytes(to_bytes(a)) != a")
	}
}

func TestMontRoundTrip(t *testing.T) {
	a := mustElement(55)
	m := ToMont(a)
	back := FromMont(m)
	if !Eq(back, a) {
		t.Fatal("from_mont(to_mont(a)) != a")
	}
}

func TestCmpOrdering(t *testing.T) {
	a := mustElement(5)
	b := mustElement(10)
	if Cmp(a, b) != -1 {
		t.Fatal("expected a < b")
	}
	if Cmp(b, a) != 1 {
		t.Fatal("expected b > a")
	}
	if Cmp(a, a) != 0 {
		t.Fatal("expected a == a")
	}
}

func TestBatchInverse(t *testing.T) {
	vals := []Element{mustElement(2), mustElement(3), mustElement(5), mustElement(7)}
	batched := BatchInverse(vals)
	for i, v := range vals {
		want := Inverse(v)
		if !Eq(batched[i], want) {
			t.Fatalf("batch inverse mismatch at %d", i)
		}
	}
}

func TestBatchInverseHandlesZero(t *testing.T) {
	vals := []Element{mustElement(2), Zero(), mustElement(5)}
	batched := BatchInverse(vals)
	if !batched[1].IsZero() {
		t.Fatal("inverse of zero should map to zero")
	}
	if !Eq(batched[0], Inverse(vals[0])) || !Eq(batched[2], Inverse(vals[2])) {
		t.Fatal("batch inverse mismatch around zero entry")
	}
}

func TestSecureZero(t *testing.T) {
	a := mustElement(42)
	SecureZero(&a)
	if !a.IsZero() {
		t.Fatal("secure_zero did not clear the element")
	}
}
