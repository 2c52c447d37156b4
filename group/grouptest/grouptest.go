// Package grouptest provides conformance checks shared by the [group.Group]
// implementations.
package grouptest

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/f3rmion/ringsig/group"
)

// failingReader fails every read.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func randomScalar(t *testing.T, g group.Group) group.Scalar {
	t.Helper()
	for {
		s, err := g.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if !s.IsZero() {
			return s
		}
	}
}

func randomPoint(t *testing.T, g group.Group) group.Point {
	t.Helper()
	return g.NewPoint().ScalarMult(randomScalar(t, g), g.Generator())
}

// TestScalar checks field arithmetic and the scalar encoding.
func TestScalar(t *testing.T, g group.Group) {
	t.Run("AddSub", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)

		sum := g.NewScalar().Add(a, b)
		diff := g.NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a := randomScalar(t, g)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		// a * a^-1 = 1, so (a * a^-1) * b = b
		product := g.NewScalar().Mul(a, aInv)
		b := randomScalar(t, g)
		if !g.NewScalar().Mul(product, b).Equal(b) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		if _, err := g.NewScalar().Invert(g.NewScalar()); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a := randomScalar(t, g)
		negA := g.NewScalar().Negate(a)
		if !g.NewScalar().Add(a, negA).IsZero() {
			t.Error("a + (-a) != 0")
		}
		if a.Equal(negA) {
			t.Error("a should not equal -a")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a := randomScalar(t, g)
		enc := a.Bytes()
		if len(enc) != g.ScalarSize() {
			t.Fatalf("encoding length %d, want %d", len(enc), g.ScalarSize())
		}
		restored, err := g.NewScalar().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("SetBytesRejectsOrder", func(t *testing.T) {
		order := g.Order()
		enc := make([]byte, g.ScalarSize())
		copy(enc[len(enc)-len(order):], order)
		if _, err := g.NewScalar().SetBytes(enc); !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("got %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("SetBytesRejectsLength", func(t *testing.T) {
		if _, err := g.NewScalar().SetBytes(make([]byte, g.ScalarSize()-1)); err == nil {
			t.Error("short encoding accepted")
		}
	})

	t.Run("SetUniformBytesReduces", func(t *testing.T) {
		// order+1 reduces to 1, and 1*b = b.
		order := g.Order()
		data := append([]byte{}, order...)
		for i := len(data) - 1; i >= 0; i-- {
			data[i]++
			if data[i] != 0 {
				break
			}
		}
		one := g.NewScalar().SetUniformBytes(data)
		b := randomScalar(t, g)
		if !g.NewScalar().Mul(one, b).Equal(b) {
			t.Error("order+1 did not reduce to 1")
		}
	})

	t.Run("Zeroize", func(t *testing.T) {
		a := randomScalar(t, g)
		a.Zeroize()
		if !a.IsZero() {
			t.Error("zeroized scalar is not zero")
		}
	})

	t.Run("NewScalarIsZero", func(t *testing.T) {
		if !g.NewScalar().IsZero() {
			t.Error("new scalar should be zero")
		}
	})

	t.Run("RandomScalarReaderFailure", func(t *testing.T) {
		if _, err := g.RandomScalar(failingReader{}); err == nil {
			t.Error("expected error from failing reader")
		}
	})
}

// TestPoint checks group law and the point encoding.
func TestPoint(t *testing.T, g group.Group) {
	t.Run("AddSub", func(t *testing.T) {
		P := randomPoint(t, g)
		Q := randomPoint(t, g)

		sum := g.NewPoint().Add(P, Q)
		diff := g.NewPoint().Sub(sum, Q)

		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		P := randomPoint(t, g)
		negP := g.NewPoint().Negate(P)
		if !g.NewPoint().Add(P, negP).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("ScalarMultDistributes", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)
		G := g.Generator()

		lhs := g.NewPoint().ScalarMult(g.NewScalar().Add(a, b), G)
		rhs := g.NewPoint().Add(g.NewPoint().ScalarMult(a, G), g.NewPoint().ScalarMult(b, G))
		if !lhs.Equal(rhs) {
			t.Error("(a+b)G != aG + bG")
		}
	})

	t.Run("ScalarMultByZero", func(t *testing.T) {
		P := randomPoint(t, g)
		if !g.NewPoint().ScalarMult(g.NewScalar(), P).IsIdentity() {
			t.Error("0*P != identity")
		}
	})

	t.Run("OrderAnnihilates", func(t *testing.T) {
		// (order-1)*G + G = identity
		one := g.NewScalar().SetUniformBytes([]byte{1})
		minusOne := g.NewScalar().Negate(one)
		P := g.NewPoint().ScalarMult(minusOne, g.Generator())
		if !g.NewPoint().Add(P, g.Generator()).IsIdentity() {
			t.Error("(order-1)G + G != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		P := randomPoint(t, g)
		enc := P.Bytes()
		if len(enc) != g.PointSize() {
			t.Fatalf("encoding length %d, want %d", len(enc), g.PointSize())
		}
		restored, err := g.NewPoint().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
		if !bytes.Equal(restored.Bytes(), enc) {
			t.Error("re-encoding differs")
		}
	})

	t.Run("IdentityRoundtrip", func(t *testing.T) {
		id := g.NewPoint()
		if !id.IsIdentity() {
			t.Fatal("new point should be the identity")
		}
		restored, err := g.NewPoint().SetBytes(id.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.IsIdentity() {
			t.Error("identity roundtrip failed")
		}
	})

	t.Run("SetBytesRejectsLength", func(t *testing.T) {
		enc := g.Generator().Bytes()
		if _, err := g.NewPoint().SetBytes(enc[:len(enc)-1]); !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("got %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("GeneratorIsNotIdentity", func(t *testing.T) {
		if g.Generator().IsIdentity() {
			t.Error("generator is the identity")
		}
	})
}

// TestMapToPoint checks that mapped points are usable subgroup elements.
func TestMapToPoint(t *testing.T, g group.Group) {
	found := 0
	digest := make([]byte, 64)
	for i := 0; i < 64; i++ {
		if _, err := rand.Read(digest); err != nil {
			t.Fatal(err)
		}
		p, ok := g.MapToPoint(digest)
		if !ok {
			continue
		}
		found++
		if p.IsIdentity() {
			t.Fatal("mapped to identity")
		}
		if _, err := g.NewPoint().SetBytes(p.Bytes()); err != nil {
			t.Fatalf("mapped point fails validation: %v", err)
		}
	}
	// Roughly half of all candidates succeed.
	if found == 0 {
		t.Error("no digest mapped to a point")
	}

	t.Run("Deterministic", func(t *testing.T) {
		for {
			if _, err := rand.Read(digest); err != nil {
				t.Fatal(err)
			}
			p1, ok := g.MapToPoint(digest)
			if !ok {
				continue
			}
			p2, _ := g.MapToPoint(digest)
			if !p1.Equal(p2) {
				t.Error("MapToPoint is not deterministic")
			}
			return
		}
	})

	t.Run("ShortDigest", func(t *testing.T) {
		if _, ok := g.MapToPoint([]byte{1, 2, 3}); ok {
			t.Error("short digest accepted")
		}
	})
}
