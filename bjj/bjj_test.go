package bjj

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/f3rmion/ringsig/group"
	"github.com/f3rmion/ringsig/group/grouptest"
)

func TestScalar(t *testing.T) {
	grouptest.TestScalar(t, &BJJ{})
}

func TestPoint(t *testing.T) {
	grouptest.TestPoint(t, &BJJ{})
}

func TestMapToPoint(t *testing.T) {
	grouptest.TestMapToPoint(t, &BJJ{})
}

// orderTwo returns (0, -1), the point of order 2.
func orderTwo() twistededwards.PointAffine {
	var pt twistededwards.PointAffine
	pt.X.SetZero()
	pt.Y.SetOne()
	pt.Y.Neg(&pt.Y)
	return pt
}

func TestSetBytesRejectsTorsion(t *testing.T) {
	g := &BJJ{}

	t.Run("OrderTwo", func(t *testing.T) {
		pt := orderTwo()
		enc := pt.Bytes()
		if _, err := g.NewPoint().SetBytes(enc[:]); !errors.Is(err, group.ErrNotInSubgroup) {
			t.Errorf("got %v, want ErrNotInSubgroup", err)
		}
	})

	t.Run("MixedOrder", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator()).(*Point)
		T := orderTwo()

		var mixed twistededwards.PointAffine
		mixed.Add(&P.inner, &T)
		enc := mixed.Bytes()
		if _, err := g.NewPoint().SetBytes(enc[:]); !errors.Is(err, group.ErrNotInSubgroup) {
			t.Errorf("got %v, want ErrNotInSubgroup", err)
		}
	})
}

func TestSetBytesRejectsNonCanonical(t *testing.T) {
	g := &BJJ{}

	// The identity has x = 0, so a set sign bit is not canonical.
	enc := g.NewPoint().Bytes()
	enc[PointSize-1] |= 0x80
	if _, err := g.NewPoint().SetBytes(enc); !errors.Is(err, group.ErrInvalidEncoding) {
		t.Errorf("got %v, want ErrInvalidEncoding", err)
	}
}

func TestName(t *testing.T) {
	g := &BJJ{}
	if g.Name() != "babyjubjub" {
		t.Errorf("Name() = %q", g.Name())
	}
	if g.PointSize() != 32 || g.ScalarSize() != 32 {
		t.Errorf("sizes = %d/%d, want 32/32", g.PointSize(), g.ScalarSize())
	}
}
