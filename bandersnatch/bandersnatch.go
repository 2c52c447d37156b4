package bandersnatch

import (
	"bytes"
	"io"
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"

	"github.com/f3rmion/ringsig/group"
	"github.com/f3rmion/ringsig/internal/bigscalar"
)

// PointSize is the length of a compressed point.
const PointSize = 32

// curveOrder is the order of the prime-order subgroup. It is distinct from
// the BLS12-381 scalar field the coordinates live in.
var curveOrder *big.Int

func init() {
	curve := tedwards.GetEdwardsCurve()
	curveOrder = new(big.Int).Set(&curve.Order)
}

// Point represents a point on the Bandersnatch curve.
// It implements [group.Point] by wrapping gnark-crypto's PointAffine.
//
// Points are represented in affine coordinates (x, y) on the twisted
// Edwards curve. The identity element is (0, 1).
type Point struct {
	inner tedwards.PointAffine
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	aPoint := a.(*Point)
	bPoint := b.(*Point)
	p.inner.Add(&aPoint.inner, &bPoint.inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	aPoint := a.(*Point)
	bPoint := b.(*Point)
	var negB tedwards.PointAffine
	negB.Neg(&bPoint.inner)
	p.inner.Add(&aPoint.inner, &negB)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Neg(&aPoint.inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	scalar := s.(*bigscalar.Scalar)
	qPoint := q.(*Point)
	p.inner.ScalarMultiplication(&qPoint.inner, scalar.BigInt())
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Set(&aPoint.inner)
	return p
}

// Bytes returns the 32-byte compressed encoding: little-endian y with the
// sign of x in the top bit.
func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes sets p from a compressed point encoding and returns p.
// The encoding must be canonical, on the curve, and in the prime-order
// subgroup.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, group.ErrInvalidEncoding
	}
	var pt tedwards.PointAffine
	if _, err := pt.SetBytes(data); err != nil {
		return nil, group.ErrInvalidEncoding
	}
	if !pt.IsOnCurve() {
		return nil, group.ErrInvalidEncoding
	}
	if enc := pt.Bytes(); !bytes.Equal(enc[:], data) {
		return nil, group.ErrInvalidEncoding
	}
	if !inSubgroup(&pt) {
		return nil, group.ErrNotInSubgroup
	}
	p.inner = pt
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *Point) Equal(b group.Point) bool {
	bPoint := b.(*Point)
	return p.inner.Equal(&bPoint.inner)
}

// IsIdentity reports whether p is the identity element (0, 1).
func (p *Point) IsIdentity() bool {
	return p.inner.IsZero()
}

// inSubgroup reports whether [order]pt is the identity. It uses a plain
// double-and-add in extended coordinates because the GLV multiplication
// behind ScalarMultiplication is only correct on the prime-order subgroup.
func inSubgroup(pt *tedwards.PointAffine) bool {
	var identity tedwards.PointAffine
	identity.X.SetZero()
	identity.Y.SetOne()

	var acc, base tedwards.PointExtended
	acc.FromAffine(&identity)
	base.FromAffine(pt)
	for i := curveOrder.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if curveOrder.Bit(i) == 1 {
			acc.Add(&acc, &base)
		}
	}
	return !acc.Z.IsZero() && acc.IsZero()
}

// Bandersnatch implements [group.Group] for the Bandersnatch curve.
//
// Bandersnatch is a zero-sized type. Create an instance with
// &Bandersnatch{} or [New].
type Bandersnatch struct{}

// New returns the Bandersnatch group.
func New() *Bandersnatch {
	return &Bandersnatch{}
}

// Name returns "bandersnatch".
func (g *Bandersnatch) Name() string {
	return "bandersnatch"
}

// NewScalar returns a new scalar initialized to zero.
func (g *Bandersnatch) NewScalar() group.Scalar {
	return bigscalar.New(curveOrder)
}

// NewPoint returns a new point initialized to the identity element (0, 1).
func (g *Bandersnatch) NewPoint() group.Point {
	var p Point
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

// Generator returns the standard base point of the prime-order subgroup.
func (g *Bandersnatch) Generator() group.Point {
	var p Point
	p.inner = tedwards.GetEdwardsCurve().Base
	return &p
}

// RandomScalar generates a cryptographically random scalar using the
// provided random source. 64 bytes are reduced modulo the order so the
// result is statistically uniform in [0, order).
func (g *Bandersnatch) RandomScalar(r io.Reader) (group.Scalar, error) {
	return bigscalar.Random(curveOrder, r)
}

// MapToPoint decodes the first 32 bytes of digest as a compressed point and
// clears the cofactor (4) by doubling twice. It fails for digests that are
// shorter than a point, do not decode, or land on a small-order point.
func (g *Bandersnatch) MapToPoint(digest []byte) (group.Point, bool) {
	if len(digest) < PointSize {
		return nil, false
	}
	var pt tedwards.PointAffine
	if _, err := pt.SetBytes(digest[:PointSize]); err != nil {
		return nil, false
	}
	if !pt.IsOnCurve() {
		return nil, false
	}
	pt.Double(&pt)
	pt.Double(&pt)
	if pt.IsZero() {
		return nil, false
	}
	return &Point{inner: pt}, true
}

// Order returns the order of the prime-order subgroup as a big-endian
// byte slice.
func (g *Bandersnatch) Order() []byte {
	return curveOrder.Bytes()
}

// ScalarSize returns 32.
func (g *Bandersnatch) ScalarSize() int {
	return bigscalar.Size
}

// PointSize returns 32.
func (g *Bandersnatch) PointSize() int {
	return PointSize
}
