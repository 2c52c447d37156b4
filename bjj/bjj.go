package bjj

import (
	"bytes"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/f3rmion/ringsig/group"
	"github.com/f3rmion/ringsig/internal/bigscalar"
)

// PointSize is the length of a compressed point.
const PointSize = 32

// curveOrder is the Baby Jubjub subgroup order.
// This is distinct from the BN254 scalar field order (Fr).
var curveOrder *big.Int

func init() {
	curve := twistededwards.GetEdwardsCurve()
	curveOrder = new(big.Int).Set(&curve.Order)
}

// Point represents a point on the Baby Jubjub curve.
// It implements [group.Point] by wrapping gnark-crypto's PointAffine.
//
// Points are represented in affine coordinates (x, y) on the twisted
// Edwards curve. The identity element is (0, 1).
type Point struct {
	inner twistededwards.PointAffine
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
	var negB twistededwards.PointAffine
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

// Bytes returns the compressed point encoding as a byte slice.
func (p *Point) Bytes() []byte {
	bytes := p.inner.Bytes()
	return bytes[:]
}

// SetBytes sets p from a compressed point encoding and returns p.
// Returns an error if the data does not represent a valid curve point
// or if the point is outside the prime-order subgroup.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, group.ErrInvalidEncoding
	}
	var pt twistededwards.PointAffine
	if err := pt.Unmarshal(data); err != nil {
		return nil, group.ErrInvalidEncoding
	}
	if !pt.IsOnCurve() {
		return nil, group.ErrInvalidEncoding
	}
	// Reject non-canonical y and a sign bit on x = 0.
	if canonical := pt.Bytes(); !bytes.Equal(canonical[:], data) {
		return nil, group.ErrInvalidEncoding
	}
	// Baby Jubjub has no GLV endomorphism in gnark-crypto, so the windowed
	// multiplication is valid for torsion points too.
	var check twistededwards.PointAffine
	check.ScalarMultiplication(&pt, curveOrder)
	if !check.IsZero() {
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

// BJJ implements [group.Group] for the Baby Jubjub curve.
//
// BJJ is a zero-sized type that provides access to Baby Jubjub curve
// operations. Create an instance with &BJJ{} or new(BJJ).
type BJJ struct{}

// Name returns "babyjubjub".
func (g *BJJ) Name() string {
	return "babyjubjub"
}

// NewScalar returns a new scalar initialized to zero.
func (g *BJJ) NewScalar() group.Scalar {
	return bigscalar.New(curveOrder)
}

// NewPoint returns a new point initialized to the identity element (0, 1).
func (g *BJJ) NewPoint() group.Point {
	var p Point
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

// Generator returns the standard base point for the Baby Jubjub curve.
func (g *BJJ) Generator() group.Point {
	var p Point
	p.inner = twistededwards.GetEdwardsCurve().Base
	return &p
}

// RandomScalar generates a cryptographically random scalar using the
// provided random source. The result is uniformly distributed in
// [0, curveOrder).
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	return bigscalar.Random(curveOrder, r)
}

// MapToPoint decodes the first 32 bytes of digest as a compressed point and
// multiplies by the cofactor 8.
func (g *BJJ) MapToPoint(digest []byte) (group.Point, bool) {
	if len(digest) < PointSize {
		return nil, false
	}
	var pt twistededwards.PointAffine
	if err := pt.Unmarshal(digest[:PointSize]); err != nil {
		return nil, false
	}
	if !pt.IsOnCurve() {
		return nil, false
	}
	for i := 0; i < 3; i++ {
		pt.Double(&pt)
	}
	if pt.IsZero() {
		return nil, false
	}
	return &Point{inner: pt}, true
}

// Order returns the order of the Baby Jubjub curve's prime-order subgroup
// as a big-endian byte slice.
func (g *BJJ) Order() []byte {
	return curveOrder.Bytes()
}

// ScalarSize returns 32.
func (g *BJJ) ScalarSize() int {
	return bigscalar.Size
}

// PointSize returns 32.
func (g *BJJ) PointSize() int {
	return PointSize
}
