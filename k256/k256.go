package k256

import (
	"errors"
	"io"
	"math/big"
	"runtime"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/f3rmion/ringsig/group"
)

const (
	// ScalarSize is the length of an encoded scalar.
	ScalarSize = 32
	// PointSize is the length of a SEC1 compressed point.
	PointSize = btcec.PubKeyBytesLenCompressed
)

// Scalar is an integer modulo the secp256k1 group order backed by
// btcec's constant-time ModNScalar.
type Scalar struct {
	inner btcec.ModNScalar
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var negB btcec.ModNScalar
	negB.NegateVal(&b.(*Scalar).inner)
	s.inner.Add2(&a.(*Scalar).inner, &negB)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.NegateVal(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.InverseValNonConst(&aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// Bytes returns the 32-byte big-endian encoding.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from a 32-byte big-endian encoding. Values that are not
// below the group order are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != ScalarSize {
		return nil, group.ErrInvalidEncoding
	}
	var v btcec.ModNScalar
	if overflow := v.SetByteSlice(data); overflow {
		return nil, group.ErrInvalidEncoding
	}
	s.inner.Set(&v)
	return s, nil
}

// SetUniformBytes reduces a big-endian integer of any length modulo the
// group order.
func (s *Scalar) SetUniformBytes(data []byte) group.Scalar {
	v := new(big.Int).SetBytes(data)
	v.Mod(v, btcec.Params().N)
	var buf [ScalarSize]byte
	v.FillBytes(buf[:])
	s.inner.SetByteSlice(buf[:])
	zeroBytes(buf[:])
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
	return s
}

// Equal reports whether s equals b.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equals(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Zeroize clears s.
func (s *Scalar) Zeroize() {
	s.inner.Zero()
	runtime.KeepAlive(s)
}

// Point is a secp256k1 point held in normalized affine form (Z = 1), or
// the point at infinity held as all-zero coordinates.
type Point struct {
	inner btcec.JacobianPoint
}

// normalize brings a Jacobian result back into the representation Point
// relies on for equality and encoding.
func normalize(p *btcec.JacobianPoint) {
	p.X.Normalize()
	p.Y.Normalize()
	p.Z.Normalize()
	if p.Z.IsZero() || (p.X.IsZero() && p.Y.IsZero()) {
		p.X.SetInt(0)
		p.Y.SetInt(0)
		p.Z.SetInt(0)
		return
	}
	p.ToAffine()
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var res btcec.JacobianPoint
	btcec.AddNonConst(&a.(*Point).inner, &b.(*Point).inner, &res)
	normalize(&res)
	p.inner.Set(&res)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var negB Point
	negB.Negate(b)
	return p.Add(a, &negB)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	p.inner.Y.Negate(1).Normalize()
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var res btcec.JacobianPoint
	btcec.ScalarMultNonConst(&s.(*Scalar).inner, &q.(*Point).inner, &res)
	normalize(&res)
	p.inner.Set(&res)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 33-byte SEC1 compressed encoding. The point at
// infinity encodes as 33 zero bytes.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, PointSize)
	}
	return btcec.NewPublicKey(&p.inner.X, &p.inner.Y).SerializeCompressed()
}

// SetBytes parses a 33-byte compressed encoding. secp256k1 has cofactor 1,
// so every curve point is in the prime-order group.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, group.ErrInvalidEncoding
	}
	if isZeroBytes(data) {
		p.inner.X.SetInt(0)
		p.inner.Y.SetInt(0)
		p.inner.Z.SetInt(0)
		return p, nil
	}
	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, group.ErrInvalidEncoding
	}
	pub.AsJacobian(&p.inner)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	bPoint := b.(*Point)
	if p.IsIdentity() || bPoint.IsIdentity() {
		return p.IsIdentity() && bPoint.IsIdentity()
	}
	return p.inner.X.Equals(&bPoint.inner.X) && p.inner.Y.Equals(&bPoint.inner.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.Z.IsZero()
}

// K256 implements [group.Group] for secp256k1.
type K256 struct{}

// Name returns "secp256k1".
func (g *K256) Name() string {
	return "secp256k1"
}

// NewScalar returns a zero scalar.
func (g *K256) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns the point at infinity.
func (g *K256) NewPoint() group.Point {
	return new(Point)
}

// Generator returns the secp256k1 base point.
func (g *K256) Generator() group.Point {
	var p Point
	btcec.GeneratorJacobian(&p.inner)
	normalize(&p.inner)
	return &p
}

// RandomScalar reads 64 bytes from r and reduces them modulo the order.
func (g *K256) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [2 * ScalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := new(Scalar)
	s.SetUniformBytes(buf[:])
	zeroBytes(buf[:])
	return s, nil
}

// MapToPoint treats digest[:32] as an x coordinate and the low bit of
// digest[32] as the parity of y.
func (g *K256) MapToPoint(digest []byte) (group.Point, bool) {
	if len(digest) < ScalarSize+1 {
		return nil, false
	}
	var x, y, one btcec.FieldVal
	if overflow := x.SetByteSlice(digest[:32]); overflow {
		return nil, false
	}
	if !btcec.DecompressY(&x, digest[32]&1 == 1, &y) {
		return nil, false
	}
	one.SetInt(1)
	return &Point{inner: btcec.MakeJacobianPoint(&x, &y, &one)}, true
}

// Order returns the group order as a big-endian byte slice.
func (g *K256) Order() []byte {
	return btcec.Params().N.Bytes()
}

// ScalarSize returns 32.
func (g *K256) ScalarSize() int {
	return ScalarSize
}

// PointSize returns 33.
func (g *K256) PointSize() int {
	return PointSize
}

func isZeroBytes(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
