package group

import (
	"errors"
	"io"
)

var (
	// ErrInvalidEncoding is returned when bytes do not decode to a canonical
	// scalar or to a point on the curve.
	ErrInvalidEncoding = errors.New("group: invalid encoding")

	// ErrNotInSubgroup is returned when a point decodes correctly but lies
	// outside the prime-order subgroup.
	ErrNotInSubgroup = errors.New("group: point not in prime-order subgroup")
)

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are integers modulo the group order and
// are used as exponents in scalar multiplication.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. This allows for
// efficient method chaining while minimizing memory allocations.
//
// Implementations must ensure all operations produce results in the
// valid range [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// Bytes returns the canonical fixed-length byte representation.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding and returns it.
	// Returns ErrInvalidEncoding if the length is wrong or the value is
	// not reduced modulo the group order.
	SetBytes(data []byte) (Scalar, error)
	// SetUniformBytes interprets data of any length as a big-endian
	// integer, reduces it modulo the group order and returns the receiver.
	// Callers should pass at least twice the scalar size to keep the
	// reduction bias negligible.
	SetUniformBytes(data []byte) Scalar
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
	// Zeroize overwrites the receiver's backing memory and sets it to zero.
	Zeroize()
}

// Point represents an element of a cryptographic group, typically a point
// on an elliptic curve. Points support addition, subtraction, negation,
// and scalar multiplication.
//
// Like [Scalar], all arithmetic methods use a mutable receiver pattern
// for efficiency.
//
// The identity element (zero point, point at infinity) is the additive
// identity: P + Identity = P for all points P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical fixed-length compressed encoding.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns ErrInvalidEncoding if the data is not the canonical encoding
	// of a curve point and ErrNotInSubgroup if the point has a torsion
	// component.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group defines a prime-order cryptographic group suitable for ring
// signatures. It provides factory methods for creating scalars and points,
// access to the group's generator, random scalar generation and the
// candidate mapping used for hashing onto the curve.
//
// A Group implementation encapsulates all curve-specific details, allowing
// the ring package to be generic over different elliptic curves.
//
// Example usage:
//
//	g := bandersnatch.New()
//	scalar, _ := g.RandomScalar(rand.Reader)
//	point := g.NewPoint().ScalarMult(scalar, g.Generator())
type Group interface {
	// Name returns a short stable identifier, mixed into transcripts.
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a cryptographically random scalar.
	RandomScalar(r io.Reader) (Scalar, error)
	// MapToPoint maps a uniformly random digest to a point of the
	// prime-order subgroup. It reports false when the digest is not a
	// usable candidate; callers retry with a fresh digest.
	MapToPoint(digest []byte) (Point, bool)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
	// ScalarSize is the length of Scalar.Bytes.
	ScalarSize() int
	// PointSize is the length of Point.Bytes.
	PointSize() int
}
