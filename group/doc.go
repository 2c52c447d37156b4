// Package group defines abstract interfaces for the prime-order groups
// used by the ring signature engine.
//
// This package provides three core interfaces that abstract over the
// mathematical operations needed for decoy-chained ring proofs:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of the group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating scalars and points
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// Decoding is strict. [Scalar.SetBytes] rejects values that are not reduced
// and [Point.SetBytes] rejects non-canonical encodings, points off the curve
// ([ErrInvalidEncoding]) and points with a small-order component
// ([ErrNotInSubgroup]). Anything that came off the wire is therefore a
// member of the prime-order subgroup once decoded.
//
// # Implementations
//
//   - bandersnatch: the Bandersnatch curve over the BLS12-381 scalar field
//   - bjj: Baby Jubjub over the BN254 scalar field
//   - k256: secp256k1
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Random scalars are generated from cryptographically secure sources
//   - Invalid curve points are rejected in SetBytes
//   - Zeroize clears the scalar's backing words
package group
