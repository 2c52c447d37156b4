// Package bjj provides a Baby Jubjub elliptic curve implementation of the
// [group.Group] interface.
//
// Baby Jubjub is a twisted Edwards curve defined over the scalar field of
// BN254 (also known as alt_bn128). It is commonly used in zero-knowledge
// proof systems and privacy-preserving applications, which makes it a
// natural choice when ring proofs have to be checked inside a SNARK.
//
// This package wraps the Baby Jubjub implementation from gnark-crypto,
// providing a clean interface that satisfies [group.Group], [group.Scalar],
// and [group.Point].
//
// # Curve Parameters
//
// Baby Jubjub is defined by the equation:
//
//	a*x^2 + y^2 = 1 + d*x^2*y^2
//
// where a = 168700 and d = 168696 over the BN254 scalar field.
//
// The curve has a prime-order subgroup of size:
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// and cofactor 8.
//
// # Usage
//
//	g := &bjj.BJJ{}
//	ctx, err := ring.NewContext(ring.Config{Group: g})
//
// # Security
//
// This implementation relies on gnark-crypto for the underlying curve
// arithmetic. Decoded points are checked for canonical encoding and
// subgroup membership; scalar arithmetic uses math/big and is not constant
// time.
package bjj
