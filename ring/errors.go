package ring

import (
	"errors"

	"github.com/f3rmion/ringsig/group"
)

var (
	// ErrInvalidEncoding is returned when key bytes do not decode to a
	// canonical scalar or curve point.
	ErrInvalidEncoding = group.ErrInvalidEncoding

	// ErrNotInSubgroup is returned when a public key decodes to a point
	// outside the prime-order subgroup, or to the identity.
	ErrNotInSubgroup = group.ErrNotInSubgroup

	// ErrRingTooSmall is returned for rings with fewer than two members.
	ErrRingTooSmall = errors.New("ring: ring must contain at least two keys")

	// ErrRingTooLarge is returned for rings above the context's MaxRingSize.
	ErrRingTooLarge = errors.New("ring: ring exceeds the context's maximum size")

	// ErrIndexOutOfRange is returned when a prover or signer index does not
	// name a ring position.
	ErrIndexOutOfRange = errors.New("ring: prover index out of range")

	// ErrKeyMismatch is returned when the secret's public key is not the
	// ring member at the prover index.
	ErrKeyMismatch = errors.New("ring: secret does not match the key at the prover index")

	// ErrRandomnessUnavailable is returned when the random source fails.
	// Retrying may succeed.
	ErrRandomnessUnavailable = errors.New("ring: randomness source failed")

	// ErrMalformedProof is returned for proofs with the wrong length, a
	// missing field or an undecodable element.
	ErrMalformedProof = errors.New("ring: malformed proof")

	// ErrInvalidProof is returned for well-formed proofs that do not verify.
	ErrInvalidProof = errors.New("ring: invalid proof")

	// ErrClosed is returned by a Prover after Close.
	ErrClosed = errors.New("ring: prover closed")
)
