package ring

import (
	"fmt"
	"sync"

	"github.com/f3rmion/ringsig/group"
)

// Verifier checks proofs against one fixed ring. The ring digest is
// computed once; the key image bases are derived on first use by Verify.
// A Verifier is safe for concurrent use.
type Verifier struct {
	ctx    *Context
	ring   []*Public
	digest []byte

	basesOnce sync.Once
	bases     []group.Point
	basesErr  error
}

// NewVerifier prepares a verifier for ring, failing with ErrRingTooSmall or
// ErrRingTooLarge when the ring size is out of bounds.
func NewVerifier(ctx *Context, ring []*Public) (*Verifier, error) {
	if err := ctx.checkRingSize(len(ring)); err != nil {
		return nil, err
	}
	members := make([]*Public, len(ring))
	for j, pk := range ring {
		if pk == nil {
			return nil, fmt.Errorf("ring member %d: %w", j, ErrInvalidEncoding)
		}
		members[j] = pk
	}
	return &Verifier{ctx: ctx, ring: members, digest: ctx.ringDigest(members)}, nil
}

// Size returns the number of ring members.
func (v *Verifier) Size() int { return len(v.ring) }

func (v *Verifier) keyImageBases() ([]group.Point, error) {
	v.basesOnce.Do(func() {
		v.bases, v.basesErr = v.ctx.keyImageBases(v.ring)
	})
	return v.bases, v.basesErr
}

// Verify checks a linkable ring signature over message. Structural defects
// yield ErrMalformedProof; a well-formed proof whose challenge loop does not
// close yields ErrInvalidProof.
func (v *Verifier) Verify(message []byte, proof *Proof) error {
	if err := v.checkProof(proof); err != nil {
		return err
	}
	bases, err := v.keyImageBases()
	if err != nil {
		return err
	}
	return v.walk(&chain{
		ctx:   v.ctx,
		ring:  v.ring,
		bases: bases,
		image: proof.KeyImage,
		seed:  v.ctx.seedFor(modeSignature, v.digest, proof.KeyImage, message),
	}, proof)
}

// RingVRFVerify checks a ring VRF proof and returns the 32-byte output hash.
func (v *Verifier) RingVRFVerify(input, aux []byte, proof *Proof) ([32]byte, error) {
	var zero [32]byte
	if err := v.checkProof(proof); err != nil {
		return zero, err
	}
	h, err := v.ctx.vrfInputPoint(input)
	if err != nil {
		return zero, err
	}
	err = v.walk(&chain{
		ctx:   v.ctx,
		ring:  v.ring,
		bases: []group.Point{h},
		image: proof.KeyImage,
		seed:  v.ctx.seedFor(modeVRF, v.digest, proof.KeyImage, input, aux),
	}, proof)
	if err != nil {
		return zero, err
	}
	return v.ctx.OutputHash(proof.KeyImage), nil
}

// IETFVerify checks an IETF VRF proof against ring member signerIdx.
func (v *Verifier) IETFVerify(input, aux []byte, proof *IETFProof, signerIdx int) ([32]byte, error) {
	if signerIdx < 0 || signerIdx >= len(v.ring) {
		return [32]byte{}, fmt.Errorf("%w: index %d, ring size %d", ErrIndexOutOfRange, signerIdx, len(v.ring))
	}
	return VerifyIETF(v.ctx, v.ring[signerIdx], input, aux, proof)
}

func (v *Verifier) checkProof(proof *Proof) error {
	if err := proof.checkShape(len(v.ring)); err != nil {
		return err
	}
	// Proofs assembled in memory skip ParseProof; re-decode the image so a
	// point with a torsion component is still rejected.
	if _, err := v.ctx.group.NewPoint().SetBytes(proof.KeyImage.Bytes()); err != nil {
		return fmt.Errorf("%w: key image: %w", ErrMalformedProof, err)
	}
	return nil
}

// walk recomputes c_1 .. c_n from c_0 and accepts iff c_n = c_0.
func (v *Verifier) walk(ch *chain, proof *Proof) error {
	c := proof.C0
	for j := range v.ring {
		c = ch.step(j, proof.S[j], c)
	}
	if !c.Equal(proof.C0) {
		return ErrInvalidProof
	}
	return nil
}

// Verify checks proof over message against ring. It is a shorthand for
// NewVerifier followed by [Verifier.Verify]; a ring outside the context's
// size bounds makes the proof malformed.
func Verify(ctx *Context, ring []*Public, message []byte, proof *Proof) error {
	v, err := NewVerifier(ctx, ring)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}
	return v.Verify(message, proof)
}

// VerifyBytes decodes proofBytes for ring and verifies it.
func VerifyBytes(ctx *Context, ring []*Public, message, proofBytes []byte) error {
	v, err := NewVerifier(ctx, ring)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}
	proof, err := ParseProof(ctx, proofBytes, len(ring))
	if err != nil {
		return err
	}
	return v.Verify(message, proof)
}
