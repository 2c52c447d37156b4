package ring

import (
	"bytes"
	"crypto/subtle"
	"fmt"

	"github.com/f3rmion/ringsig/group"
)

// Proof is a linkable ring signature: the challenge at index 0, one
// response per ring member, and the key image (for ring VRF proofs, the
// VRF output point).
//
// The wire layout is
//
//	C0 || S[0] || ... || S[n-1] || KeyImage
//
// with fixed-size scalars and a compressed point, so its length depends on
// the ring size alone. See [ProofSize].
type Proof struct {
	C0       group.Scalar
	S        []group.Scalar
	KeyImage group.Point
}

// ProofSize returns the encoded length of a proof over a ring of n keys.
func ProofSize(ctx *Context, n int) int {
	return (1+n)*ctx.group.ScalarSize() + ctx.group.PointSize()
}

// Bytes returns the wire encoding of the proof.
func (p *Proof) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(p.C0.Bytes())
	for _, s := range p.S {
		buf.Write(s.Bytes())
	}
	buf.Write(p.KeyImage.Bytes())
	return buf.Bytes()
}

// ParseProof decodes a proof over a ring of n keys. Any length mismatch,
// non-canonical scalar or invalid key image yields ErrMalformedProof.
func ParseProof(ctx *Context, data []byte, n int) (*Proof, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProof, ErrRingTooSmall)
	}
	if want := ProofSize(ctx, n); len(data) != want {
		return nil, fmt.Errorf("%w: length %d, want %d for %d members", ErrMalformedProof, len(data), want, n)
	}
	ss := ctx.group.ScalarSize()

	scalars := make([]group.Scalar, n+1)
	for i := range scalars {
		s, err := ctx.group.NewScalar().SetBytes(data[i*ss : (i+1)*ss])
		if err != nil {
			return nil, fmt.Errorf("%w: scalar %d: %w", ErrMalformedProof, i, err)
		}
		scalars[i] = s
	}
	image, err := ctx.group.NewPoint().SetBytes(data[(n+1)*ss:])
	if err != nil {
		return nil, fmt.Errorf("%w: key image: %w", ErrMalformedProof, err)
	}
	return &Proof{C0: scalars[0], S: scalars[1:], KeyImage: image}, nil
}

// Linked reports whether two proofs carry the same key image, that is,
// whether they were produced with the same secret. For ring VRF proofs it
// reports whether the same secret evaluated the same input.
func Linked(a, b *Proof) bool {
	if a == nil || b == nil || a.KeyImage == nil || b.KeyImage == nil {
		return false
	}
	return subtle.ConstantTimeCompare(a.KeyImage.Bytes(), b.KeyImage.Bytes()) == 1
}

// checkShape rejects structurally invalid proofs before any challenge is
// recomputed.
func (p *Proof) checkShape(n int) error {
	if p == nil || p.C0 == nil || p.KeyImage == nil {
		return fmt.Errorf("%w: missing field", ErrMalformedProof)
	}
	if len(p.S) != n {
		return fmt.Errorf("%w: %d responses for %d ring members", ErrMalformedProof, len(p.S), n)
	}
	for i, s := range p.S {
		if s == nil {
			return fmt.Errorf("%w: response %d missing", ErrMalformedProof, i)
		}
	}
	if p.KeyImage.IsIdentity() {
		return fmt.Errorf("%w: identity key image", ErrMalformedProof)
	}
	return nil
}
