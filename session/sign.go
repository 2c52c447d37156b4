package session

import (
	"github.com/f3rmion/ringsig/ring"
)

// ProofSize returns the length of a proof over n ring members.
func (r *Registry) ProofSize(n int) int {
	return ring.ProofSize(r.ctx, n)
}

// Sign signs message with the prover behind h and returns the proof in its
// fixed layout.
func (r *Registry) Sign(h Handle, message []byte) (proof []byte, code Code) {
	defer recoverInternal(&code)

	p, err := r.prover(h)
	if err != nil {
		return nil, CodeOf(err)
	}
	pr, err := p.Sign(r.rng, message)
	if err != nil {
		return nil, CodeOf(err)
	}
	return pr.Bytes(), CodeOK
}

// SignInto is Sign writing into a caller-allocated buffer. It returns the
// number of bytes written, or CodeBufferTooSmall together with the
// required length.
func (r *Registry) SignInto(h Handle, message, out []byte) (n int, code Code) {
	defer recoverInternal(&code)

	p, err := r.prover(h)
	if err != nil {
		return 0, CodeOf(err)
	}
	need := ring.ProofSize(r.ctx, len(p.Ring()))
	if len(out) < need {
		return need, CodeBufferTooSmall
	}
	pr, err := p.Sign(r.rng, message)
	if err != nil {
		return 0, CodeOf(err)
	}
	return copy(out, pr.Bytes()), CodeOK
}

// KeyImage returns the key image every proof from h carries.
func (r *Registry) KeyImage(h Handle) (image []byte, code Code) {
	defer recoverInternal(&code)

	p, err := r.prover(h)
	if err != nil {
		return nil, CodeOf(err)
	}
	return p.KeyImage(), CodeOK
}

// Verify checks a proof in its fixed layout against a ring in its fixed
// layout. CodeOK means the proof is valid.
func (r *Registry) Verify(ringBytes, message, proof []byte) (code Code) {
	defer recoverInternal(&code)

	members, err := ring.ParseRing(r.ctx, ringBytes)
	if err != nil {
		return CodeOf(err)
	}
	return CodeOf(ring.VerifyBytes(r.ctx, members, message, proof))
}

// Linked reports whether two proofs over rings of n1 and n2 members carry
// the same key image.
func (r *Registry) Linked(proof1 []byte, n1 int, proof2 []byte, n2 int) (linked bool, code Code) {
	defer recoverInternal(&code)

	a, err := ring.ParseProof(r.ctx, proof1, n1)
	if err != nil {
		return false, CodeOf(err)
	}
	b, err := ring.ParseProof(r.ctx, proof2, n2)
	if err != nil {
		return false, CodeOf(err)
	}
	return ring.Linked(a, b), CodeOK
}
