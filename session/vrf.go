package session

import (
	"github.com/f3rmion/ringsig/ring"
)

// OutputSize is the length of a VRF output hash.
const OutputSize = 32

// IETFProofSize returns the length of an IETF VRF proof.
func (r *Registry) IETFProofSize() int {
	return ring.IETFProofSize(r.ctx)
}

// RingVRFSign evaluates the VRF on input with the prover behind h and
// returns an anonymous proof in the ring proof layout. aux is bound to the
// proof but does not change the output.
func (r *Registry) RingVRFSign(h Handle, input, aux []byte) (proof []byte, code Code) {
	defer recoverInternal(&code)

	p, err := r.prover(h)
	if err != nil {
		return nil, CodeOf(err)
	}
	pr, err := p.RingVRFSign(r.rng, input, aux)
	if err != nil {
		return nil, CodeOf(err)
	}
	return pr.Bytes(), CodeOK
}

// IETFSign evaluates the VRF on input with the prover behind h and returns
// a proof that names the signer.
func (r *Registry) IETFSign(h Handle, input, aux []byte) (proof []byte, code Code) {
	defer recoverInternal(&code)

	p, err := r.prover(h)
	if err != nil {
		return nil, CodeOf(err)
	}
	pr, err := p.IETFSign(r.rng, input, aux)
	if err != nil {
		return nil, CodeOf(err)
	}
	return pr.Bytes(), CodeOK
}

// VerifyWith checks a signature against the ring of verifier h.
func (r *Registry) VerifyWith(h Handle, message, proof []byte) (code Code) {
	defer recoverInternal(&code)

	v, err := r.verifier(h)
	if err != nil {
		return CodeOf(err)
	}
	pr, err := ring.ParseProof(r.ctx, proof, v.Size())
	if err != nil {
		return CodeOf(err)
	}
	return CodeOf(v.Verify(message, pr))
}

// RingVRFVerify checks a ring VRF proof against the ring of verifier h and
// returns the VRF output.
func (r *Registry) RingVRFVerify(h Handle, input, aux, proof []byte) (out [OutputSize]byte, code Code) {
	defer recoverInternal(&code)

	v, err := r.verifier(h)
	if err != nil {
		return out, CodeOf(err)
	}
	pr, err := ring.ParseProof(r.ctx, proof, v.Size())
	if err != nil {
		return out, CodeOf(err)
	}
	out, err = v.RingVRFVerify(input, aux, pr)
	return out, CodeOf(err)
}

// IETFVerify checks an IETF VRF proof against member signerIdx of the ring
// of verifier h and returns the VRF output.
func (r *Registry) IETFVerify(h Handle, input, aux, proof []byte, signerIdx int) (out [OutputSize]byte, code Code) {
	defer recoverInternal(&code)

	v, err := r.verifier(h)
	if err != nil {
		return out, CodeOf(err)
	}
	pr, err := ring.ParseIETFProof(r.ctx, proof)
	if err != nil {
		return out, CodeOf(err)
	}
	out, err = v.IETFVerify(input, aux, pr, signerIdx)
	return out, CodeOf(err)
}
