package ring

import (
	"bytes"
	"crypto/rand"
	"testing"

	tedwards "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/ringsig/group"
)

func TestRingVRF(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			secrets, ring := newKeys(t, ctx, 4)
			p := newProver(t, ctx, secrets[3], ring, 3)
			v, err := NewVerifier(ctx, ring)
			require.NoError(t, err)

			input, aux := []byte("slot 42"), []byte("ticket")
			proof, err := p.RingVRFSign(rand.Reader, input, aux)
			require.NoError(t, err)

			out, err := v.RingVRFVerify(input, aux, proof)
			require.NoError(t, err)
			assert.Equal(t, ctx.OutputHash(proof.KeyImage), out)

			t.Run("AuxDoesNotChangeOutput", func(t *testing.T) {
				other, err := p.RingVRFSign(rand.Reader, input, []byte("other aux"))
				require.NoError(t, err)
				out2, err := v.RingVRFVerify(input, []byte("other aux"), other)
				require.NoError(t, err)
				assert.Equal(t, out, out2)
				assert.True(t, Linked(proof, other))
			})

			t.Run("InputChangesOutput", func(t *testing.T) {
				other, err := p.RingVRFSign(rand.Reader, []byte("slot 43"), aux)
				require.NoError(t, err)
				out2, err := v.RingVRFVerify([]byte("slot 43"), aux, other)
				require.NoError(t, err)
				assert.NotEqual(t, out, out2)
			})

			t.Run("SecretChangesOutput", func(t *testing.T) {
				q := newProver(t, ctx, secrets[0], ring, 0)
				other, err := q.RingVRFSign(rand.Reader, input, aux)
				require.NoError(t, err)
				out2, err := v.RingVRFVerify(input, aux, other)
				require.NoError(t, err)
				assert.NotEqual(t, out, out2)
			})

			t.Run("WrongAux", func(t *testing.T) {
				_, err := v.RingVRFVerify(input, []byte("tampered"), proof)
				assert.ErrorIs(t, err, ErrInvalidProof)
			})

			t.Run("WrongInput", func(t *testing.T) {
				_, err := v.RingVRFVerify([]byte("slot 41"), aux, proof)
				assert.ErrorIs(t, err, ErrInvalidProof)
			})

			t.Run("Roundtrip", func(t *testing.T) {
				parsed, err := ParseProof(ctx, proof.Bytes(), len(ring))
				require.NoError(t, err)
				out2, err := v.RingVRFVerify(input, aux, parsed)
				require.NoError(t, err)
				assert.Equal(t, out, out2)
			})
		})
	}
}

func TestModeSeparation(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	secrets, ring := newKeys(t, ctx, 3)
	p := newProver(t, ctx, secrets[1], ring, 1)
	v, err := NewVerifier(ctx, ring)
	require.NoError(t, err)

	data := []byte("same bytes")

	sig, err := p.Sign(rand.Reader, data)
	require.NoError(t, err)
	_, err = v.RingVRFVerify(data, nil, sig)
	assert.ErrorIs(t, err, ErrInvalidProof, "signature accepted as VRF proof")

	vrf, err := p.RingVRFSign(rand.Reader, data, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(data, vrf), ErrInvalidProof, "VRF proof accepted as signature")
	assert.False(t, Linked(sig, vrf))
}

func TestIETF(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			secrets, ring := newKeys(t, ctx, 3)
			p := newProver(t, ctx, secrets[2], ring, 2)
			v, err := NewVerifier(ctx, ring)
			require.NoError(t, err)

			input, aux := []byte("seed"), []byte("data")
			proof, err := p.IETFSign(rand.Reader, input, aux)
			require.NoError(t, err)

			enc := proof.Bytes()
			require.Len(t, enc, IETFProofSize(ctx))
			parsed, err := ParseIETFProof(ctx, enc)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(enc, parsed.Bytes()))

			out, err := v.IETFVerify(input, aux, parsed, 2)
			require.NoError(t, err)

			t.Run("MatchesRingVRF", func(t *testing.T) {
				rp, err := p.RingVRFSign(rand.Reader, input, nil)
				require.NoError(t, err)
				ringOut, err := v.RingVRFVerify(input, nil, rp)
				require.NoError(t, err)
				assert.Equal(t, out, ringOut)
			})

			t.Run("WrongSigner", func(t *testing.T) {
				_, err := v.IETFVerify(input, aux, parsed, 0)
				assert.ErrorIs(t, err, ErrInvalidProof)
			})

			t.Run("SignerOutOfRange", func(t *testing.T) {
				_, err := v.IETFVerify(input, aux, parsed, 3)
				assert.ErrorIs(t, err, ErrIndexOutOfRange)
			})

			t.Run("WrongAux", func(t *testing.T) {
				_, err := VerifyIETF(ctx, ring[2], input, []byte("other"), parsed)
				assert.ErrorIs(t, err, ErrInvalidProof)
			})

			t.Run("WrongInput", func(t *testing.T) {
				_, err := VerifyIETF(ctx, ring[2], []byte("other"), aux, parsed)
				assert.ErrorIs(t, err, ErrInvalidProof)
			})

			t.Run("Malformed", func(t *testing.T) {
				_, err := ParseIETFProof(ctx, enc[:len(enc)-1])
				assert.ErrorIs(t, err, ErrMalformedProof)

				_, err = VerifyIETF(ctx, ring[2], input, aux, &IETFProof{})
				assert.ErrorIs(t, err, ErrMalformedProof)
			})
		})
	}
}

// encodedPoint is a point whose encoding differs from its value, standing in
// for a proof assembled in memory rather than parsed.
type encodedPoint struct {
	group.Point
	enc []byte
}

func (p encodedPoint) Bytes() []byte { return p.enc }

func TestIETFRejectsTorsionOutput(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	secrets, ring := newKeys(t, ctx, 2)
	p := newProver(t, ctx, secrets[0], ring, 0)

	input := []byte("slot 7")
	proof, err := p.IETFSign(rand.Reader, input, nil)
	require.NoError(t, err)

	// O + (0, -1) differs from O only by the point of order two.
	var out, torsion tedwards.PointAffine
	_, err = out.SetBytes(proof.Output.Bytes())
	require.NoError(t, err)
	torsion.X.SetZero()
	torsion.Y.SetOne()
	torsion.Y.Neg(&torsion.Y)
	out.Add(&out, &torsion)
	enc := out.Bytes()

	shifted := *proof
	shifted.Output = encodedPoint{Point: proof.Output, enc: enc[:]}
	_, err = VerifyIETF(ctx, ring[0], input, nil, &shifted)
	assert.ErrorIs(t, err, ErrMalformedProof)
	assert.ErrorIs(t, err, ErrNotInSubgroup)

	wire := proof.Bytes()
	copy(wire, enc[:])
	_, err = ParseIETFProof(ctx, wire)
	assert.ErrorIs(t, err, ErrMalformedProof)

	_, err = VerifyIETF(ctx, ring[0], input, nil, proof)
	assert.NoError(t, err)
}

func TestVerifierReuse(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	secrets, ring := newKeys(t, ctx, 5)
	v, err := NewVerifier(ctx, ring)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Size())

	for idx := range ring {
		p := newProver(t, ctx, secrets[idx], ring, idx)
		proof, err := p.Sign(rand.Reader, []byte("m"))
		require.NoError(t, err)
		assert.NoError(t, v.Verify([]byte("m"), proof))
	}

	_, err = NewVerifier(ctx, ring[:1])
	assert.ErrorIs(t, err, ErrRingTooSmall)
}
