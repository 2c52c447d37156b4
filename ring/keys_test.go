package ring

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRoundtrip(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			s, err := GenerateSecret(ctx, rand.Reader)
			require.NoError(t, err)

			sb := s.Bytes()
			require.Len(t, sb, ctx.Group().ScalarSize())
			s2, err := SecretFromBytes(ctx, sb)
			require.NoError(t, err)
			assert.Equal(t, sb, s2.Bytes())
			assert.True(t, s.Public().Equal(s2.Public()))
			assert.True(t, PublicFromSecret(s).Equal(s.Public()))

			pb := s.Public().Bytes()
			require.Len(t, pb, ctx.Group().PointSize())
			p, err := PublicFromBytes(ctx, pb)
			require.NoError(t, err)
			assert.True(t, p.Equal(s.Public()))
			assert.Equal(t, pb, p.Bytes())
		})
	}
}

func TestSecretFromBytesRejects(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	size := ctx.Group().ScalarSize()

	_, err := SecretFromBytes(ctx, make([]byte, size))
	assert.ErrorIs(t, err, ErrInvalidEncoding, "zero")

	_, err = SecretFromBytes(ctx, make([]byte, size-1))
	assert.ErrorIs(t, err, ErrInvalidEncoding, "short")

	order := make([]byte, size)
	o := ctx.Group().Order()
	copy(order[size-len(o):], o)
	_, err = SecretFromBytes(ctx, order)
	assert.ErrorIs(t, err, ErrInvalidEncoding, "unreduced")
}

func TestPublicFromBytesRejects(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			g := ctx.Group()

			_, err := PublicFromBytes(ctx, g.NewPoint().Bytes())
			assert.ErrorIs(t, err, ErrNotInSubgroup, "identity")

			_, err = PublicFromBytes(ctx, make([]byte, g.PointSize()+1))
			assert.ErrorIs(t, err, ErrInvalidEncoding, "length")
		})
	}
}

func TestPublicBytesIsCopy(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	_, keys := newKeys(t, ctx, 1)

	b := keys[0].Bytes()
	b[0] ^= 0xff
	assert.NotEqual(t, b, keys[0].Bytes())
}

func TestSecretZeroize(t *testing.T) {
	ctx := testContexts(t)["bandersnatch"]
	secrets, _ := newKeys(t, ctx, 1)
	secrets[0].Zeroize()
	assert.True(t, secrets[0].scalar.IsZero())
}

func TestRingEncoding(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			_, keys := newKeys(t, ctx, 4)
			enc := EncodeRing(keys)
			require.Len(t, enc, 4*ctx.Group().PointSize())

			parsed, err := ParseRing(ctx, enc)
			require.NoError(t, err)
			require.Len(t, parsed, 4)
			for i := range keys {
				assert.True(t, keys[i].Equal(parsed[i]), "member %d", i)
			}

			_, err = ParseRing(ctx, enc[:len(enc)-1])
			assert.ErrorIs(t, err, ErrInvalidEncoding)

			bad := append(enc[:ctx.Group().PointSize():ctx.Group().PointSize()], ctx.Group().NewPoint().Bytes()...)
			_, err = ParseRing(ctx, bad)
			assert.ErrorIs(t, err, ErrNotInSubgroup)
		})
	}
}
