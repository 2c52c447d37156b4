package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/ringsig/bjj"
)

func TestHashToScalar(t *testing.T) {
	ctx, err := NewContext(DefaultConfig())
	require.NoError(t, err)

	a := ctx.HashToScalar([]byte("abc"), []byte("def"))
	b := ctx.HashToScalar([]byte("abc"), []byte("def"))
	assert.True(t, a.Equal(b), "HashToScalar must be deterministic")

	c := ctx.HashToScalar([]byte("abcdef"))
	assert.Equal(t, a.Bytes(), c.Bytes(), "transcript pieces are concatenated")

	d := ctx.HashToScalar([]byte("abd"), []byte("def"))
	assert.False(t, a.Equal(d))

	t.Run("SuiteSeparation", func(t *testing.T) {
		other, err := NewContext(Config{Group: &bjj.BJJ{}})
		require.NoError(t, err)
		assert.NotEqual(t, a.Bytes(), other.HashToScalar([]byte("abcdef")).Bytes())
	})

	t.Run("PrefixSeparation", func(t *testing.T) {
		other, err := NewContext(Config{Hasher: &Blake2bHasher{Prefix: "other"}})
		require.NoError(t, err)
		assert.NotEqual(t, a.Bytes(), other.HashToScalar([]byte("abcdef")).Bytes())
	})

	t.Run("TagSeparation", func(t *testing.T) {
		assert.NotEqual(t, a.Bytes(), ctx.hashToScalar(tagChallenge, []byte("abcdef")).Bytes())
	})
}

func TestHashToPoint(t *testing.T) {
	for name, ctx := range testContexts(t) {
		t.Run(name, func(t *testing.T) {
			p1, err := ctx.hashToPoint(tagKeyImage, []byte("input"))
			require.NoError(t, err)
			p2, err := ctx.hashToPoint(tagKeyImage, []byte("input"))
			require.NoError(t, err)
			assert.True(t, p1.Equal(p2))
			assert.False(t, p1.IsIdentity())

			_, err = ctx.Group().NewPoint().SetBytes(p1.Bytes())
			assert.NoError(t, err, "hashed point must lie in the prime-order subgroup")

			p3, err := ctx.hashToPoint(tagVRFInput, []byte("input"))
			require.NoError(t, err)
			assert.False(t, p1.Equal(p3))
		})
	}
}

func TestNewContext(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		ctx, err := NewContext(Config{})
		require.NoError(t, err)
		assert.Equal(t, "bandersnatch", ctx.Group().Name())
		assert.Equal(t, "blake2b512", ctx.Hasher().Name())
		assert.Equal(t, DefaultMaxRingSize, ctx.MaxRingSize())
		assert.Equal(t, "bandersnatch+blake2b512", ctx.Suite())
	})

	t.Run("MaxRingSizeTooSmall", func(t *testing.T) {
		_, err := NewContext(Config{MaxRingSize: 1})
		assert.Error(t, err)
	})
}

func TestObtain(t *testing.T) {
	a := Obtain()
	b := Obtain()
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, "bandersnatch+blake2b512", a.Suite())
}

func TestRingSizeFromEnv(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", DefaultMaxRingSize},
		{"16", 16},
		{"2", 2},
		{"1", DefaultMaxRingSize},
		{"-4", DefaultMaxRingSize},
		{"many", DefaultMaxRingSize},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ringSizeFromEnv(tt.in), "RING_SIZE=%q", tt.in)
	}
}

func TestLookups(t *testing.T) {
	for _, name := range []string{"bandersnatch", "babyjubjub", "bjj", "secp256k1", "k256"} {
		g, ok := GroupByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, g, name)
	}
	_, ok := GroupByName("p256")
	assert.False(t, ok)

	for _, name := range []string{"blake2b512", "sha3-512", "sha512"} {
		h, ok := HasherByName(name, "")
		require.True(t, ok, name)
		assert.Equal(t, name, h.Name())
		assert.Len(t, h.Hash("t", []byte("x")), 64)
	}
	_, ok = HasherByName("md5", "")
	assert.False(t, ok)

	h, _ := HasherByName("blake2b512", "custom")
	assert.Equal(t, "custom", h.(*Blake2bHasher).Prefix)
}

func TestHasherFraming(t *testing.T) {
	h := NewBlake2bHasher()
	// The tag is length-prefixed, so moving bytes between tag and data
	// changes the digest.
	assert.NotEqual(t, h.Hash("ab", []byte("c")), h.Hash("a", []byte("bc")))
	assert.Equal(t, h.Hash("a", []byte("b"), []byte("c")), h.Hash("a", []byte("bc")))
}
