package ring

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/f3rmion/ringsig/bandersnatch"
	"github.com/f3rmion/ringsig/bjj"
	"github.com/f3rmion/ringsig/group"
	"github.com/f3rmion/ringsig/k256"
)

// DefaultMaxRingSize bounds rings accepted by a context built without an
// explicit MaxRingSize.
const DefaultMaxRingSize = 1023

// Transcript tags. Changing any of them changes every proof.
const (
	tagScalar    = "scalar"
	tagRing      = "ring"
	tagSeed      = "seed"
	tagChallenge = "challenge"
	tagNonce     = "nonce"
	tagKeyImage  = "key-image"
	tagVRFInput  = "vrf-input"
	tagVRFOutput = "vrf-output"
	tagIETF      = "ietf"
)

// Proof modes mixed into the seed so that a ring signature can never be
// replayed as a ring VRF proof or the other way round.
const (
	modeSignature uint32 = 1
	modeVRF       uint32 = 2
	modeIETF      uint32 = 3
)

// Config holds the parameters of a [Context]. Zero fields take defaults.
type Config struct {
	// Group is the prime-order group. Default: Bandersnatch.
	Group group.Group

	// Hasher is the transcript hash. Default: Blake2b-512.
	Hasher Hasher

	// MaxRingSize bounds the number of ring members. Default: 1023.
	MaxRingSize int
}

// DefaultConfig returns the configuration used by [Obtain]
// (RING_SIZE aside).
func DefaultConfig() Config {
	return Config{
		Group:       bandersnatch.New(),
		Hasher:      NewBlake2bHasher(),
		MaxRingSize: DefaultMaxRingSize,
	}
}

// Context carries the immutable parameters shared by every prover and
// verifier: the group, the transcript hash and the ring size bound.
// A Context is safe for concurrent use.
type Context struct {
	group       group.Group
	hasher      Hasher
	maxRingSize int
	suite       []byte
}

// NewContext builds a context from cfg.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Group == nil {
		cfg.Group = bandersnatch.New()
	}
	if cfg.Hasher == nil {
		cfg.Hasher = NewBlake2bHasher()
	}
	if cfg.MaxRingSize == 0 {
		cfg.MaxRingSize = DefaultMaxRingSize
	}
	if cfg.MaxRingSize < 2 {
		return nil, fmt.Errorf("ring: max ring size must be at least 2, got %d", cfg.MaxRingSize)
	}
	if cfg.Group.ScalarSize() <= 0 || cfg.Group.PointSize() <= 0 {
		return nil, errors.New("ring: group reports invalid encoding sizes")
	}
	if len(cfg.Group.Generator().Bytes()) != cfg.Group.PointSize() {
		return nil, errors.New("ring: generator encoding does not match point size")
	}

	return &Context{
		group:       cfg.Group,
		hasher:      cfg.Hasher,
		maxRingSize: cfg.MaxRingSize,
		suite:       []byte(cfg.Group.Name() + "+" + cfg.Hasher.Name()),
	}, nil
}

var (
	defaultOnce    sync.Once
	defaultContext *Context
)

// Obtain returns the process-wide default context, building it on first
// use. The maximum ring size is taken from the RING_SIZE environment
// variable when it holds an integer of at least 2.
//
// Obtain panics if the default parameters cannot be initialized; that is a
// configuration error, not a runtime condition.
func Obtain() *Context {
	defaultOnce.Do(func() {
		cfg := DefaultConfig()
		cfg.MaxRingSize = ringSizeFromEnv(os.Getenv("RING_SIZE"))
		ctx, err := NewContext(cfg)
		if err != nil {
			panic(fmt.Sprintf("ring: default context: %v", err))
		}
		defaultContext = ctx
	})
	return defaultContext
}

func ringSizeFromEnv(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 2 {
		return DefaultMaxRingSize
	}
	return n
}

// GroupByName returns the group registered under name: "bandersnatch",
// "babyjubjub" (or "bjj") and "secp256k1" (or "k256").
func GroupByName(name string) (group.Group, bool) {
	switch name {
	case "bandersnatch":
		return bandersnatch.New(), true
	case "babyjubjub", "bjj":
		return &bjj.BJJ{}, true
	case "secp256k1", "k256":
		return &k256.K256{}, true
	}
	return nil, false
}

// Group returns the context's group.
func (c *Context) Group() group.Group { return c.group }

// Hasher returns the context's transcript hash.
func (c *Context) Hasher() Hasher { return c.hasher }

// MaxRingSize returns the largest accepted ring.
func (c *Context) MaxRingSize() int { return c.maxRingSize }

// Suite returns the "<group>+<hash>" identifier mixed into every hash.
func (c *Context) Suite() string { return string(c.suite) }

// HashToScalar hashes an arbitrary transcript into a scalar. The result is
// a deterministic function of the context's suite, the hasher's prefix and
// the transcript bytes, so independent implementations agree bit for bit.
func (c *Context) HashToScalar(transcript ...[]byte) group.Scalar {
	return c.hashToScalar(tagScalar, transcript...)
}

// hashToScalar reduces the digest, read as a little-endian integer, modulo
// the group order.
func (c *Context) hashToScalar(tag string, data ...[]byte) group.Scalar {
	digest := c.hash(tag, data...)
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	return c.group.NewScalar().SetUniformBytes(digest)
}

// hashToPoint maps data to a non-identity point of the prime-order subgroup
// by try-and-increment over a one-byte counter.
func (c *Context) hashToPoint(tag string, data ...[]byte) (group.Point, error) {
	input := make([][]byte, 0, len(data)+1)
	input = append(input, data...)
	counter := []byte{0}
	input = append(input, counter)
	for i := 0; i < 256; i++ {
		counter[0] = byte(i)
		if p, ok := c.group.MapToPoint(c.hash(tag, input...)); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("ring: no curve point found for %s", tag)
}

func (c *Context) hash(tag string, data ...[]byte) []byte {
	input := make([][]byte, 0, len(data)+1)
	input = append(input, lengthPrefixed(c.suite))
	input = append(input, data...)
	return c.hasher.Hash(tag, input...)
}

// OutputHash returns the 32-byte VRF output hash of an output point.
func (c *Context) OutputHash(output group.Point) [32]byte {
	var out [32]byte
	copy(out[:], c.hash(tagVRFOutput, output.Bytes()))
	return out
}

// ringDigest commits to the ordered ring.
func (c *Context) ringDigest(ring []*Public) []byte {
	data := make([][]byte, 0, len(ring)+1)
	data = append(data, u32le(uint32(len(ring))))
	for _, pk := range ring {
		data = append(data, pk.enc)
	}
	return c.hash(tagRing, data...)
}

func u32le(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func lengthPrefixed(b []byte) []byte {
	out := make([]byte, 8+len(b))
	binary.LittleEndian.PutUint64(out, uint64(len(b)))
	copy(out[8:], b)
	return out
}
