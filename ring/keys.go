package ring

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/f3rmion/ringsig/group"
)

// Secret is a nonzero scalar known only to its owner.
type Secret struct {
	scalar group.Scalar
	public *Public
}

// Public is a non-identity point of the prime-order subgroup, normally
// secret·G.
type Public struct {
	point group.Point
	enc   []byte
}

// GenerateSecret draws a secret uniformly from [1, order).
func GenerateSecret(ctx *Context, rng io.Reader) (*Secret, error) {
	for {
		s, err := ctx.group.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
		}
		if !s.IsZero() {
			return newSecret(ctx, s), nil
		}
	}
}

// SecretFromBytes parses a canonical scalar encoding. Zero is rejected.
func SecretFromBytes(ctx *Context, data []byte) (*Secret, error) {
	s, err := ctx.group.NewScalar().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("ring: secret: %w", err)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("ring: secret: zero scalar: %w", ErrInvalidEncoding)
	}
	return newSecret(ctx, s), nil
}

func newSecret(ctx *Context, s group.Scalar) *Secret {
	return &Secret{
		scalar: s,
		public: publicFromPoint(ctx.group.NewPoint().ScalarMult(s, ctx.group.Generator())),
	}
}

// Bytes returns the canonical encoding of the secret. The caller owns the
// returned slice and should clear it when done.
func (s *Secret) Bytes() []byte {
	return s.scalar.Bytes()
}

// Public returns secret·G.
func (s *Secret) Public() *Public {
	return s.public
}

// Zeroize clears the secret scalar. The Secret must not be used afterwards.
func (s *Secret) Zeroize() {
	s.scalar.Zeroize()
}

// PublicFromSecret computes secret·G.
func PublicFromSecret(s *Secret) *Public {
	return s.public
}

// PublicFromBytes parses a public key, rejecting undecodable bytes with
// ErrInvalidEncoding and small-order components or the identity with
// ErrNotInSubgroup.
func PublicFromBytes(ctx *Context, data []byte) (*Public, error) {
	p, err := ctx.group.NewPoint().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("ring: public key: %w", err)
	}
	if p.IsIdentity() {
		return nil, fmt.Errorf("ring: public key: identity: %w", ErrNotInSubgroup)
	}
	return publicFromPoint(p), nil
}

func publicFromPoint(p group.Point) *Public {
	return &Public{point: p, enc: p.Bytes()}
}

// Bytes returns the canonical fixed-length encoding.
func (p *Public) Bytes() []byte {
	return bytes.Clone(p.enc)
}

// Equal reports whether p and o encode the same point.
func (p *Public) Equal(o *Public) bool {
	return subtle.ConstantTimeCompare(p.enc, o.enc) == 1
}

// String returns the hex encoding of the key.
func (p *Public) String() string {
	return fmt.Sprintf("%x", p.enc)
}

// ParseRing decodes a concatenation of fixed-length public key encodings.
func ParseRing(ctx *Context, data []byte) ([]*Public, error) {
	size := ctx.group.PointSize()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("ring: ring encoding length %d is not a multiple of %d: %w",
			len(data), size, ErrInvalidEncoding)
	}
	ring := make([]*Public, 0, len(data)/size)
	for off := 0; off < len(data); off += size {
		pk, err := PublicFromBytes(ctx, data[off:off+size])
		if err != nil {
			return nil, fmt.Errorf("ring member %d: %w", off/size, err)
		}
		ring = append(ring, pk)
	}
	return ring, nil
}

// EncodeRing concatenates the encodings of ring members in order.
func EncodeRing(ring []*Public) []byte {
	var buf bytes.Buffer
	for _, pk := range ring {
		buf.Write(pk.enc)
	}
	return buf.Bytes()
}
