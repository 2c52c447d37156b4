package ring

import (
	"fmt"
	"io"
	"sync"

	"github.com/f3rmion/ringsig/group"
)

// nonceEntropySize is the number of fresh random bytes mixed into every
// nonce.
const nonceEntropySize = 64

// Prover produces proofs for one secret at a fixed position in a fixed ring.
//
// A Prover holds its own copy of the secret. Close erases it; the caller's
// [Secret] is left untouched. Sign and Close may be called concurrently.
type Prover struct {
	ctx *Context

	mu     sync.Mutex
	secret group.Scalar
	closed bool

	ring   []*Public
	idx    int
	digest []byte
	bases  []group.Point
	image  group.Point
}

// NewProver binds secret to position idx of ring. It fails with
// ErrRingTooSmall or ErrRingTooLarge when the ring size is outside
// [2, ctx.MaxRingSize()], ErrIndexOutOfRange when idx is not a ring
// position and ErrKeyMismatch when ring[idx] is not the secret's public key.
//
// The ring is copied; later changes to the caller's slice have no effect.
func NewProver(ctx *Context, secret *Secret, ring []*Public, idx int) (*Prover, error) {
	if err := ctx.checkRingSize(len(ring)); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(ring) {
		return nil, fmt.Errorf("%w: index %d, ring size %d", ErrIndexOutOfRange, idx, len(ring))
	}
	for j, pk := range ring {
		if pk == nil {
			return nil, fmt.Errorf("ring member %d: %w", j, ErrInvalidEncoding)
		}
	}
	if secret == nil || secret.scalar == nil || secret.public == nil || !ring[idx].Equal(secret.public) {
		return nil, fmt.Errorf("%w: ring member %d", ErrKeyMismatch, idx)
	}

	members := make([]*Public, len(ring))
	copy(members, ring)

	bases, err := ctx.keyImageBases(members)
	if err != nil {
		return nil, err
	}
	x := ctx.group.NewScalar().Set(secret.scalar)

	return &Prover{
		ctx:    ctx,
		secret: x,
		ring:   members,
		idx:    idx,
		digest: ctx.ringDigest(members),
		bases:  bases,
		image:  ctx.group.NewPoint().ScalarMult(x, bases[idx]),
	}, nil
}

// KeyImage returns the encoding of the prover's key image, the value every
// signature from this secret carries regardless of ring or message.
func (p *Prover) KeyImage() []byte {
	return p.image.Bytes()
}

// Index returns the prover's position in the ring.
func (p *Prover) Index() int { return p.idx }

// Ring returns a copy of the ring the prover signs for.
func (p *Prover) Ring() []*Public {
	out := make([]*Public, len(p.ring))
	copy(out, p.ring)
	return out
}

// Sign produces a linkable ring signature over message. rng supplies the
// nonce entropy and the decoy responses; a read failure is reported as
// ErrRandomnessUnavailable and no proof is returned.
func (p *Prover) Sign(rng io.Reader, message []byte) (*Proof, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}

	ch := &chain{
		ctx:   p.ctx,
		ring:  p.ring,
		bases: p.bases,
		image: p.image,
		seed:  p.ctx.seedFor(modeSignature, p.digest, p.image, message),
	}
	return p.prove(rng, ch)
}

// RingVRFSign evaluates the VRF on input and proves, anonymously within the
// ring, that the output was computed with one of the ring's secrets. aux is
// authenticated by the proof but does not affect the output.
//
// The returned proof's KeyImage is the VRF output point; see
// [Context.OutputHash].
func (p *Prover) RingVRFSign(rng io.Reader, input, aux []byte) (*Proof, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}

	h, err := p.ctx.vrfInputPoint(input)
	if err != nil {
		return nil, err
	}
	output := p.ctx.group.NewPoint().ScalarMult(p.secret, h)
	ch := &chain{
		ctx:   p.ctx,
		ring:  p.ring,
		bases: []group.Point{h},
		image: output,
		seed:  p.ctx.seedFor(modeVRF, p.digest, output, input, aux),
	}
	return p.prove(rng, ch)
}

// prove runs the decoy chain starting after the signer, then closes the
// loop with the real response s_π = k - c_π·x.
func (p *Prover) prove(rng io.Reader, ch *chain) (*Proof, error) {
	g := p.ctx.group
	n := len(p.ring)

	k, err := p.nonce(rng, ch.seed)
	if err != nil {
		return nil, err
	}
	defer k.Zeroize()

	c := make([]group.Scalar, n)
	s := make([]group.Scalar, n)

	kG := g.NewPoint().ScalarMult(k, g.Generator())
	kB := g.NewPoint().ScalarMult(k, ch.base(p.idx))
	c[(p.idx+1)%n] = ch.challenge(p.idx, kG, kB)

	for step := 1; step < n; step++ {
		j := (p.idx + step) % n
		sj, err := g.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
		}
		s[j] = sj
		c[(j+1)%n] = ch.step(j, sj, c[j])
	}

	cx := g.NewScalar().Mul(c[p.idx], p.secret)
	s[p.idx] = g.NewScalar().Sub(k, cx)
	cx.Zeroize()

	return &Proof{
		C0:       c[0],
		S:        s,
		KeyImage: g.NewPoint().Set(ch.image),
	}, nil
}

// nonce derives k from fresh randomness hedged with the secret and the
// seed, so a weak rng alone does not expose x. It never returns zero.
func (p *Prover) nonce(rng io.Reader, seed []byte) (group.Scalar, error) {
	var entropy [nonceEntropySize]byte
	defer clear(entropy[:])

	x := p.secret.Bytes()
	defer clear(x)

	for {
		if _, err := io.ReadFull(rng, entropy[:]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
		}
		k := p.ctx.hashToScalar(tagNonce, entropy[:], x, seed)
		if !k.IsZero() {
			return k, nil
		}
	}
}

// Close erases the prover's copy of the secret. Later calls to Sign fail
// with ErrClosed. Close is idempotent.
func (p *Prover) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.secret.Zeroize()
		p.closed = true
	}
	return nil
}

func (c *Context) checkRingSize(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: %d members", ErrRingTooSmall, n)
	}
	if n > c.maxRingSize {
		return fmt.Errorf("%w: %d members, limit %d", ErrRingTooLarge, n, c.maxRingSize)
	}
	return nil
}
