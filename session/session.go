package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/f3rmion/ringsig/ring"
)

// ErrInvalidHandle is reported for handles that were never issued or have
// already been released.
var ErrInvalidHandle = errors.New("session: invalid handle")

// Handle identifies a prover or verifier owned by the caller. Provers and
// verifiers draw from the same sequence, so a handle names at most one of
// them. The zero Handle is never issued.
type Handle uint64

// Registry holds provers and verifiers created on behalf of a caller on the
// other side of a language boundary. Each stays alive until its handle is
// passed to [Registry.Release], which erases a prover's secret.
//
// A Registry is safe for concurrent use. Operations on different handles
// proceed in parallel.
type Registry struct {
	ctx *ring.Context
	rng io.Reader

	mu      sync.Mutex
	next    Handle
	provers   map[Handle]*ring.Prover
	verifiers map[Handle]*ring.Verifier
}

// NewRegistry creates a registry whose provers use ctx. A nil ctx selects
// [ring.Obtain]; a nil rng selects crypto/rand.
func NewRegistry(ctx *ring.Context, rng io.Reader) *Registry {
	if ctx == nil {
		ctx = ring.Obtain()
	}
	if rng == nil {
		rng = rand.Reader
	}
	return &Registry{
		ctx:     ctx,
		rng:     rng,
		provers:   make(map[Handle]*ring.Prover),
		verifiers: make(map[Handle]*ring.Verifier),
	}
}

// Context returns the registry's ring context.
func (r *Registry) Context() *ring.Context {
	return r.ctx
}

// NewProver decodes a secret and a ring in their fixed layouts and binds
// the secret to ring position idx. On success the caller owns the
// returned handle and must release it.
//
// The registry keeps its own copies; the caller may clear secret as soon
// as NewProver returns.
func (r *Registry) NewProver(secret, ringBytes []byte, idx int) (h Handle, code Code) {
	defer recoverInternal(&code)

	sk, err := ring.SecretFromBytes(r.ctx, secret)
	if err != nil {
		return 0, CodeOf(err)
	}
	defer sk.Zeroize()

	members, err := ring.ParseRing(r.ctx, ringBytes)
	if err != nil {
		return 0, CodeOf(err)
	}
	p, err := ring.NewProver(r.ctx, sk, members, idx)
	if err != nil {
		return 0, CodeOf(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h = r.next
	r.provers[h] = p
	return h, CodeOK
}

// NewVerifier decodes a ring in its fixed layout and returns a handle to a
// verifier bound to it. The caller owns the handle and must release it.
func (r *Registry) NewVerifier(ringBytes []byte) (h Handle, code Code) {
	defer recoverInternal(&code)

	members, err := ring.ParseRing(r.ctx, ringBytes)
	if err != nil {
		return 0, CodeOf(err)
	}
	v, err := ring.NewVerifier(r.ctx, members)
	if err != nil {
		return 0, CodeOf(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h = r.next
	r.verifiers[h] = v
	return h, CodeOK
}

// Release invalidates h. For a prover it also erases the secret. Releasing
// an unknown handle reports CodeInvalidHandle.
func (r *Registry) Release(h Handle) (code Code) {
	defer recoverInternal(&code)

	r.mu.Lock()
	p, isProver := r.provers[h]
	_, isVerifier := r.verifiers[h]
	delete(r.provers, h)
	delete(r.verifiers, h)
	r.mu.Unlock()

	switch {
	case isProver:
		return CodeOf(p.Close())
	case isVerifier:
		return CodeOK
	default:
		return CodeInvalidHandle
	}
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.provers) + len(r.verifiers)
}

// Close releases every live handle.
func (r *Registry) Close() {
	r.mu.Lock()
	provers := r.provers
	r.provers = make(map[Handle]*ring.Prover)
	r.verifiers = make(map[Handle]*ring.Verifier)
	r.mu.Unlock()

	for _, p := range provers {
		p.Close()
	}
}

func (r *Registry) prover(h Handle) (*ring.Prover, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.provers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return p, nil
}

func (r *Registry) verifier(h Handle) (*ring.Verifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.verifiers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return v, nil
}

// recoverInternal turns a panic into CodeInternal so that no panic crosses
// the package boundary.
func recoverInternal(code *Code) {
	if v := recover(); v != nil {
		*code = CodeInternal
	}
}
