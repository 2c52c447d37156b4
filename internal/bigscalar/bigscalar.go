// Package bigscalar implements [group.Scalar] with math/big for curves whose
// scalar field has no dedicated field implementation in gnark-crypto.
//
// Values are fixed 32-byte big-endian on the wire. Arithmetic is not
// constant time.
package bigscalar

import (
	"errors"
	"io"
	"math/big"
	"runtime"

	"github.com/f3rmion/ringsig/group"
)

// Size is the encoded length of a scalar.
const Size = 32

// Scalar is an integer modulo order. Scalars from different orders must not
// be mixed; arithmetic methods panic when they are.
type Scalar struct {
	inner *big.Int
	order *big.Int
}

// New returns a zero scalar modulo order. order is shared, not copied.
func New(order *big.Int) *Scalar {
	return &Scalar{inner: new(big.Int), order: order}
}

// Random reads 64 bytes from r and reduces them modulo order.
func Random(order *big.Int, r io.Reader) (*Scalar, error) {
	var buf [2 * Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := New(order)
	s.SetUniformBytes(buf[:])
	zero(buf[:])
	return s, nil
}

// BigInt returns the scalar's value. The result aliases internal state and
// must not be modified.
func (s *Scalar) BigInt() *big.Int {
	return s.inner
}

// reduce ensures the scalar is in the range [0, order).
func (s *Scalar) reduce() {
	s.inner.Mod(s.inner, s.order)
}

func (s *Scalar) cast(a group.Scalar) *Scalar {
	other := a.(*Scalar)
	if other.order.Cmp(s.order) != 0 {
		panic("bigscalar: scalars from different groups")
	}
	return other
}

// Add sets s to a + b (mod order) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(s.cast(a).inner, s.cast(b).inner)
	s.reduce()
	return s
}

// Sub sets s to a - b (mod order) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(s.cast(a).inner, s.cast(b).inner)
	s.reduce()
	return s
}

// Mul sets s to a * b (mod order) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(s.cast(a).inner, s.cast(b).inner)
	s.reduce()
	return s
}

// Negate sets s to -a (mod order) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(s.cast(a).inner)
	s.reduce()
	return s
}

// Invert sets s to a^(-1) (mod order) and returns s.
// Returns an error if a is zero, as zero has no multiplicative inverse.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := s.cast(a)
	if aScalar.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.ModInverse(aScalar.inner, s.order)
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(s.cast(a).inner)
	return s
}

// Bytes returns the scalar as a 32-byte big-endian representation.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, Size)
	s.inner.FillBytes(out)
	return out
}

// SetBytes sets s from a 32-byte big-endian encoding and returns s.
// Values not below the order are rejected rather than reduced.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != Size {
		return nil, group.ErrInvalidEncoding
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(s.order) >= 0 {
		return nil, group.ErrInvalidEncoding
	}
	s.inner.Set(v)
	return s, nil
}

// SetUniformBytes sets s to data (big-endian) mod order and returns s.
func (s *Scalar) SetUniformBytes(data []byte) group.Scalar {
	s.inner.SetBytes(data)
	s.reduce()
	return s
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Cmp(s.cast(b).inner) == 0
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.Sign() == 0
}

// Zeroize clears the words backing s.
func (s *Scalar) Zeroize() {
	words := s.inner.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	s.inner.SetInt64(0)
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
