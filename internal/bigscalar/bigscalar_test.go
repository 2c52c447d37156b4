package bigscalar

import (
	"bytes"
	"math/big"
	"testing"
)

var testOrder = big.NewInt(1000003)

func TestSetBytes(t *testing.T) {
	enc := make([]byte, Size)
	testOrder.FillBytes(enc)
	if _, err := New(testOrder).SetBytes(enc); err == nil {
		t.Error("order accepted as a scalar")
	}

	big.NewInt(42).FillBytes(enc)
	s, err := New(testOrder).SetBytes(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Bytes(), enc) {
		t.Error("roundtrip failed")
	}
}

func TestMixedOrdersPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a := New(testOrder)
	b := New(big.NewInt(7))
	New(testOrder).Add(a, b)
}

func TestZeroize(t *testing.T) {
	s := New(testOrder).SetUniformBytes([]byte{0x12, 0x34}).(*Scalar)
	words := s.inner.Bits()
	s.Zeroize()
	for _, w := range words {
		if w != 0 {
			t.Fatal("backing words not cleared")
		}
	}
	if !s.IsZero() {
		t.Error("scalar not zero")
	}
}

func TestRandomShortRead(t *testing.T) {
	if _, err := Random(testOrder, bytes.NewReader(make([]byte, Size))); err == nil {
		t.Error("expected error on short read")
	}
}
