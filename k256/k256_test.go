package k256

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/f3rmion/ringsig/group"
	"github.com/f3rmion/ringsig/group/grouptest"
)

func TestScalar(t *testing.T) {
	grouptest.TestScalar(t, &K256{})
}

func TestPoint(t *testing.T) {
	grouptest.TestPoint(t, &K256{})
}

func TestMapToPoint(t *testing.T) {
	grouptest.TestMapToPoint(t, &K256{})
}

func TestGeneratorEncoding(t *testing.T) {
	const want = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	got := hex.EncodeToString((&K256{}).Generator().Bytes())
	if got != want {
		t.Errorf("generator = %s, want %s", got, want)
	}
}

func TestMatchesBtcec(t *testing.T) {
	g := &K256{}
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.NewScalar().SetBytes(priv.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	P := g.NewPoint().ScalarMult(s, g.Generator())
	if !bytes.Equal(P.Bytes(), priv.PubKey().SerializeCompressed()) {
		t.Error("scalar multiplication disagrees with btcec")
	}
}

func TestSetBytesRejects(t *testing.T) {
	g := &K256{}

	t.Run("BadPrefix", func(t *testing.T) {
		enc := g.Generator().Bytes()
		enc[0] = 0x05
		if _, err := g.NewPoint().SetBytes(enc); !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("got %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("NotOnCurve", func(t *testing.T) {
		// x = 5 has no matching y on secp256k1.
		enc := make([]byte, PointSize)
		enc[0] = 0x02
		enc[PointSize-1] = 5
		if _, err := g.NewPoint().SetBytes(enc); !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("got %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("Uncompressed", func(t *testing.T) {
		priv, _ := btcec.NewPrivateKey()
		if _, err := g.NewPoint().SetBytes(priv.PubKey().SerializeUncompressed()); !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("got %v, want ErrInvalidEncoding", err)
		}
	})
}
