package ring

import (
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hasher is the transcript hash shared by provers and verifiers. Every
// output must be at least 64 bytes so that reducing it modulo a ~256-bit
// order leaves negligible bias.
//
// Provers and verifiers interoperate only when they use the same Hasher
// with the same Prefix; a mismatch makes every proof fail verification.
type Hasher interface {
	// Name identifies the hash function in the context suite string.
	Name() string

	// Hash returns a digest of prefix || len(tag) || tag || data...
	Hash(tag string, data ...[]byte) []byte
}

// DefaultPrefix is the domain separation prefix used by the constructors
// in this file.
const DefaultPrefix = "RINGSIG-LSAG-v1"

func writeFramed(h hash.Hash, prefix, tag string, data [][]byte) []byte {
	h.Write([]byte(prefix))
	h.Write([]byte{byte(len(tag))})
	h.Write([]byte(tag))
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Blake2bHasher implements Hasher using Blake2b-512 with domain separation.
// This is the default transcript hash.
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	// Default: "RINGSIG-LSAG-v1"
	Prefix string
}

// NewBlake2bHasher creates a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{Prefix: DefaultPrefix}
}

// Name returns "blake2b512".
func (h *Blake2bHasher) Name() string { return "blake2b512" }

// Hash implements Hasher.Hash.
func (h *Blake2bHasher) Hash(tag string, data ...[]byte) []byte {
	hasher, _ := blake2b.New512(nil)
	return writeFramed(hasher, h.Prefix, tag, data)
}

// SHA3Hasher implements Hasher using SHA3-512.
type SHA3Hasher struct {
	// Prefix is the domain separation prefix.
	// Default: "RINGSIG-LSAG-v1"
	Prefix string
}

// NewSHA3Hasher creates a SHA3Hasher with the default prefix.
func NewSHA3Hasher() *SHA3Hasher {
	return &SHA3Hasher{Prefix: DefaultPrefix}
}

// Name returns "sha3-512".
func (h *SHA3Hasher) Name() string { return "sha3-512" }

// Hash implements Hasher.Hash.
func (h *SHA3Hasher) Hash(tag string, data ...[]byte) []byte {
	return writeFramed(sha3.New512(), h.Prefix, tag, data)
}

// SHA512Hasher implements Hasher using SHA-512.
type SHA512Hasher struct {
	// Prefix is the domain separation prefix.
	// Default: "RINGSIG-LSAG-v1"
	Prefix string
}

// NewSHA512Hasher creates a SHA512Hasher with the default prefix.
func NewSHA512Hasher() *SHA512Hasher {
	return &SHA512Hasher{Prefix: DefaultPrefix}
}

// Name returns "sha512".
func (h *SHA512Hasher) Name() string { return "sha512" }

// Hash implements Hasher.Hash.
func (h *SHA512Hasher) Hash(tag string, data ...[]byte) []byte {
	return writeFramed(sha512.New(), h.Prefix, tag, data)
}

// HasherByName returns the hasher registered under name ("blake2b512",
// "sha3-512" or "sha512") with the given domain prefix. An empty prefix
// selects DefaultPrefix.
func HasherByName(name, prefix string) (Hasher, bool) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	switch name {
	case "blake2b512", "blake2b":
		return &Blake2bHasher{Prefix: prefix}, true
	case "sha3-512", "sha3":
		return &SHA3Hasher{Prefix: prefix}, true
	case "sha512":
		return &SHA512Hasher{Prefix: prefix}, true
	}
	return nil, false
}
