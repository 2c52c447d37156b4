// Package k256 implements [group.Group] over secp256k1 using
// github.com/btcsuite/btcd/btcec/v2.
//
// Points travel as 33-byte SEC1 compressed encodings, so ring proofs over
// this group are one byte longer per key image than on the Edwards
// backends. The point at infinity is encoded as 33 zero bytes; the ring
// package rejects it wherever a public key or key image is expected.
package k256
