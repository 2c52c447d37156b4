// Package ring implements linkable ring signatures (LSAG) and a ring VRF
// over an arbitrary prime-order group.
//
// A ring signature proves that the holder of one of n public keys
// authorized a message without revealing which one. Each signature carries
// a key image I = x·Hp(P), a deterministic function of the signer's secret,
// so two signatures from the same secret can be recognized with [Linked]
// while the signer stays anonymous within the ring.
//
// # Context
//
// Every operation takes a [Context], which fixes the group, the transcript
// hash and the largest accepted ring. Provers and verifiers must use
// equivalent contexts. [Obtain] returns a process-wide default
// (Bandersnatch with Blake2b-512); [NewContext] builds one explicitly:
//
//	ctx, err := ring.NewContext(ring.Config{
//		Group:  &bjj.BJJ{},
//		Hasher: ring.NewSHA3Hasher(),
//	})
//
// # Signing
//
//	secret, _ := ring.GenerateSecret(ctx, rand.Reader)
//	keys := []*ring.Public{alice, secret.Public(), carol}
//
//	p, err := ring.NewProver(ctx, secret, keys, 1)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	proof, err := p.Sign(rand.Reader, []byte("hello"))
//
// # Verification
//
//	err := ring.VerifyBytes(ctx, keys, []byte("hello"), proof.Bytes())
//	if errors.Is(err, ring.ErrInvalidProof) {
//		// forged, or signed over a different message or ring
//	}
//
// A [Verifier] caches per-ring work when many proofs are checked against
// the same ring.
//
// # VRF
//
// [Prover.RingVRFSign] evaluates a verifiable random function anonymously
// within the ring; [Verifier.RingVRFVerify] returns the 32-byte output.
// [Prover.IETFSign] produces a non-anonymous proof of the same output.
//
// # Timing
//
// Secret scalars and nonces go through the group backend's arithmetic, and
// none of the backends is constant time. The Bandersnatch and Baby Jubjub
// backends use math/big and big.Int scalar multiplication; secp256k1 uses
// btcec's NonConst point operations. Do not sign where an attacker can time
// many signing operations with the same secret.
package ring
