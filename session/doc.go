// Package session exposes the ring signature engine through a flat,
// handle-based API for callers across a language boundary. It wraps the
// [ring] package with fixed binary layouts and status codes in place of Go
// values and errors.
//
// # Ownership
//
// [Registry.NewProver] copies the secret and the ring and returns a
// [Handle]. The caller owns the handle until it passes it to
// [Registry.Release], which erases the secret. Using a released handle
// reports CodeInvalidHandle.
//
// [Registry.NewVerifier] returns a handle to a verifier bound to one ring,
// used by [Registry.VerifyWith], [Registry.RingVRFVerify] and
// [Registry.IETFVerify] and released the same way. Passing a prover handle
// where a verifier is expected, or the reverse, reports CodeInvalidHandle.
//
//	reg := session.NewRegistry(nil, nil)
//
//	h, code := reg.NewProver(secret, ringBytes, idx)
//	if code != session.CodeOK {
//		return code
//	}
//	defer reg.Release(h)
//
//	proof, code := reg.Sign(h, message)
//
// # Status codes
//
// Every entry point returns a [Code]. No panic escapes the package; one
// raised internally is reported as CodeInternal. Only
// CodeRandomnessUnavailable is worth retrying, see [Code.Retryable].
//
// # Layouts
//
// A secret is one scalar and a ring is the concatenation of public key
// encodings, all fixed length for the registry's context. A proof over n
// members is exactly [Registry.ProofSize](n) bytes.
package session
