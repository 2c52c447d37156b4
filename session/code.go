package session

import (
	"errors"

	"github.com/f3rmion/ringsig/ring"
)

// Code is the status returned by every entry point of this package. Zero
// means success.
type Code int32

const (
	// CodeOK reports success.
	CodeOK Code = iota
	// CodeInvalidEncoding reports bytes that do not decode to a key or point.
	CodeInvalidEncoding
	// CodeNotInSubgroup reports a point outside the prime-order subgroup.
	CodeNotInSubgroup
	// CodeRingTooSmall reports a ring with fewer than two members.
	CodeRingTooSmall
	// CodeRingTooLarge reports a ring above the context's maximum size.
	CodeRingTooLarge
	// CodeIndexOutOfRange reports an index that is not a ring position.
	CodeIndexOutOfRange
	// CodeKeyMismatch reports a secret that is not the key at its index.
	CodeKeyMismatch
	// CodeRandomnessUnavailable reports a failed random source. It is the
	// only retryable code.
	CodeRandomnessUnavailable
	// CodeMalformedProof reports a proof that cannot be decoded.
	CodeMalformedProof
	// CodeInvalidProof reports a proof that decodes but does not verify.
	CodeInvalidProof
	// CodeInvalidHandle reports an unknown, released or wrong-kind handle.
	CodeInvalidHandle
	// CodeBufferTooSmall reports an output buffer shorter than the result.
	CodeBufferTooSmall
	// CodeInternal reports an unexpected failure, including a recovered panic.
	CodeInternal
)

var codeNames = [...]string{
	CodeOK:                    "ok",
	CodeInvalidEncoding:       "invalid encoding",
	CodeNotInSubgroup:         "not in subgroup",
	CodeRingTooSmall:          "ring too small",
	CodeRingTooLarge:          "ring too large",
	CodeIndexOutOfRange:       "index out of range",
	CodeKeyMismatch:           "key mismatch",
	CodeRandomnessUnavailable: "randomness unavailable",
	CodeMalformedProof:        "malformed proof",
	CodeInvalidProof:          "invalid proof",
	CodeInvalidHandle:         "invalid handle",
	CodeBufferTooSmall:        "buffer too small",
	CodeInternal:              "internal error",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Retryable reports whether repeating the same call may succeed. Every
// failure is deterministic in its inputs except an entropy failure.
func (c Code) Retryable() bool {
	return c == CodeRandomnessUnavailable
}

// codeTable is checked in order. MalformedProof comes before the size
// errors it may wrap.
var codeTable = []struct {
	err  error
	code Code
}{
	{ring.ErrMalformedProof, CodeMalformedProof},
	{ring.ErrInvalidProof, CodeInvalidProof},
	{ring.ErrNotInSubgroup, CodeNotInSubgroup},
	{ring.ErrInvalidEncoding, CodeInvalidEncoding},
	{ring.ErrRingTooSmall, CodeRingTooSmall},
	{ring.ErrRingTooLarge, CodeRingTooLarge},
	{ring.ErrIndexOutOfRange, CodeIndexOutOfRange},
	{ring.ErrKeyMismatch, CodeKeyMismatch},
	{ring.ErrRandomnessUnavailable, CodeRandomnessUnavailable},
	{ring.ErrClosed, CodeInvalidHandle},
	{ErrInvalidHandle, CodeInvalidHandle},
}

// CodeOf maps an error from the ring package to its status code. Unknown
// errors map to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeInternal
}
