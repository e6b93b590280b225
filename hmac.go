package jwt

import (
	"crypto/hmac"
)

// hmacSign computes the MAC over data using alg's hash and returns the
// raw MAC bytes.
func hmacSign(data, secret []byte, alg Algorithm) ([]byte, error) {
	h := hmac.New(alg.Hash().New, secret)
	if _, err := h.Write(data); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

// hmacVerify recomputes the MAC locally and compares it against
// signature in constant time. It never returns anything but
// ErrInvalidSignature on mismatch — a recompute failure is not expected
// to happen with a hash.Hash, but if it ever did, it is still reported
// as an invalid signature rather than a distinguishable error, so a
// caller can't use error identity to learn anything about internal
// state.
func hmacVerify(data, signature, secret []byte, alg Algorithm) error {
	expected, err := hmacSign(data, secret, alg)
	if err != nil {
		return ErrInvalidSignature
	}

	if !constantTimeCompare(expected, signature) {
		return ErrInvalidSignature
	}

	return nil
}

// constantTimeCompare reports whether a and b hold identical bytes,
// taking time independent of where (or whether) they first differ and
// independent of whether their lengths match.
//
// This is the security contract, not an optimisation detail: a single
// pass XOR-accumulates every byte and only ANDs in the length-equality
// check at the very end. When lengths differ, the loop still walks the
// full length of a (comparing it against itself past b's end) so the
// number of iterations — and therefore the timing — never depends on
// len(b). Do not rewrite this with bytes.Equal or an early return; both
// leak timing information through length and position of the first
// mismatch.
//
//go:noinline
func constantTimeCompare(a, b []byte) bool {
	n := len(a)
	lengthsMatch := len(a) == len(b)

	var diff byte
	for i := 0; i < n; i++ {
		var bb byte
		if i < len(b) {
			bb = b[i]
		} else {
			// Lengths differ: keep the loop running for the same number
			// of iterations regardless of len(b) by comparing a[i]
			// against itself past b's end. This keeps the instruction
			// count, and so the timing, a function of len(a) alone.
			bb = a[i]
		}

		diff |= a[i] ^ bb
	}

	return diff == 0 && lengthsMatch
}
