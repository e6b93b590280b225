package jwt

import (
	"errors"
	"fmt"
)

// Error kinds returned across the package's API surface. Every operation
// surfaces one of these; none let a raw cryptographic or codec panic
// escape. Callers pattern-match with errors.Is/errors.As for finer
// control; an HTTP middleware in front of this package would map every
// one of them to 401 Unauthorized without distinguishing kind.
var (
	// ErrInvalidSignature is returned when a signature fails verification,
	// whether because of a bad MAC, a bad asymmetric signature, or a
	// signature that fails ECDSA's pre-verification sanity checks.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrUnsupportedAlgorithm is returned when a token's header names an
	// algorithm that is not in the validator's configured allow-list.
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported algorithm")

	// ErrKeyNotFound is returned by key resolution when zero or more than
	// one key in the store matches the header's selection criteria.
	ErrKeyNotFound = errors.New("jwt: key not found")

	// ErrMalformedToken is returned for structural parse errors, codec
	// errors, an EC point that is not on its curve, an unsupported key
	// type, an RSA key below the 2048-bit floor, and a "typ" mismatch.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrExpired is returned when the current time is at or past the
	// token's "exp" claim plus configured clock skew.
	ErrExpired = errors.New("jwt: token is expired")

	// ErrNotYetValid is returned when the current time is before the
	// token's "nbf" claim minus configured clock skew.
	ErrNotYetValid = errors.New("jwt: token is not valid yet")

	// ErrInvalidIssuer is returned when the validator requires a specific
	// issuer and the token's "iss" claim does not match it.
	ErrInvalidIssuer = errors.New("jwt: invalid issuer")

	// ErrInvalidAudience is returned when the validator requires a
	// specific audience member and the token's "aud" claim does not
	// contain it.
	ErrInvalidAudience = errors.New("jwt: invalid audience")
)

// MalformedTokenError wraps ErrMalformedToken with the structural cause,
// e.g. a base64url decode failure, a codec error, or a key-size floor
// violation. errors.Is(err, ErrMalformedToken) holds for every value of
// this type.
type MalformedTokenError struct {
	Cause string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("jwt: malformed token: %s", e.Cause)
}

func (e *MalformedTokenError) Unwrap() error { return ErrMalformedToken }

func malformed(format string, args ...any) error {
	return &MalformedTokenError{Cause: fmt.Sprintf(format, args...)}
}

// UnsupportedAlgorithmError wraps ErrUnsupportedAlgorithm with the
// offending algorithm name as it appeared in the header.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("jwt: unsupported algorithm %q", e.Name)
}

func (e *UnsupportedAlgorithmError) Unwrap() error { return ErrUnsupportedAlgorithm }

// KeyNotFoundError wraps ErrKeyNotFound. Kid is empty when the header
// carried no "kid" and resolution still failed to find exactly one
// suitable key.
type KeyNotFoundError struct {
	Kid string
}

func (e *KeyNotFoundError) Error() string {
	if e.Kid == "" {
		return "jwt: key not found (no kid in header, and not exactly one suitable key)"
	}

	return fmt.Sprintf("jwt: key not found for kid %q", e.Kid)
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// ExpiredError wraps ErrExpired with the claim and evaluation time, both
// as epoch seconds, for diagnostics.
type ExpiredError struct {
	Expiry int64
	Now    int64
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("jwt: token expired at %d, now %d", e.Expiry, e.Now)
}

func (e *ExpiredError) Unwrap() error { return ErrExpired }

// NotYetValidError wraps ErrNotYetValid with the claim and evaluation
// time, both as epoch seconds.
type NotYetValidError struct {
	NotBefore int64
	Now       int64
}

func (e *NotYetValidError) Error() string {
	return fmt.Sprintf("jwt: token not valid until %d, now %d", e.NotBefore, e.Now)
}

func (e *NotYetValidError) Unwrap() error { return ErrNotYetValid }

// InvalidIssuerError wraps ErrInvalidIssuer with the expected and actual
// issuer (actual is empty when the claim was absent).
type InvalidIssuerError struct {
	Expected string
	Actual   string
}

func (e *InvalidIssuerError) Error() string {
	return fmt.Sprintf("jwt: invalid issuer: expected %q, got %q", e.Expected, e.Actual)
}

func (e *InvalidIssuerError) Unwrap() error { return ErrInvalidIssuer }

// InvalidAudienceError wraps ErrInvalidAudience with the required
// audience member and the claim's actual audience set, rendered for
// diagnostics.
type InvalidAudienceError struct {
	Expected string
	Actual   []string
}

func (e *InvalidAudienceError) Error() string {
	return fmt.Sprintf("jwt: invalid audience: %q not in %v", e.Expected, e.Actual)
}

func (e *InvalidAudienceError) Unwrap() error { return ErrInvalidAudience }
