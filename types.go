package jwt

import "strings"

// TokenString is a validated JWS compact serialisation: exactly three
// non-empty segments separated by ".", each containing only the
// base64url alphabet (A-Z a-z 0-9 - _). It is immutable after
// construction; the only way to obtain one is ParseTokenString, which
// runs a single-pass scan, or the issuer, which assembles one from
// segments produced by its own base64url encoder.
type TokenString struct {
	raw                  string
	header, payload, sig string
}

// String returns the compact serialisation.
func (t TokenString) String() string { return t.raw }

// Header, Payload and Signature return the three base64url segments,
// still encoded.
func (t TokenString) Header() string    { return t.header }
func (t TokenString) Payload() string   { return t.payload }
func (t TokenString) Signature() string { return t.sig }

// SigningInput returns the pre-signature ASCII byte range
// ("header.payload"), the exact bytes the signature engine signs and
// verifies over.
func (t TokenString) SigningInput() []byte {
	return []byte(t.header + "." + t.payload)
}

func isBase64URLByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	default:
		return false
	}
}

// ParseTokenString validates and wraps a compact serialisation. It scans
// s exactly once: no regex, no tolerant parsing. Any deviation — a
// missing segment, an empty segment, or a non-base64url character — is
// rejected.
func ParseTokenString(s string) (TokenString, error) {
	firstDot := -1
	secondDot := -1

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if firstDot == -1 {
				firstDot = i
				continue
			}
			if secondDot == -1 {
				secondDot = i
				continue
			}
			return TokenString{}, malformed("too many '.' separators")
		}

		if !isBase64URLByte(c) {
			return TokenString{}, malformed("invalid character %q at offset %d", c, i)
		}
	}

	if firstDot == -1 || secondDot == -1 {
		return TokenString{}, malformed("expected exactly two '.' separators")
	}

	header := s[:firstDot]
	payload := s[firstDot+1 : secondDot]
	sig := s[secondDot+1:]

	if header == "" || payload == "" || sig == "" {
		return TokenString{}, malformed("empty segment in compact serialisation")
	}

	return TokenString{raw: s, header: header, payload: payload, sig: sig}, nil
}

// joinTokenString assembles a TokenString from three already-encoded,
// already-validated base64url segments without re-scanning them; used
// by the issuer, which builds each segment through the same base64url
// encoder that ParseTokenString's alphabet check accepts.
func joinTokenString(header, payload, sig string) TokenString {
	return TokenString{
		raw:     header + "." + payload + "." + sig,
		header:  header,
		payload: payload,
		sig:     sig,
	}
}

// Base64UrlString is a non-empty string restricted to the base64url
// alphabet without padding. Every key-material field of a Jwk is one of
// these on the wire.
type Base64UrlString string

// NewBase64UrlString validates s and returns it wrapped, or an error if s
// is empty or contains a character outside the base64url alphabet.
func NewBase64UrlString(s string) (Base64UrlString, error) {
	if s == "" {
		return "", malformed("base64url string must not be empty")
	}

	for i := 0; i < len(s); i++ {
		if !isBase64URLByte(s[i]) {
			return "", malformed("invalid base64url character %q at offset %d", s[i], i)
		}
	}

	return Base64UrlString(s), nil
}

// Kid is a non-empty key identifier. The empty string is rejected at
// construction so that "no kid" is always represented as the absence of
// a Kid (e.g. a nil *Kid or an unset Option), never as a zero value that
// could be silently matched against.
type Kid string

// NewKid validates s and returns it wrapped, or an error if s is empty.
func NewKid(s string) (Kid, error) {
	if s == "" {
		return "", malformed("kid must not be empty")
	}

	return Kid(s), nil
}

// trimPadding strips "=" padding characters a caller might have left on
// an otherwise-standard base64url string. No decode path in this package
// calls it: segments and key fields are decoded as unpadded base64url.
func trimPadding(s string) string {
	return strings.TrimRight(s, "=")
}
