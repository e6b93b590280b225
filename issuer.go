package jwt

import (
	"context"

	"github.com/google/uuid"
)

// IssuerConfig configures an Issuer.
type IssuerConfig struct {
	// KeyStore resolves the key a token is signed with.
	KeyStore KeyStore

	// Algorithm is the JWA algorithm every issued token is signed with.
	Algorithm Algorithm

	// Kid, if set, selects the signing key (only a key with this kid is
	// used) and is the header "kid" stamped on every issued token.
	Kid *Kid

	// Typ, if set, is stamped as the header "typ" (e.g. "JWT").
	Typ *string

	// Cty, if set, is stamped as the header "cty".
	Cty *string

	// GenerateJTI fills an unset RegisteredClaims.JTI with a fresh
	// random UUID before signing. Off by default: callers who want
	// unique jtis either set one explicitly per call or opt into this.
	GenerateJTI bool
}

// Issuer runs the §4.4 token-issuer pipeline. Like Validator, it holds
// no mutable state after construction and is safe for concurrent use.
type Issuer[A any] struct {
	cfg   IssuerConfig
	codec ClaimsCodec[A]
}

// NewIssuer builds an Issuer using the default JSON claims codec.
func NewIssuer[A any](cfg IssuerConfig) *Issuer[A] {
	return &Issuer[A]{cfg: cfg, codec: JSONClaimsCodec[A]{}}
}

// NewIssuerWithCodec builds an Issuer using a caller-supplied
// ClaimsCodec.
func NewIssuerWithCodec[A any](cfg IssuerConfig, codec ClaimsCodec[A]) *Issuer[A] {
	return &Issuer[A]{cfg: cfg, codec: codec}
}

// Issue builds, signs and serialises a token carrying claims and
// registered alongside it. The two claim sets are encoded
// independently and merged at the byte level (§4.4): registered's
// fields win on any name collision with claims', since registered is
// spliced in second.
func (i *Issuer[A]) Issue(ctx context.Context, claims A, registered RegisteredClaims) (TokenString, error) {
	if i.cfg.GenerateJTI && registered.JTI == nil {
		id := uuid.NewString()
		registered.JTI = &id
	}

	header := JoseHeader{Alg: i.cfg.Algorithm, Typ: i.cfg.Typ, Cty: i.cfg.Cty, Kid: i.cfg.Kid}

	headerJSON, err := EncodeJoseHeader(header)
	if err != nil {
		return TokenString{}, err
	}

	claimsJSON, err := i.codec.Encode(claims)
	if err != nil {
		return TokenString{}, err
	}

	registeredJSON, err := EncodeRegisteredClaims(registered)
	if err != nil {
		return TokenString{}, err
	}

	payloadJSON, err := mergeClaimObjects(claimsJSON, registeredJSON)
	if err != nil {
		return TokenString{}, err
	}

	headerSeg := encodeSegment(headerJSON)
	payloadSeg := encodeSegment(payloadJSON)

	signingInput := []byte(headerSeg + "." + payloadSeg)

	key, err := ResolveSigningKey(ctx, i.cfg.KeyStore, i.cfg.Algorithm, i.cfg.Kid)
	if err != nil {
		return TokenString{}, err
	}

	sig, err := Sign(signingInput, key, i.cfg.Algorithm)
	if err != nil {
		return TokenString{}, err
	}

	return joinTokenString(headerSeg, payloadSeg, encodeSegment(sig)), nil
}

// mergeClaimObjects splices two JSON objects together at the byte
// level without a decode/re-encode round trip, so the custom claims
// codec's own field ordering and number formatting survive untouched
// into the final token. Both a and b must be serialised JSON objects;
// anything else (e.g. a ClaimsCodec that encodes to an array or scalar)
// is rejected with ErrMalformedToken. b's fields take precedence on a name collision, since b is
// spliced in after a and encoding/json's decoder keeps the last value
// it sees for a repeated key.
func mergeClaimObjects(a, b []byte) ([]byte, error) {
	if len(a) < 2 || a[0] != '{' || a[len(a)-1] != '}' {
		return nil, malformed("claims codec did not produce a JSON object")
	}
	if len(b) < 2 || b[0] != '{' || b[len(b)-1] != '}' {
		return nil, malformed("registered claims encoder did not produce a JSON object")
	}

	aEmpty := isEmptyJSONObject(a)
	bEmpty := isEmptyJSONObject(b)

	switch {
	case aEmpty && bEmpty:
		return []byte("{}"), nil
	case aEmpty:
		return b, nil
	case bEmpty:
		return a, nil
	}

	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a[:len(a)-1]...) // a without its trailing '}'
	out = append(out, ',')
	out = append(out, b[1:]...) // b without its leading '{'

	return out, nil
}

func isEmptyJSONObject(data []byte) bool {
	for _, b := range data[1 : len(data)-1] {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
