package jwt

import (
	"context"
	"encoding/base64"
	"time"
)

// Jwt is the result of a successful Validate: the decoded header, the
// caller's custom claims, and the registered claims, all already
// checked against the Validator's configured requirements.
type Jwt[A any] struct {
	Header     JoseHeader
	Claims     A
	Registered RegisteredClaims
}

// ValidatorConfig configures a Validator. The zero value has no
// issuer/audience/typ requirement and zero clock skew, but it rejects
// every token: AllowedAlgorithms must be set explicitly, since an empty
// allow-list admits nothing (there is no implicit "allow everything the
// key supports").
type ValidatorConfig struct {
	// KeyStore resolves the key a token's signature is checked against.
	KeyStore KeyStore

	// AllowedAlgorithms is the admission allow-list (§4.3 step 3). A
	// token whose header "alg" is not in this set is rejected with
	// ErrUnsupportedAlgorithm before any key resolution happens.
	AllowedAlgorithms []Algorithm

	// ClockSkew is the leeway applied on both sides of "exp" and "nbf".
	ClockSkew time.Duration

	// RequiredIssuer, if non-nil, must equal the token's "iss" claim.
	RequiredIssuer *string

	// RequiredAudience, if non-nil, must be a member of the token's
	// "aud" claim.
	RequiredAudience *string

	// RequiredTyp, if non-nil, must equal the token's header "typ".
	RequiredTyp *string
}

// Validator runs the §4.3 token-processor pipeline. It holds no mutable
// state after construction and is safe for concurrent use by multiple
// goroutines, the same way a configured http.Client is.
type Validator[A any] struct {
	cfg   ValidatorConfig
	codec ClaimsCodec[A]
}

// NewValidator builds a Validator using the default JSON claims codec.
func NewValidator[A any](cfg ValidatorConfig) *Validator[A] {
	return &Validator[A]{cfg: cfg, codec: JSONClaimsCodec[A]{}}
}

// NewValidatorWithCodec builds a Validator using a caller-supplied
// ClaimsCodec, for custom-claims types that aren't plain JSON.
func NewValidatorWithCodec[A any](cfg ValidatorConfig, codec ClaimsCodec[A]) *Validator[A] {
	return &Validator[A]{cfg: cfg, codec: codec}
}

// Validate runs every step of §4.3 in order: segment, decode header,
// check algorithm admission, resolve the verification key, verify the
// signature, decode the payload (as both A and RegisteredClaims), and
// check the registered claims against a single captured "now". Any
// step's failure short-circuits the rest.
func (v *Validator[A]) Validate(ctx context.Context, token string) (Jwt[A], error) {
	var zero Jwt[A]

	ts, err := ParseTokenString(token)
	if err != nil {
		return zero, err
	}

	headerJSON, err := decodeSegment(ts.Header())
	if err != nil {
		return zero, err
	}

	header, err := DecodeJoseHeader(headerJSON)
	if err != nil {
		return zero, err
	}

	if !algorithmAllowed(header.Alg, v.cfg.AllowedAlgorithms) {
		return zero, &UnsupportedAlgorithmError{Name: header.Alg.Name()}
	}

	key, err := ResolveVerificationKey(ctx, v.cfg.KeyStore, header)
	if err != nil {
		return zero, err
	}

	sig, err := decodeSegment(ts.Signature())
	if err != nil {
		return zero, err
	}

	if err := Verify(ts.SigningInput(), sig, key, header.Alg); err != nil {
		return zero, err
	}

	payloadJSON, err := decodeSegment(ts.Payload())
	if err != nil {
		return zero, err
	}

	claims, err := v.codec.Decode(payloadJSON)
	if err != nil {
		return zero, err
	}

	registered, err := DecodeRegisteredClaims(payloadJSON)
	if err != nil {
		return zero, err
	}

	now := Clock()
	if err := v.checkRegisteredClaims(header, registered, now); err != nil {
		return zero, err
	}

	return Jwt[A]{Header: header, Claims: claims, Registered: registered}, nil
}

func (v *Validator[A]) checkRegisteredClaims(header JoseHeader, c RegisteredClaims, now time.Time) error {
	if c.Expiry != nil {
		if !now.Before(c.Expiry.Time().Add(v.cfg.ClockSkew)) {
			return &ExpiredError{Expiry: c.Expiry.Seconds(), Now: now.Unix()}
		}
	}

	if c.NotBefore != nil {
		if now.Before(c.NotBefore.Time().Add(-v.cfg.ClockSkew)) {
			return &NotYetValidError{NotBefore: c.NotBefore.Seconds(), Now: now.Unix()}
		}
	}

	if v.cfg.RequiredIssuer != nil {
		actual := ""
		if c.Issuer != nil {
			actual = *c.Issuer
		}
		if c.Issuer == nil || *c.Issuer != *v.cfg.RequiredIssuer {
			return &InvalidIssuerError{Expected: *v.cfg.RequiredIssuer, Actual: actual}
		}
	}

	if v.cfg.RequiredAudience != nil {
		if c.Audience == nil || !c.Audience.Contains(*v.cfg.RequiredAudience) {
			var actual []string
			if c.Audience != nil {
				actual = c.Audience.Values()
			}
			return &InvalidAudienceError{Expected: *v.cfg.RequiredAudience, Actual: actual}
		}
	}

	if v.cfg.RequiredTyp != nil {
		if header.Typ == nil || *header.Typ != *v.cfg.RequiredTyp {
			return malformed("header \"typ\" does not match required value %q", *v.cfg.RequiredTyp)
		}
	}

	return nil
}

func algorithmAllowed(alg Algorithm, allowed []Algorithm) bool {
	for _, a := range allowed {
		if a.Name() == alg.Name() {
			return true
		}
	}

	return false
}

// decodeSegment decodes a compact-serialisation segment, which is
// always unpadded base64url per RFC 7515 §2.
func decodeSegment(s string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, malformed("invalid base64url segment: %v", err)
	}

	return data, nil
}

// encodeSegment produces a compact-serialisation segment.
func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
