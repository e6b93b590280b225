package jwt

import (
	"encoding/json"
	"log/slog"
)

// KeyType discriminates the five Jwk variants via the wire "kty" field.
type KeyType string

const (
	KeyTypeEC  KeyType = "EC"
	KeyTypeRSA KeyType = "RSA"
	KeyTypeOct KeyType = "oct"
)

// Jwk is a tagged variant over the five key shapes this package admits:
// EC public, EC private, RSA public, RSA private, and symmetric. There
// is no virtual dispatch across variants — callers switch on Kty and
// read the field that matches it; the other fields are zero for a given
// variant.
type Jwk struct {
	Kty KeyType

	// EC fields (Kty == KeyTypeEC).
	Crv EcCurve
	X   Base64UrlString
	Y   Base64UrlString
	D   Base64UrlString // present only for an EC private key

	// RSA fields (Kty == KeyTypeRSA).
	N  Base64UrlString
	E  Base64UrlString
	RD Base64UrlString // "d", present only for an RSA private key
	P  Base64UrlString
	Q  Base64UrlString
	DP Base64UrlString
	DQ Base64UrlString
	QI Base64UrlString

	// Symmetric fields (Kty == KeyTypeOct).
	K Base64UrlString

	// Shared metadata, present on any variant.
	Use    *KeyUse
	KeyOps []KeyOp
	Alg    *Algorithm
	Kid    *Kid
}

// IsPrivate reports whether the Jwk carries private key material (an EC
// "d" or an RSA "d"/CRT set), as opposed to a public or symmetric key.
func (j Jwk) IsPrivate() bool {
	switch j.Kty {
	case KeyTypeEC:
		return j.D != ""
	case KeyTypeRSA:
		return j.RD != ""
	default:
		return false
	}
}

// wireJwk is the JSON shape of a Jwk. All fields are optional except
// "kty"; which ones are required is enforced per-variant in
// DecodeJwk/EncodeJwk, not by the struct tags.
type wireJwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	D   string `json:"d,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	P   string `json:"p,omitempty"`
	Q   string `json:"q,omitempty"`
	DP  string `json:"dp,omitempty"`
	DQ  string `json:"dq,omitempty"`
	QI  string `json:"qi,omitempty"`
	K   string `json:"k,omitempty"`

	Use    string   `json:"use,omitempty"`
	KeyOps []string `json:"key_ops,omitempty"`
	Alg    string   `json:"alg,omitempty"`
	Kid    string   `json:"kid,omitempty"`
}

// DecodeJwk decodes a single JWK's wire JSON. kty=OKP or anything
// outside {EC, RSA, oct} is a decode error, not a silently-ignored
// variant, per spec.
func DecodeJwk(data []byte) (Jwk, error) {
	var w wireJwk
	if err := json.Unmarshal(data, &w); err != nil {
		return Jwk{}, malformed("jwk: %v", err)
	}

	var j Jwk
	switch KeyType(w.Kty) {
	case KeyTypeEC:
		crv, err := ParseCurve(w.Crv)
		if err != nil {
			return Jwk{}, malformed("jwk: %v", err)
		}

		x, err := requireBase64URL("x", w.X)
		if err != nil {
			return Jwk{}, err
		}

		y, err := requireBase64URL("y", w.Y)
		if err != nil {
			return Jwk{}, err
		}

		j = Jwk{Kty: KeyTypeEC, Crv: crv, X: x, Y: y}
		if w.D != "" {
			d, err := NewBase64UrlString(w.D)
			if err != nil {
				return Jwk{}, malformed("jwk: d: %v", err)
			}
			j.D = d
		}
	case KeyTypeRSA:
		n, err := requireBase64URL("n", w.N)
		if err != nil {
			return Jwk{}, err
		}

		e, err := requireBase64URL("e", w.E)
		if err != nil {
			return Jwk{}, err
		}

		j = Jwk{Kty: KeyTypeRSA, N: n, E: e}

		if w.D != "" {
			// A private RSA JWK must carry the full CRT parameter set,
			// not just "d" (spec §3 invariant).
			fields := map[string]string{"d": w.D, "p": w.P, "q": w.Q, "dp": w.DP, "dq": w.DQ, "qi": w.QI}
			values := map[string]Base64UrlString{}
			for name, raw := range fields {
				v, err := requireBase64URL(name, raw)
				if err != nil {
					return Jwk{}, malformed("jwk: private RSA key missing CRT parameter %q", name)
				}
				values[name] = v
			}

			j.RD, j.P, j.Q, j.DP, j.DQ, j.QI = values["d"], values["p"], values["q"], values["dp"], values["dq"], values["qi"]
		}
	case KeyTypeOct:
		k, err := requireBase64URL("k", w.K)
		if err != nil {
			return Jwk{}, err
		}

		j = Jwk{Kty: KeyTypeOct, K: k}
	default:
		return Jwk{}, malformed("jwk: unsupported key type %q", w.Kty)
	}

	if w.Use != "" {
		use := KeyUse(w.Use)
		j.Use = &use
	}

	for _, op := range w.KeyOps {
		j.KeyOps = append(j.KeyOps, KeyOp(op))
	}

	if w.Alg != "" {
		alg, err := ParseAlgorithm(w.Alg)
		if err != nil {
			return Jwk{}, malformed("jwk: alg: %v", err)
		}
		j.Alg = &alg
	}

	if w.Kid != "" {
		kid, err := NewKid(w.Kid)
		if err != nil {
			return Jwk{}, malformed("jwk: %v", err)
		}
		j.Kid = &kid
	}

	return j, nil
}

func requireBase64URL(field, raw string) (Base64UrlString, error) {
	if raw == "" {
		return "", malformed("jwk: missing required field %q", field)
	}

	v, err := NewBase64UrlString(raw)
	if err != nil {
		return "", malformed("jwk: %s: %v", field, err)
	}

	return v, nil
}

// EncodeJwk serialises j to its wire JSON form.
func EncodeJwk(j Jwk) ([]byte, error) {
	w := wireJwk{Kty: string(j.Kty)}

	switch j.Kty {
	case KeyTypeEC:
		w.Crv = j.Crv.Name()
		w.X = string(j.X)
		w.Y = string(j.Y)
		if j.D != "" {
			w.D = string(j.D)
		}
	case KeyTypeRSA:
		w.N = string(j.N)
		w.E = string(j.E)
		if j.RD != "" {
			w.D, w.P, w.Q, w.DP, w.DQ, w.QI = string(j.RD), string(j.P), string(j.Q), string(j.DP), string(j.DQ), string(j.QI)
		}
	case KeyTypeOct:
		w.K = string(j.K)
	default:
		return nil, malformed("jwk: unsupported key type %q", j.Kty)
	}

	if j.Use != nil {
		w.Use = string(*j.Use)
	}

	for _, op := range j.KeyOps {
		w.KeyOps = append(w.KeyOps, string(op))
	}

	if j.Alg != nil {
		w.Alg = j.Alg.Name()
	}

	if j.Kid != nil {
		w.Kid = string(*j.Kid)
	}

	return json.Marshal(w)
}

// JwkSet is an ordered sequence of Jwk, the RFC 7517 §5 "keys" document.
type JwkSet struct {
	Keys []Jwk
}

type wireJwkSet struct {
	Keys []json.RawMessage `json:"keys"`
}

// DecodeJwkSet decodes a JWKS document. A missing "keys" member decodes
// to an empty set rather than an error.
func DecodeJwkSet(data []byte) (JwkSet, error) {
	var w wireJwkSet
	if err := json.Unmarshal(data, &w); err != nil {
		return JwkSet{}, malformed("jwks: %v", err)
	}

	set := JwkSet{Keys: make([]Jwk, 0, len(w.Keys))}
	for i, raw := range w.Keys {
		j, err := DecodeJwk(raw)
		if err != nil {
			return JwkSet{}, malformed("jwks: key %d: %v", i, err)
		}
		set.Keys = append(set.Keys, j)
	}

	return set, nil
}

// EncodeJwkSet serialises set to its wire JSON form.
func EncodeJwkSet(set JwkSet) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(set.Keys))
	for _, j := range set.Keys {
		b, err := EncodeJwk(j)
		if err != nil {
			return nil, err
		}
		raws = append(raws, json.RawMessage(b))
	}

	return json.Marshal(wireJwkSet{Keys: raws})
}

// redactedKey is the placeholder standing in for any key-material field
// whenever a Jwk is logged or formatted, never the raw bytes themselves.
const redactedKey = "[REDACTED]"

// redactedJwk wraps a Jwk so that passing it through slog, fmt, or any
// other text path never emits key material. Only the fields that
// identify a key (kty, kid, use, alg) are shown as-is.
type redactedJwk Jwk

// LogValue implements slog.LogValuer, giving a redactedJwk a group
// representation safe for any log sink regardless of handler.
func (j redactedJwk) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kty", string(j.Kty)),
		slog.Any("kid", j.Kid),
		slog.Any("use", j.Use),
		slog.Any("alg", j.Alg),
		slog.String("key_material", redactedKey),
	)
}

// String redacts the same way as LogValue, covering fmt.Println/%v.
func (j redactedJwk) String() string {
	kid := "none"
	if j.Kid != nil {
		kid = string(*j.Kid)
	}

	return "Jwk{kty=" + string(j.Kty) + " kid=" + kid + " " + redactedKey + "}"
}
