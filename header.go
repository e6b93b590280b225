package jwt

import (
	"bytes"
	"encoding/json"
)

// JoseHeader is the decoded JOSE header. Unknown members are ignored on
// decode; "alg" is required and "alg":"none" is rejected at decode time,
// before the header ever reaches algorithm admission.
type JoseHeader struct {
	Alg Algorithm
	Typ *string
	Cty *string
	Kid *Kid
}

// wireHeader is the JSON shape of JoseHeader. Alg is decoded as a raw
// string first so ParseAlgorithm's rejection of "none" and of unknown
// names turns into a structural MalformedToken, never into a later
// admission failure.
type wireHeader struct {
	Alg string  `json:"alg"`
	Typ *string `json:"typ,omitempty"`
	Cty *string `json:"cty,omitempty"`
	Kid *string `json:"kid,omitempty"`
}

// DecodeJoseHeader decodes raw JSON into a JoseHeader. Go's
// encoding/json accepts duplicate keys and silently keeps the last
// value, which is NOT acceptable here for a security-critical field, so
// this function first scans for duplicate top-level "alg" keys and only
// then decodes.
func DecodeJoseHeader(data []byte) (JoseHeader, error) {
	if err := rejectDuplicateKey(data, "alg"); err != nil {
		return JoseHeader{}, err
	}

	var w wireHeader
	if err := json.Unmarshal(data, &w); err != nil {
		return JoseHeader{}, malformed("header: %v", err)
	}

	if w.Alg == "" {
		return JoseHeader{}, malformed("header: missing required \"alg\"")
	}

	alg, err := ParseAlgorithm(w.Alg)
	if err != nil {
		return JoseHeader{}, malformed("header: %v", err)
	}

	h := JoseHeader{Alg: alg, Typ: w.Typ, Cty: w.Cty}
	if w.Kid != nil {
		kid, err := NewKid(*w.Kid)
		if err != nil {
			return JoseHeader{}, malformed("header: %v", err)
		}
		h.Kid = &kid
	}

	return h, nil
}

// EncodeJoseHeader serialises h to its wire JSON form.
func EncodeJoseHeader(h JoseHeader) ([]byte, error) {
	w := wireHeader{Alg: h.Alg.Name(), Typ: h.Typ, Cty: h.Cty}
	if h.Kid != nil {
		s := string(*h.Kid)
		w.Kid = &s
	}

	return json.Marshal(w)
}

// rejectDuplicateKey walks top-level JSON object keys with a streaming
// tokenizer and fails if key appears more than once. It does not
// recurse into nested objects/arrays, since the header has none beyond
// its four known scalar fields.
func rejectDuplicateKey(data []byte, key string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return malformed("header: %v", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return malformed("header: expected a JSON object")
	}

	seen := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return malformed("header: %v", err)
		}

		name, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return malformed("header: %v", err)
		}

		if d, ok := valTok.(json.Delim); ok && (d == '{' || d == '[') {
			if err := skipValue(dec); err != nil {
				return malformed("header: %v", err)
			}
		}

		if name == key {
			if seen {
				return malformed("header: duplicate %q field", key)
			}
			seen = true
		}
	}

	return nil
}

// skipValue consumes the remainder of a compound value whose opening
// delimiter has already been read.
func skipValue(dec *json.Decoder) error {
	want := 1
	for want > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				want++
			case '}', ']':
				want--
			}
		}
	}

	return nil
}
