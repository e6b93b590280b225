package jwt

import "encoding/json"

// ClaimsCodec encodes and decodes the custom claims type A carried
// alongside RegisteredClaims. The default implementation is JSON; a
// caller with a different wire format for its own claims type (CBOR,
// protobuf-over-JWT, a hand-rolled struct tag scheme) supplies its own.
type ClaimsCodec[A any] interface {
	Decode(payload []byte) (A, error)
	Encode(value A) ([]byte, error)
}

// JSONClaimsCodec is the default ClaimsCodec: encoding/json, same as
// every other wire structure in this package.
type JSONClaimsCodec[A any] struct{}

func (JSONClaimsCodec[A]) Decode(payload []byte) (A, error) {
	var v A
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, malformed("decoding claims: %v", err)
	}
	return v, nil
}

func (JSONClaimsCodec[A]) Encode(value A) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, malformed("encoding claims: %v", err)
	}
	return data, nil
}
