package jwt

import "encoding/json"

// RegisteredClaims holds the RFC 7519 §4.1 registered claims. All
// members are optional; a JSON null for any field is treated the same
// as the field being absent.
type RegisteredClaims struct {
	Issuer    *string      `json:"iss,omitempty"`
	Subject   *string      `json:"sub,omitempty"`
	Audience  *Audience    `json:"aud,omitempty"`
	Expiry    *NumericDate `json:"exp,omitempty"`
	NotBefore *NumericDate `json:"nbf,omitempty"`
	IssuedAt  *NumericDate `json:"iat,omitempty"`
	JTI       *string      `json:"jti,omitempty"`
}

// DecodeRegisteredClaims decodes payload bytes into RegisteredClaims.
// Unknown members are ignored, matching encoding/json's default
// behaviour when Decoder.DisallowUnknownFields is not used.
func DecodeRegisteredClaims(payload []byte) (RegisteredClaims, error) {
	var c RegisteredClaims
	if err := json.Unmarshal(payload, &c); err != nil {
		return RegisteredClaims{}, malformed("registered claims: %v", err)
	}

	return c, nil
}

// EncodeRegisteredClaims serialises c to its wire JSON object form. The
// result is always a JSON object (possibly "{}"), which the issuer's
// byte-level merge (§4.4) relies on.
func EncodeRegisteredClaims(c RegisteredClaims) ([]byte, error) {
	return json.Marshal(c)
}
