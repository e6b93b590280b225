package jwt

import (
	"crypto/ecdsa"
	"crypto/rsa"
)

// PublicKey and PrivateKey are deliberately unconstrained: the concrete
// type each algorithm family accepts is documented on its Sign/Verify
// function and enforced with a type assertion there (*rsa.PublicKey,
// *ecdsa.PublicKey, []byte for HMAC, ...). A mismatched type is reported
// as ErrMalformedToken, never a panic.
type (
	PublicKey  = any
	PrivateKey = any
)

// Sign computes a signature over data using key and alg. For alg.Family
// == FamilyHMAC, key must be a []byte shared secret; for every other
// family, key must be the matching *rsa.PrivateKey or *ecdsa.PrivateKey.
func Sign(data []byte, key PrivateKey, alg Algorithm) ([]byte, error) {
	switch alg.Family() {
	case FamilyHMAC:
		secret, ok := key.([]byte)
		if !ok {
			return nil, malformed("HMAC signing requires a []byte key, got %T", key)
		}
		return hmacSign(data, secret, alg)
	case FamilyRSA:
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, malformed("RSA signing requires an *rsa.PrivateKey, got %T", key)
		}
		return rsaSign(data, priv, alg)
	case FamilyRSAPSS:
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, malformed("RSA-PSS signing requires an *rsa.PrivateKey, got %T", key)
		}
		return rsaPSSSign(data, priv, alg)
	case FamilyEC:
		priv, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, malformed("EC signing requires an *ecdsa.PrivateKey, got %T", key)
		}
		return ecdsaSign(data, priv, alg)
	default:
		return nil, malformed("unknown algorithm family")
	}
}

// Verify checks signature over data using key and alg. For alg.Family
// == FamilyHMAC, key must be a []byte shared secret and comparison is
// constant-time; for every other family, key must be the matching
// *rsa.PublicKey or *ecdsa.PublicKey.
func Verify(data, signature []byte, key PublicKey, alg Algorithm) error {
	switch alg.Family() {
	case FamilyHMAC:
		secret, ok := key.([]byte)
		if !ok {
			return malformed("HMAC verification requires a []byte key, got %T", key)
		}
		return hmacVerify(data, signature, secret, alg)
	case FamilyRSA:
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return malformed("RSA verification requires an *rsa.PublicKey, got %T", key)
		}
		return rsaVerify(data, signature, pub, alg)
	case FamilyRSAPSS:
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return malformed("RSA-PSS verification requires an *rsa.PublicKey, got %T", key)
		}
		return rsaPSSVerify(data, signature, pub, alg)
	case FamilyEC:
		pub, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return malformed("EC verification requires an *ecdsa.PublicKey, got %T", key)
		}
		return ecdsaVerify(data, signature, pub, alg)
	default:
		return malformed("unknown algorithm family")
	}
}
