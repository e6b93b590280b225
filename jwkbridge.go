package jwt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
)

// minRSAModulusBits is the floor enforced at every RSA conversion, both
// encode and decode: any JWK whose modulus is narrower fails closed.
const minRSAModulusBits = 2048

func decodeBigInt(b64 Base64UrlString) *big.Int {
	raw, _ := base64.RawURLEncoding.DecodeString(string(b64))
	return new(big.Int).SetBytes(raw)
}

// encodeBigIntPadded encodes n as base64url, left-padding the big-endian
// bytes to exactly size bytes. Used for EC coordinates, which must never
// be truncated to fewer than the curve's coordinate length.
func encodeBigIntPadded(n *big.Int, size int) Base64UrlString {
	raw := n.Bytes()
	if len(raw) > size {
		raw = raw[len(raw)-size:]
	}

	padded := make([]byte, size)
	copy(padded[size-len(raw):], raw)

	return Base64UrlString(base64.RawURLEncoding.EncodeToString(padded))
}

// encodeBigIntUnpadded encodes n as base64url without padding or
// truncation, stripping any leading zero byte big.Int.Bytes() never
// produces but that a hand-rolled caller might otherwise add. Used for
// RSA "n" and "e".
func encodeBigIntUnpadded(n *big.Int) Base64UrlString {
	return Base64UrlString(base64.RawURLEncoding.EncodeToString(n.Bytes()))
}

// pointOnCurve reports whether (x, y) satisfies the curve's short
// Weierstrass equation y^2 = x^3 + a*x + b (mod p), independent of
// whatever the underlying crypto/elliptic implementation would do with
// the point — this check runs before the point is ever handed to a
// platform primitive (CVE-2022-21449-class defence in depth; see
// ecdsa.go's four-step signature sanity check for the related but
// distinct signature-shape validation).
func pointOnCurve(curve EcCurve, x, y *big.Int) bool {
	params := curve.Curve().Params()

	if x.Sign() < 0 || x.Cmp(params.P) >= 0 {
		return false
	}
	if y.Sign() < 0 || y.Cmp(params.P) >= 0 {
		return false
	}

	// y^2 mod p
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, params.P)

	// x^3 + a*x + b mod p; elliptic's short Weierstrass curves here all
	// have a == -3, matching crypto/elliptic's CurveParams convention.
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)

	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, params.P)

	return lhs.Cmp(rhs) == 0
}

// JwkToPublicKey converts a Jwk to a native public key suitable for
// signature verification. Symmetric JWKs are never convertible to a
// public key.
func JwkToPublicKey(j Jwk) (PublicKey, error) {
	switch j.Kty {
	case KeyTypeEC:
		x := decodeBigInt(j.X)
		y := decodeBigInt(j.Y)

		if !pointOnCurve(j.Crv, x, y) {
			return nil, malformed("EC point is not on the curve")
		}

		return &ecdsa.PublicKey{Curve: j.Crv.Curve(), X: x, Y: y}, nil
	case KeyTypeRSA:
		n := decodeBigInt(j.N)
		if n.BitLen() < minRSAModulusBits {
			return nil, malformed("RSA key must be at least %d bits", minRSAModulusBits)
		}

		e := decodeBigInt(j.E)
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
	case KeyTypeOct:
		return nil, malformed("a symmetric key has no public-key representation")
	default:
		return nil, malformed("unsupported key type %q", j.Kty)
	}
}

// JwkToPrivateKey converts a Jwk to a native private key suitable for
// signing.
func JwkToPrivateKey(j Jwk) (PrivateKey, error) {
	switch j.Kty {
	case KeyTypeEC:
		if j.D == "" {
			return nil, malformed("EC private key missing \"d\"")
		}

		x := decodeBigInt(j.X)
		y := decodeBigInt(j.Y)
		d := decodeBigInt(j.D)

		if !pointOnCurve(j.Crv, x, y) {
			return nil, malformed("EC point is not on the curve")
		}

		return &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: j.Crv.Curve(), X: x, Y: y},
			D:         d,
		}, nil
	case KeyTypeRSA:
		if j.RD == "" {
			return nil, malformed("RSA private key missing \"d\"")
		}

		n := decodeBigInt(j.N)
		if n.BitLen() < minRSAModulusBits {
			return nil, malformed("RSA key must be at least %d bits", minRSAModulusBits)
		}

		e := decodeBigInt(j.E)
		d := decodeBigInt(j.RD)
		p := decodeBigInt(j.P)
		q := decodeBigInt(j.Q)
		dp := decodeBigInt(j.DP)
		dq := decodeBigInt(j.DQ)
		qi := decodeBigInt(j.QI)

		key := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: n, E: int(e.Int64())},
			D:         d,
			Primes:    []*big.Int{p, q},
			Precomputed: rsa.PrecomputedValues{
				Dp:   dp,
				Dq:   dq,
				Qinv: qi,
			},
		}

		return key, nil
	case KeyTypeOct:
		return nil, malformed("use JwkToSymmetricKey for a symmetric key")
	default:
		return nil, malformed("unsupported key type %q", j.Kty)
	}
}

// JwkToSymmetricKey decodes "k" into raw key bytes for HMAC. The
// algorithm name comes from the JWK's "alg" field when present, or
// defaults to HS256.
func JwkToSymmetricKey(j Jwk) ([]byte, Algorithm, error) {
	if j.Kty != KeyTypeOct {
		return nil, Algorithm{}, malformed("not a symmetric key: kty=%q", j.Kty)
	}

	raw, err := base64.RawURLEncoding.DecodeString(string(j.K))
	if err != nil {
		return nil, Algorithm{}, malformed("k: %v", err)
	}

	alg := HS256
	if j.Alg != nil {
		alg = *j.Alg
	}

	return raw, alg, nil
}

// PublicKeyToJwk derives a Jwk from a native public key plus metadata.
// The EC curve is derived from the key's field size (256->P-256,
// 384->P-384, 521->P-521); any other size is an error.
func PublicKeyToJwk(key PublicKey, kid *Kid, alg *Algorithm) (Jwk, error) {
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		curve, err := curveFromFieldBits(k.Curve.Params().BitSize)
		if err != nil {
			return Jwk{}, err
		}

		return Jwk{
			Kty: KeyTypeEC,
			Crv: curve,
			X:   encodeBigIntPadded(k.X, curve.CoordinateLength()),
			Y:   encodeBigIntPadded(k.Y, curve.CoordinateLength()),
			Kid: kid,
			Alg: alg,
		}, nil
	case *rsa.PublicKey:
		if k.N.BitLen() < minRSAModulusBits {
			return Jwk{}, malformed("RSA key must be at least %d bits", minRSAModulusBits)
		}

		return Jwk{
			Kty: KeyTypeRSA,
			N:   encodeBigIntUnpadded(k.N),
			E:   encodeBigIntUnpadded(big.NewInt(int64(k.E))),
			Kid: kid,
			Alg: alg,
		}, nil
	default:
		return Jwk{}, malformed("unsupported public key type %T", key)
	}
}

// PrivateKeyToJwk derives a private Jwk from a native private key,
// including "d" (EC, padded to coordinate length) or the full RSA CRT
// parameter set.
func PrivateKeyToJwk(key PrivateKey, kid *Kid, alg *Algorithm) (Jwk, error) {
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		pub, err := PublicKeyToJwk(&k.PublicKey, kid, alg)
		if err != nil {
			return Jwk{}, err
		}

		pub.D = encodeBigIntPadded(k.D, pub.Crv.CoordinateLength())
		return pub, nil
	case *rsa.PrivateKey:
		pub, err := PublicKeyToJwk(&k.PublicKey, kid, alg)
		if err != nil {
			return Jwk{}, err
		}

		k.Precompute()

		pub.RD = encodeBigIntUnpadded(k.D)
		pub.P = encodeBigIntUnpadded(k.Primes[0])
		pub.Q = encodeBigIntUnpadded(k.Primes[1])
		pub.DP = encodeBigIntUnpadded(k.Precomputed.Dp)
		pub.DQ = encodeBigIntUnpadded(k.Precomputed.Dq)
		pub.QI = encodeBigIntUnpadded(k.Precomputed.Qinv)
		return pub, nil
	default:
		return Jwk{}, malformed("unsupported private key type %T", key)
	}
}

// SymmetricKeyToJwk wraps raw key bytes as a symmetric Jwk. "alg" is
// left unspecified unless the caller supplies one.
func SymmetricKeyToJwk(key []byte, kid *Kid, alg *Algorithm) Jwk {
	return Jwk{
		Kty: KeyTypeOct,
		K:   Base64UrlString(base64.RawURLEncoding.EncodeToString(key)),
		Kid: kid,
		Alg: alg,
	}
}

// suitableForVerification implements the §4.2 suitability predicate for
// verification: use unset or Sig, key_ops unset or containing Verify,
// alg unset or equal to want.
func suitableForVerification(j Jwk, want Algorithm) bool {
	return suitableFor(j, want, KeyOpVerify)
}

// suitableForSigning implements the §4.2 suitability predicate for
// signing: use unset or Sig, key_ops unset or containing Sign, alg
// unset or equal to want.
func suitableForSigning(j Jwk, want Algorithm) bool {
	return suitableFor(j, want, KeyOpSign)
}

func suitableFor(j Jwk, want Algorithm, op KeyOp) bool {
	if j.Use != nil && *j.Use != KeyUseSig {
		return false
	}

	if len(j.KeyOps) > 0 && !containsKeyOp(j.KeyOps, op) {
		return false
	}

	if j.Alg != nil && j.Alg.Name() != want.Name() {
		return false
	}

	return true
}
