package jwt

import (
	"crypto/rand"
	"crypto/rsa"
)

// rsaSign produces an RSA PKCS#1 v1.5 signature. The modulus floor is
// checked before the platform primitive ever runs, so an undersized key
// fails with ErrMalformedToken rather than whatever crypto/rsa happens
// to return.
func rsaSign(data []byte, key *rsa.PrivateKey, alg Algorithm) ([]byte, error) {
	if key.N.BitLen() < minRSAModulusBits {
		return nil, malformed("RSA key must be at least %d bits", minRSAModulusBits)
	}

	hashed, err := hashData(data, alg)
	if err != nil {
		return nil, err
	}

	return rsa.SignPKCS1v15(rand.Reader, key, alg.Hash(), hashed)
}

// rsaVerify checks an RSA PKCS#1 v1.5 signature. A key below the
// 2048-bit floor fails with ErrMalformedToken before the platform
// primitive runs; every verification failure maps to
// ErrInvalidSignature.
func rsaVerify(data, signature []byte, key *rsa.PublicKey, alg Algorithm) error {
	if key.N.BitLen() < minRSAModulusBits {
		return malformed("RSA key must be at least %d bits", minRSAModulusBits)
	}

	hashed, err := hashData(data, alg)
	if err != nil {
		return ErrInvalidSignature
	}

	if err := rsa.VerifyPKCS1v15(key, alg.Hash(), hashed, signature); err != nil {
		return ErrInvalidSignature
	}

	return nil
}

func hashData(data []byte, alg Algorithm) ([]byte, error) {
	h := alg.Hash().New()
	if _, err := h.Write(data); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}
