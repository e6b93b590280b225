package jwt

import (
	"crypto/rand"
	"crypto/rsa"
)

// pssOptions returns the RSA-PSS parameters for alg: MGF1 matching the
// hash, salt length equal to the hash's output size, trailer field 1
// (rsa.PSSSaltLengthEqualsHash already implies trailer field 1 in
// crypto/rsa's implementation).
func pssOptions(alg Algorithm) *rsa.PSSOptions {
	return &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       alg.Hash(),
	}
}

// rsaPSSSign produces an RSASSA-PSS signature.
func rsaPSSSign(data []byte, key *rsa.PrivateKey, alg Algorithm) ([]byte, error) {
	if key.N.BitLen() < minRSAModulusBits {
		return nil, malformed("RSA key must be at least %d bits", minRSAModulusBits)
	}

	hashed, err := hashData(data, alg)
	if err != nil {
		return nil, err
	}

	return rsa.SignPSS(rand.Reader, key, alg.Hash(), hashed, pssOptions(alg))
}

// rsaPSSVerify checks an RSASSA-PSS signature.
func rsaPSSVerify(data, signature []byte, key *rsa.PublicKey, alg Algorithm) error {
	if key.N.BitLen() < minRSAModulusBits {
		return malformed("RSA key must be at least %d bits", minRSAModulusBits)
	}

	hashed, err := hashData(data, alg)
	if err != nil {
		return ErrInvalidSignature
	}

	if err := rsa.VerifyPSS(key, alg.Hash(), hashed, signature, pssOptions(alg)); err != nil {
		return ErrInvalidSignature
	}

	return nil
}
