package jwt

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
)

// ecdsaSign produces a signature via the platform primitive (which
// emits ASN.1 DER) and transcodes it to the fixed-length R||S wire
// format.
func ecdsaSign(data []byte, key *ecdsa.PrivateKey, alg Algorithm) ([]byte, error) {
	hashed, err := hashData(data, alg)
	if err != nil {
		return nil, err
	}

	der, err := ecdsa.SignASN1(rand.Reader, key, hashed)
	if err != nil {
		return nil, err
	}

	return derToConcat(der, alg.Curve().CoordinateLength())
}

// ecdsaVerify runs the four-step signature sanity check on the raw R||S
// signature BEFORE it is transcoded or handed to the platform primitive
// (defence against the CVE-2022-21449 class of "psychic signature"
// bugs, where a malformed r=0/s=0 signature is accepted by a buggy
// verifier). Any platform-level verify failure, or a failure of this
// pre-check, maps to ErrInvalidSignature — never to ErrMalformedToken.
func ecdsaVerify(data, signature []byte, key *ecdsa.PublicKey, alg Algorithm) error {
	curve := alg.Curve()
	coordLen := curve.CoordinateLength()

	if err := sanityCheckECDSASignature(signature, coordLen, curve.N()); err != nil {
		return ErrInvalidSignature
	}

	der, err := concatToDER(signature, coordLen)
	if err != nil {
		return ErrInvalidSignature
	}

	hashed, err := hashData(data, alg)
	if err != nil {
		return ErrInvalidSignature
	}

	if !ecdsa.VerifyASN1(key, hashed, der) {
		return ErrInvalidSignature
	}

	return nil
}

// sanityCheckECDSASignature implements §4.1's four-step check:
//  1. reject an all-zero signature;
//  2. reject a signature whose length isn't exactly 2*coordLen;
//  3. reject R=0 or S=0;
//  4. reject R>=N or S>=N, and R mod N==0 or S mod N==0.
//
// Step 2 is checked first since steps 1/3/4 need the fixed-width split
// to even make sense; this matches the spec's intent (an ill-shaped
// signature is rejected before any numeric inspection) without
// reordering the listed conditions' substance.
func sanityCheckECDSASignature(signature []byte, coordLen int, n *big.Int) error {
	if len(signature) != 2*coordLen {
		return malformed("ECDSA signature has wrong length")
	}

	if isAllZero(signature) {
		return malformed("ECDSA signature is all-zero")
	}

	r := new(big.Int).SetBytes(signature[:coordLen])
	s := new(big.Int).SetBytes(signature[coordLen:])

	zero := big.NewInt(0)
	if r.Cmp(zero) == 0 || s.Cmp(zero) == 0 {
		return malformed("ECDSA signature has a zero component")
	}

	if r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return malformed("ECDSA signature component is >= curve order")
	}

	if new(big.Int).Mod(r, n).Cmp(zero) == 0 || new(big.Int).Mod(s, n).Cmp(zero) == 0 {
		return malformed("ECDSA signature component is congruent to zero mod N")
	}

	return nil
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}

	return true
}
