package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECKeyJwkRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	j, err := PrivateKeyToJwk(priv, nil, nil)
	require.NoError(t, err)
	assert.True(t, j.IsPrivate())

	back, err := JwkToPrivateKey(j)
	require.NoError(t, err)

	backKey, ok := back.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, priv.X, backKey.X)
	assert.Equal(t, priv.Y, backKey.Y)
	assert.Equal(t, priv.D, backKey.D)
}

func TestRSAKeyJwkRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	j, err := PrivateKeyToJwk(priv, nil, nil)
	require.NoError(t, err)
	assert.True(t, j.IsPrivate())

	back, err := JwkToPrivateKey(j)
	require.NoError(t, err)

	backKey, ok := back.(*rsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, priv.N, backKey.N)
	assert.Equal(t, priv.D, backKey.D)
}

func TestRSAKeyBelowFloorRejected(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	_, err = PublicKeyToJwk(&priv.PublicKey, nil, nil)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestPointOnCurveRejectsInvalidPoint(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	j, err := PublicKeyToJwk(&priv.PublicKey, nil, nil)
	require.NoError(t, err)

	// Corrupt Y by re-encoding a mutated coordinate: flips the point off
	// the curve with overwhelming probability.
	y := decodeBigInt(j.Y)
	y.Add(y, y)
	j.Y = encodeBigIntPadded(y, j.Crv.CoordinateLength())

	_, err = JwkToPublicKey(j)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestSymmetricKeyJwkRoundTrip(t *testing.T) {
	secret := []byte("super-secret-key-material")
	j := SymmetricKeyToJwk(secret, nil, nil)

	key, alg, err := JwkToSymmetricKey(j)
	require.NoError(t, err)
	assert.Equal(t, secret, key)
	assert.Equal(t, HS256.Name(), alg.Name())
}

func TestSuitableForVerificationRespectsUseAndOps(t *testing.T) {
	encUse := KeyUseEnc
	j := Jwk{Kty: KeyTypeOct, K: "c2VjcmV0", Use: &encUse}
	assert.False(t, suitableForVerification(j, HS256))

	sigUse := KeyUseSig
	j2 := Jwk{Kty: KeyTypeOct, K: "c2VjcmV0", Use: &sigUse, KeyOps: []KeyOp{KeyOpSign}}
	assert.False(t, suitableForVerification(j2, HS256))
	assert.True(t, suitableForSigning(j2, HS256))
}
