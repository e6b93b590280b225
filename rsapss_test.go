package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAPSSSignVerifyRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	data := []byte("header.payload")

	sig, err := Sign(data, priv, PS256)
	require.NoError(t, err)

	assert.NoError(t, Verify(data, sig, &priv.PublicKey, PS256))
}

func TestRSAPSSVerifyRejectsTamperedSignature(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	data := []byte("header.payload")
	sig, err := Sign(data, priv, PS256)
	require.NoError(t, err)
	sig[0] ^= 0xFF

	assert.ErrorIs(t, Verify(data, sig, &priv.PublicKey, PS256), ErrInvalidSignature)
}

func TestRSAPSSKeyFloorEnforced(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	_, err = Sign([]byte("data"), priv, PS256)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
