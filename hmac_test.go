package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSignVerifyRoundTrip(t *testing.T) {
	secret := []byte("shared-secret")
	data := []byte("header.payload")

	sig, err := Sign(data, secret, HS256)
	require.NoError(t, err)

	assert.NoError(t, Verify(data, sig, secret, HS256))
}

func TestHMACVerifyRejectsWrongSecret(t *testing.T) {
	data := []byte("header.payload")
	sig, err := Sign(data, []byte("secret-a"), HS256)
	require.NoError(t, err)

	err = Verify(data, sig, []byte("secret-b"), HS256)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHMACVerifyRejectsTamperedSignature(t *testing.T) {
	secret := []byte("shared-secret")
	data := []byte("header.payload")

	sig, err := Sign(data, secret, HS256)
	require.NoError(t, err)
	sig[0] ^= 0xFF

	assert.ErrorIs(t, Verify(data, sig, secret, HS256), ErrInvalidSignature)
}

func TestConstantTimeCompare(t *testing.T) {
	assert.True(t, constantTimeCompare([]byte("abc"), []byte("abc")))
	assert.False(t, constantTimeCompare([]byte("abc"), []byte("abd")))
	assert.False(t, constantTimeCompare([]byte("abc"), []byte("abcd")))
	assert.False(t, constantTimeCompare([]byte("abc"), []byte("ab")))
}

func TestSignRejectsWrongKeyType(t *testing.T) {
	_, err := Sign([]byte("data"), "not-a-byte-slice", HS256)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
