package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJwkRSAPublic(t *testing.T) {
	raw := []byte(`{"kty":"RSA","n":"sXch4r","e":"AQAB"}`)
	j, err := DecodeJwk(raw)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeRSA, j.Kty)
	assert.False(t, j.IsPrivate())
}

func TestDecodeJwkRSAPrivateRequiresFullCRT(t *testing.T) {
	raw := []byte(`{"kty":"RSA","n":"sXch4r","e":"AQAB","d":"ZGVmZw"}`)
	_, err := DecodeJwk(raw)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodeJwkRejectsOKP(t *testing.T) {
	raw := []byte(`{"kty":"OKP","crv":"Ed25519","x":"abc"}`)
	_, err := DecodeJwk(raw)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodeJwkSymmetric(t *testing.T) {
	raw := []byte(`{"kty":"oct","k":"c2VjcmV0"}`)
	j, err := DecodeJwk(raw)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeOct, j.Kty)
}

func TestDecodeJwkUseAndKeyOps(t *testing.T) {
	raw := []byte(`{"kty":"oct","k":"c2VjcmV0","use":"sig","key_ops":["sign","verify"],"alg":"HS256","kid":"k1"}`)
	j, err := DecodeJwk(raw)
	require.NoError(t, err)
	require.NotNil(t, j.Use)
	assert.Equal(t, KeyUseSig, *j.Use)
	assert.Contains(t, j.KeyOps, KeyOpSign)
	assert.Contains(t, j.KeyOps, KeyOpVerify)
	require.NotNil(t, j.Alg)
	assert.Equal(t, "HS256", j.Alg.Name())
	require.NotNil(t, j.Kid)
	assert.Equal(t, Kid("k1"), *j.Kid)
}

func TestDecodeJwkSetMissingKeysIsEmpty(t *testing.T) {
	set, err := DecodeJwkSet([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, set.Keys)
}

func TestEncodeJwkSetRoundTrip(t *testing.T) {
	k, err := DecodeJwk([]byte(`{"kty":"oct","k":"c2VjcmV0"}`))
	require.NoError(t, err)

	set := JwkSet{Keys: []Jwk{k}}
	data, err := EncodeJwkSet(set)
	require.NoError(t, err)

	decoded, err := DecodeJwkSet(data)
	require.NoError(t, err)
	require.Len(t, decoded.Keys, 1)
	assert.Equal(t, KeyTypeOct, decoded.Keys[0].Kty)
}

func TestRedactedJwkNeverPrintsKeyMaterial(t *testing.T) {
	j, err := DecodeJwk([]byte(`{"kty":"oct","k":"dG9wLXNlY3JldA","kid":"k1"}`))
	require.NoError(t, err)

	r := redactedJwk(j)
	assert.NotContains(t, r.String(), "dG9wLXNlY3JldA")
	assert.Contains(t, r.String(), "k1")

	v := r.LogValue()
	assert.NotContains(t, v.String(), "dG9wLXNlY3JldA")
}
