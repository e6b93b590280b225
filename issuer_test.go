package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProducesVerifiableToken(t *testing.T) {
	secret := []byte("test-secret")
	store := hmacStore(secret, "k1")
	kid := Kid("k1")
	typ := "JWT"

	issuer := NewIssuer[customClaims](IssuerConfig{KeyStore: store, Algorithm: HS256, Kid: &kid, Typ: &typ})
	ts, err := issuer.Issue(context.Background(), customClaims{Scope: "admin"}, RegisteredClaims{})
	require.NoError(t, err)

	header, err := DecodeJoseHeader(mustDecodeSegment(t, ts.Header()))
	require.NoError(t, err)
	assert.Equal(t, "HS256", header.Alg.Name())
	require.NotNil(t, header.Typ)
	assert.Equal(t, "JWT", *header.Typ)

	payload := mustDecodeSegment(t, ts.Payload())

	claims, err := JSONClaimsCodec[customClaims]{}.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Scope)
}

func TestIssueGeneratesJTIWhenConfigured(t *testing.T) {
	secret := []byte("test-secret")
	store := hmacStore(secret, "k1")
	kid := Kid("k1")

	issuer := NewIssuer[customClaims](IssuerConfig{KeyStore: store, Algorithm: HS256, Kid: &kid, GenerateJTI: true})
	ts, err := issuer.Issue(context.Background(), customClaims{}, RegisteredClaims{})
	require.NoError(t, err)

	payload := mustDecodeSegment(t, ts.Payload())

	registered, err := DecodeRegisteredClaims(payload)
	require.NoError(t, err)
	require.NotNil(t, registered.JTI)
	assert.NotEmpty(t, *registered.JTI)
}

func TestIssueDoesNotOverwriteExplicitJTI(t *testing.T) {
	secret := []byte("test-secret")
	store := hmacStore(secret, "k1")
	kid := Kid("k1")

	issuer := NewIssuer[customClaims](IssuerConfig{KeyStore: store, Algorithm: HS256, Kid: &kid, GenerateJTI: true})
	jti := "explicit-id"
	ts, err := issuer.Issue(context.Background(), customClaims{}, RegisteredClaims{JTI: &jti})
	require.NoError(t, err)

	payload := mustDecodeSegment(t, ts.Payload())
	registered, err := DecodeRegisteredClaims(payload)
	require.NoError(t, err)
	require.NotNil(t, registered.JTI)
	assert.Equal(t, "explicit-id", *registered.JTI)
}

func TestMergeClaimObjectsRegisteredWinsOnCollision(t *testing.T) {
	a := []byte(`{"scope":"read","iss":"custom-wins-loses"}`)
	b := []byte(`{"iss":"registered-wins"}`)

	merged, err := mergeClaimObjects(a, b)
	require.NoError(t, err)

	registered, err := DecodeRegisteredClaims(merged)
	require.NoError(t, err)
	require.NotNil(t, registered.Issuer)
	assert.Equal(t, "registered-wins", *registered.Issuer)
}

func TestMergeClaimObjectsHandlesEmptyObjects(t *testing.T) {
	merged, err := mergeClaimObjects([]byte(`{}`), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(merged))

	merged, err = mergeClaimObjects([]byte(`{"a":1}`), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(merged))

	merged, err = mergeClaimObjects([]byte(`{}`), []byte(`{"b":2}`))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(merged))
}

func mustDecodeSegment(t *testing.T, seg string) []byte {
	t.Helper()
	data, err := decodeSegment(seg)
	require.NoError(t, err)
	return data
}
