package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredClaimsRoundTrip(t *testing.T) {
	iss := "https://issuer.example.com"
	aud := NewAudience("my-api")
	exp := NewNumericDate(Clock().Add(time.Hour))

	c := RegisteredClaims{Issuer: &iss, Audience: &aud, Expiry: &exp}

	data, err := EncodeRegisteredClaims(c)
	require.NoError(t, err)

	decoded, err := DecodeRegisteredClaims(data)
	require.NoError(t, err)

	require.NotNil(t, decoded.Issuer)
	assert.Equal(t, iss, *decoded.Issuer)
	require.NotNil(t, decoded.Audience)
	assert.True(t, decoded.Audience.Contains("my-api"))
}

func TestEncodeRegisteredClaimsEmptyIsEmptyObject(t *testing.T) {
	data, err := EncodeRegisteredClaims(RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeRegisteredClaimsRejectsGarbage(t *testing.T) {
	_, err := DecodeRegisteredClaims([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedToken)
}
