package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithmKnown(t *testing.T) {
	for _, name := range []string{"HS256", "HS384", "HS512", "RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "PS256", "PS384", "PS512"} {
		alg, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, alg.Name())
		assert.False(t, alg.IsZero())
	}
}

func TestParseAlgorithmRejectsNone(t *testing.T) {
	for _, name := range []string{"none", "None", "NONE"} {
		_, err := ParseAlgorithm(name)
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedToken)
	}
}

func TestParseAlgorithmRejectsUnknown(t *testing.T) {
	_, err := ParseAlgorithm("HS1024")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestZeroAlgorithmIsInvalid(t *testing.T) {
	var a Algorithm
	assert.True(t, a.IsZero())
}
