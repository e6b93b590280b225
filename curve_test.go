package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurve(t *testing.T) {
	c, err := ParseCurve("P-256")
	require.NoError(t, err)
	assert.Equal(t, 32, c.CoordinateLength())
	assert.Equal(t, 64, c.SignatureLength())

	_, err = ParseCurve("P-192")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestCurveFromFieldBits(t *testing.T) {
	c, err := curveFromFieldBits(256)
	require.NoError(t, err)
	assert.Equal(t, CurveP256, c)

	c, err = curveFromFieldBits(384)
	require.NoError(t, err)
	assert.Equal(t, CurveP384, c)

	c, err = curveFromFieldBits(521)
	require.NoError(t, err)
	assert.Equal(t, CurveP521, c)

	_, err = curveFromFieldBits(128)
	assert.Error(t, err)
}
