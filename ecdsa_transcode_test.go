package jwt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatDERRoundTrip(t *testing.T) {
	coordLen := 32
	r := big.NewInt(12345)
	s := big.NewInt(67890)

	concat := make([]byte, 2*coordLen)
	rb := r.Bytes()
	sb := s.Bytes()
	copy(concat[coordLen-len(rb):coordLen], rb)
	copy(concat[2*coordLen-len(sb):], sb)

	der, err := concatToDER(concat, coordLen)
	require.NoError(t, err)

	back, err := derToConcat(der, coordLen)
	require.NoError(t, err)

	assert.Equal(t, concat, back)
}

func TestConcatToDERHighBitSetGetsSignByte(t *testing.T) {
	coordLen := 32
	r := make([]byte, coordLen)
	r[0] = 0xFF // high bit set
	s := make([]byte, coordLen)
	s[coordLen-1] = 1

	concat := append(append([]byte{}, r...), s...)

	der, err := concatToDER(concat, coordLen)
	require.NoError(t, err)

	// r's INTEGER is 33 bytes long: a 0x00 sign byte, then 0xFF...
	assert.Equal(t, []byte{0x02, 0x21, 0x00, 0xFF}, der[2:6])

	back, err := derToConcat(der, coordLen)
	require.NoError(t, err)
	assert.Equal(t, concat, back)
}

func TestConcatToDERRejectsWrongLength(t *testing.T) {
	_, err := concatToDER([]byte{1, 2, 3}, 32)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestParseDERSignatureRejectsTrailingBytes(t *testing.T) {
	_, _, err := parseDERSignature([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01, 0xFF})
	assert.Error(t, err)
}
