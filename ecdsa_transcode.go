package jwt

import "math/big"

// derToConcat transcodes an ASN.1 DER ECDSA signature
// (SEQUENCE { INTEGER r, INTEGER s }) into the fixed-length R||S
// concatenation of length 2*coordLen. This is the platform primitive's
// native output format (crypto/ecdsa's ASN1 functions); the wire format
// this package uses is always the fixed-length concatenation.
func derToConcat(der []byte, coordLen int) ([]byte, error) {
	r, s, err := parseDERSignature(der)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 2*coordLen)
	if err := putPadded(out[:coordLen], r, coordLen); err != nil {
		return nil, err
	}
	if err := putPadded(out[coordLen:], s, coordLen); err != nil {
		return nil, err
	}

	return out, nil
}

func putPadded(dst []byte, n *big.Int, size int) error {
	raw := n.Bytes()
	if len(raw) > size {
		return malformed("ECDSA integer does not fit in %d bytes", size)
	}

	copy(dst[size-len(raw):], raw)
	return nil
}

// parseDERSignature validates the SEQUENCE/INTEGER/INTEGER structure by
// hand (short-form length < 0x80, else single-byte long-form 0x81) and
// strips each INTEGER's leading sign byte.
func parseDERSignature(der []byte) (r, s *big.Int, err error) {
	p := &derParser{buf: der}

	if err := p.expectTag(0x30); err != nil { // SEQUENCE
		return nil, nil, err
	}

	if _, err := p.readLength(); err != nil {
		return nil, nil, err
	}

	r, err = p.readInteger()
	if err != nil {
		return nil, nil, err
	}

	s, err = p.readInteger()
	if err != nil {
		return nil, nil, err
	}

	if !p.atEnd() {
		return nil, nil, malformed("ECDSA DER signature: trailing bytes")
	}

	return r, s, nil
}

type derParser struct {
	buf []byte
	pos int
}

func (p *derParser) atEnd() bool { return p.pos >= len(p.buf) }

func (p *derParser) expectTag(tag byte) error {
	if p.pos >= len(p.buf) {
		return malformed("ECDSA DER signature: truncated")
	}

	if p.buf[p.pos] != tag {
		return malformed("ECDSA DER signature: unexpected tag 0x%02x", p.buf[p.pos])
	}

	p.pos++
	return nil
}

// readLength reads a DER length: short-form is a single byte < 0x80;
// long-form here is restricted to the single-byte-length case (0x81
// followed by one length byte), which covers every signature this
// package produces or accepts (r and s never exceed 66 bytes).
func (p *derParser) readLength() (int, error) {
	if p.pos >= len(p.buf) {
		return 0, malformed("ECDSA DER signature: truncated length")
	}

	b := p.buf[p.pos]
	p.pos++

	if b < 0x80 {
		return int(b), nil
	}

	if b == 0x81 {
		if p.pos >= len(p.buf) {
			return 0, malformed("ECDSA DER signature: truncated long-form length")
		}
		n := int(p.buf[p.pos])
		p.pos++
		return n, nil
	}

	return 0, malformed("ECDSA DER signature: unsupported length form 0x%02x", b)
}

func (p *derParser) readInteger() (*big.Int, error) {
	if err := p.expectTag(0x02); err != nil { // INTEGER
		return nil, err
	}

	n, err := p.readLength()
	if err != nil {
		return nil, err
	}

	if p.pos+n > len(p.buf) {
		return nil, malformed("ECDSA DER signature: integer length out of range")
	}

	raw := p.buf[p.pos : p.pos+n]
	p.pos += n

	return new(big.Int).SetBytes(raw), nil
}

// concatToDER transcodes a fixed-length R||S concatenation into ASN.1
// DER. Leading zeros are stripped from each half; if the result's
// high bit is set, a 0x00 sign byte is prepended so the INTEGER stays
// non-negative per ASN.1 semantics. The SEQUENCE length is emitted in
// short form when it fits (< 0x80) and in single-byte long form (0x81)
// otherwise.
func concatToDER(concat []byte, coordLen int) ([]byte, error) {
	if len(concat) != 2*coordLen {
		return nil, malformed("ECDSA signature has wrong length: got %d, want %d", len(concat), 2*coordLen)
	}

	r := new(big.Int).SetBytes(concat[:coordLen])
	s := new(big.Int).SetBytes(concat[coordLen:])

	rEnc := derInteger(r)
	sEnc := derInteger(s)

	content := make([]byte, 0, len(rEnc)+len(sEnc))
	content = append(content, rEnc...)
	content = append(content, sEnc...)

	header := derLengthPrefix(0x30, len(content))

	out := make([]byte, 0, len(header)+len(content))
	out = append(out, header...)
	out = append(out, content...)

	return out, nil
}

// derInteger encodes n as a complete DER INTEGER (tag+length+content),
// prepending a sign byte when the MSB is set.
func derInteger(n *big.Int) []byte {
	raw := n.Bytes()
	if len(raw) == 0 {
		raw = []byte{0}
	}

	if raw[0]&0x80 != 0 {
		padded := make([]byte, len(raw)+1)
		copy(padded[1:], raw)
		raw = padded
	}

	header := derLengthPrefix(0x02, len(raw))

	out := make([]byte, 0, len(header)+len(raw))
	out = append(out, header...)
	out = append(out, raw...)

	return out
}

func derLengthPrefix(tag byte, length int) []byte {
	if length < 0x80 {
		return []byte{tag, byte(length)}
	}

	// Every signature this package transcodes fits comfortably under
	// 256 bytes of content (P-521 produces at most 67-byte INTEGERs),
	// so single-byte long form is always sufficient.
	return []byte{tag, 0x81, byte(length)}
}
