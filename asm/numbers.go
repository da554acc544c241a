package asm

import (
	"encoding/hex"
	"strconv"
	"strings"

	"cvm/data"
	"cvm/diagnostics"
)

// parseNumber decodes an unsigned literal: base-10 by default, base-16
// when prefixed "0x" (§4.4). Overflow of the machine word (uint64, the
// system's Data::Type) is NumberTooLarge.
func parseNumber(tok string) (uint64, error) {
	base := 10
	digits := tok
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		digits = tok[2:]
	}
	if digits == "" {
		return 0, diagnostics.ErrUnrecognizedNumber
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			return 0, diagnostics.ErrNumberTooLarge
		}
		return 0, diagnostics.ErrUnrecognizedNumber
	}
	return n, nil
}

// leToBytes encodes an immediate as its 8-byte little-endian
// representation: the "temporary holding the immediate bytes with
// declared type" that §4.4 describes for the small-immediate load form.
func leToBytes(v uint64) []byte {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	return buf
}

// parseDataIndexToken decodes a "#<n>" data-pool reference.
func parseDataIndexToken(tok string) (data.DataIndex, error) {
	if !strings.HasPrefix(tok, "#") {
		return 0, diagnostics.ErrUnrecognizedDataIndex
	}
	n, err := strconv.ParseUint(tok[1:], 10, 64)
	if err != nil {
		return 0, diagnostics.ErrUnrecognizedDataIndex
	}
	return data.DataIndex(n), nil
}

// parseHexPayload decodes a ".datas" literal's "0x<hex-bytes>" field
// into a capacity-byte little-endian buffer, the same way the small
// immediate form does: the hex digits are read most-significant-first,
// then stored in native (little-endian) byte order, zero-padded at the
// high end. A payload that needs more bytes than capacity is
// NumberTooLarge.
func parseHexPayload(tok string, capacity uint64) ([]byte, error) {
	if !strings.HasPrefix(tok, "0x") && !strings.HasPrefix(tok, "0X") {
		return nil, diagnostics.ErrUnrecognizedNumber
	}
	digits := tok[2:]
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	decoded, err := hex.DecodeString(digits)
	if err != nil {
		return nil, diagnostics.ErrUnrecognizedNumber
	}
	if uint64(len(decoded)) > capacity {
		return nil, diagnostics.ErrNumberTooLarge
	}
	buf := make([]byte, capacity)
	for i, b := range decoded {
		buf[len(decoded)-1-i] = b
	}
	return buf, nil
}
