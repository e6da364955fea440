// Package base64x implements the Base64 variant used by bcrypt strings:
// the alphabet "./A-Za-z0-9" in that order, no padding, and strict
// decoding that refuses any symbol outside the alphabet and any non-zero
// bits left over in the final symbol.
package base64x

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// Alphabet is bcrypt's symbol ordering.
const Alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrInvalidEncoding reports a malformed bcrypt Base64 field.
var ErrInvalidEncoding = errors.New("invalid bcrypt base64 encoding")

var encoding = base64.NewEncoding(Alphabet).WithPadding(base64.NoPadding).Strict()

// EncodedLen returns the number of symbols produced for n bytes.
func EncodedLen(n int) int {
	return encoding.EncodedLen(n)
}

// Encode returns the bcrypt Base64 encoding of src.
func Encode(src []byte) []byte {
	dst := make([]byte, encoding.EncodedLen(len(src)))
	encoding.Encode(dst, src)
	return dst
}

// Decode decodes src, which must hold exactly the encoding of n bytes.
func Decode(src []byte, n int) ([]byte, error) {
	if len(src) != encoding.EncodedLen(n) {
		return nil, fmt.Errorf("%w: %d symbols, want %d", ErrInvalidEncoding, len(src), encoding.EncodedLen(n))
	}
	// encoding/base64 silently skips CR and LF, so check membership first.
	for i, c := range src {
		if !isSymbol(c) {
			return nil, fmt.Errorf("%w: symbol %q at offset %d", ErrInvalidEncoding, c, i)
		}
	}

	dst := make([]byte, n)
	m, err := encoding.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if m != n {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidEncoding, m, n)
	}
	return dst, nil
}

func isSymbol(c byte) bool {
	switch {
	case c == '.' || c == '/':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return false
}
