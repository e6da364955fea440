// Package cryptox holds small side-channel aware helpers shared by the
// hashing packages.
package cryptox

import "crypto/subtle"

// Equal reports whether a and b hold the same bytes.
//
// Lengths are compared first and are not treated as secret. For equal
// lengths every byte is visited and differences are OR-accumulated, so the
// running time does not depend on where the first mismatch is.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return subtle.ConstantTimeByteEq(v, 0) == 1
}

// Wipe overwrites b with zeros. Use it to drop passwords and key material
// once they are no longer needed. A nil slice is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
