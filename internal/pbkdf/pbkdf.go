// Package pbkdf implements bcrypt_pbkdf, the OpenBSD key derivation that
// runs a bcrypt-like PRF inside a PBKDF2-like loop.
//
// Unlike bcrypt's cost, rounds is linear: 100 rounds is twice the work of 50.
package pbkdf

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gobcrypt/internal/blowfish"
	"github.com/dmitrijs2005/gobcrypt/internal/cryptox"
)

const (
	// MaxKeyLen is the largest key Key will derive.
	MaxKeyLen = 512

	// FewRounds is the round count below which callers should be warned.
	FewRounds = 50

	blockLen = 32
)

// ErrInvalidInput reports a rejected Key parameter.
var ErrInvalidInput = errors.New("bcrypt_pbkdf: invalid input")

var magic = [8]uint32{
	0x4f787963, 0x68726f6d, 0x61746963, 0x426c6f77, // "OxychromaticBlow"
	0x66697368, 0x53776174, 0x44796e61, 0x6d697465, // "fishSwatDynamite"
}

// Key derives keyLen bytes from password and salt.
//
// The output is interleaved across 32-byte blocks, so a shorter key is a
// prefix of a longer one only when both need the same number of blocks
// (that is, the same value of ceil(keyLen/32)).
func Key(password, salt []byte, keyLen int, rounds uint32) ([]byte, error) {
	switch {
	case len(password) == 0 || len(salt) == 0:
		return nil, fmt.Errorf("%w: password and salt must not be empty", ErrInvalidInput)
	case keyLen < 1 || keyLen > MaxKeyLen:
		return nil, fmt.Errorf("%w: desired key bytes must be 1-%d, got %d", ErrInvalidInput, MaxKeyLen, keyLen)
	case rounds < 1:
		return nil, fmt.Errorf("%w: rounds must be 1 or more", ErrInvalidInput)
	}

	blocks := (keyLen + blockLen - 1) / blockLen
	key := make([]byte, blocks*blockLen)

	h := sha512.New()
	h.Write(password)
	shapass := h.Sum(nil)
	defer cryptox.Wipe(shapass)

	var cnt [4]byte
	shasalt := make([]byte, 0, sha512.Size)
	st := &blowfish.State{}
	defer st.Wipe()

	for b := 1; b <= blocks; b++ {
		binary.BigEndian.PutUint32(cnt[:], uint32(b))
		h.Reset()
		h.Write(salt)
		h.Write(cnt[:])
		shasalt = h.Sum(shasalt[:0])

		tmp := prf(st, shapass, shasalt)
		out := tmp
		for r := uint32(1); r < rounds; r++ {
			h.Reset()
			h.Write(tmp[:])
			shasalt = h.Sum(shasalt[:0])
			tmp = prf(st, shapass, shasalt)
			for i := range out {
				out[i] ^= tmp[i]
			}
		}

		// spread out[i] across blocks so every block affects the whole key
		for i, v := range out {
			key[i*blocks+(b-1)] = v
		}
	}

	res := make([]byte, keyLen)
	copy(res, key)
	cryptox.Wipe(key)
	return res, nil
}

// prf is the bcrypt-style hash of a SHA-512 password and salt pair: a
// salted expansion, 64 alternating salt/password expansions and 64
// encryptions of the magic text, emitted as little-endian words.
func prf(st *blowfish.State, shapass, shasalt []byte) [blockLen]byte {
	st.Reset()
	st.ExpandSaltedKey(shapass, shasalt)
	for i := 0; i < 64; i++ {
		st.ExpandKey(shasalt)
		st.ExpandKey(shapass)
	}

	data := magic
	for i := 0; i < 64; i++ {
		for j := 0; j < len(data); j += 2 {
			data[j], data[j+1] = st.EncryptWords(data[j], data[j+1])
		}
	}

	var out [blockLen]byte
	for i, w := range data {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
