// Package blowfish implements the encrypt-only Blowfish core used by the
// bcrypt hash and bcrypt_pbkdf: a 64-bit block cipher whose eighteen
// subkeys and four S-boxes are rebuilt from key material on every
// expansion.
//
// A State is a plain value. Every hash or derivation owns its own State;
// only the initial pi tables are shared, and they are never written.
package blowfish

import "encoding/binary"

// BlockSize is the Blowfish block size in bytes.
const BlockSize = 8

// State holds the key-dependent P-array and S-boxes.
type State struct {
	p [18]uint32
	s [4][256]uint32
}

// NewState returns a State loaded with the pi constants.
func NewState() *State {
	st := &State{}
	st.Reset()
	return st
}

// Reset reloads the pi constants, discarding any expanded key material.
func (st *State) Reset() {
	st.p = initialP
	st.s = initialS
}

// nextWord reads a big-endian uint32 from b starting at *pos, wrapping
// around the end of b.
func nextWord(b []byte, pos *int) uint32 {
	var w uint32
	j := *pos
	for i := 0; i < 4; i++ {
		w = w<<8 | uint32(b[j])
		j++
		if j >= len(b) {
			j = 0
		}
	}
	*pos = j
	return w
}

// ExpandKey XORs key cyclically into the P-array and then regenerates the
// whole P-array and all S-boxes by repeatedly encrypting a running block
// that starts at zero. key must not be empty.
func (st *State) ExpandKey(key []byte) {
	j := 0
	for i := range st.p {
		st.p[i] ^= nextWord(key, &j)
	}

	var l, r uint32
	for i := 0; i < len(st.p); i += 2 {
		l, r = st.encrypt(l, r)
		st.p[i], st.p[i+1] = l, r
	}
	for k := range st.s {
		box := &st.s[k]
		for i := 0; i < len(box); i += 2 {
			l, r = st.encrypt(l, r)
			box[i], box[i+1] = l, r
		}
	}
}

// ExpandSaltedKey is the salted variant of ExpandKey: before every
// encryption of the running block, the next two words of salt (read
// cyclically) are XORed into it. key and salt must not be empty.
func (st *State) ExpandSaltedKey(key, salt []byte) {
	j := 0
	for i := range st.p {
		st.p[i] ^= nextWord(key, &j)
	}

	j = 0
	var l, r uint32
	for i := 0; i < len(st.p); i += 2 {
		l ^= nextWord(salt, &j)
		r ^= nextWord(salt, &j)
		l, r = st.encrypt(l, r)
		st.p[i], st.p[i+1] = l, r
	}
	for k := range st.s {
		box := &st.s[k]
		for i := 0; i < len(box); i += 2 {
			l ^= nextWord(salt, &j)
			r ^= nextWord(salt, &j)
			l, r = st.encrypt(l, r)
			box[i], box[i+1] = l, r
		}
	}
}

func (st *State) f(x uint32) uint32 {
	return ((st.s[0][byte(x>>24)] + st.s[1][byte(x>>16)]) ^ st.s[2][byte(x>>8)]) + st.s[3][byte(x)]
}

// encrypt runs the sixteen Feistel rounds over the halves l and r.
func (st *State) encrypt(l, r uint32) (uint32, uint32) {
	l ^= st.p[0]
	for i := 1; i < 17; i += 2 {
		r ^= st.f(l) ^ st.p[i]
		l ^= st.f(r) ^ st.p[i+1]
	}
	r ^= st.p[17]
	return r, l
}

// EncryptWords encrypts one block given as two big-endian halves.
func (st *State) EncryptWords(l, r uint32) (uint32, uint32) {
	return st.encrypt(l, r)
}

// Encrypt encrypts the 8-byte block src into dst. dst and src may overlap
// entirely.
func (st *State) Encrypt(dst, src []byte) {
	l := binary.BigEndian.Uint32(src[0:4])
	r := binary.BigEndian.Uint32(src[4:8])
	l, r = st.encrypt(l, r)
	binary.BigEndian.PutUint32(dst[0:4], l)
	binary.BigEndian.PutUint32(dst[4:8], r)
}

// Wipe zeroes the key schedule.
func (st *State) Wipe() {
	st.p = [18]uint32{}
	st.s = [4][256]uint32{}
}
