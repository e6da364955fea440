package bcrypt

import (
	"encoding/binary"

	"github.com/dmitrijs2005/gobcrypt/internal/blowfish"
	"github.com/dmitrijs2005/gobcrypt/internal/cryptox"
)

const (
	MinCost     = 4
	MaxCost     = 31
	DefaultCost = 12

	// MaxPasswordLen is the longest password the key schedule can absorb.
	MaxPasswordLen = 72
)

// magicText is encrypted 64 times under the expensive key schedule.
var magicText = [6]uint32{
	0x4f727068, 0x65616e42, 0x65686f6c, // "OrpheanBehol"
	0x64657253, 0x63727944, 0x6f756274, // "derScryDoubt"
}

// TruncationPolicy decides what happens to passwords over MaxPasswordLen.
type TruncationPolicy uint8

const (
	// RejectLong fails with ErrPasswordTooLong.
	RejectLong TruncationPolicy = iota
	// TruncateLong hashes only the first MaxPasswordLen bytes.
	TruncateLong
)

// applyPolicy returns the password bytes the key schedule will see.
func applyPolicy(password []byte, policy TruncationPolicy) ([]byte, error) {
	if len(password) <= MaxPasswordLen {
		return password, nil
	}
	if policy == TruncateLong {
		return password[:MaxPasswordLen], nil
	}
	return nil, ErrPasswordTooLong
}

// digest runs EksBlowfish: pi initialisation, the salted expansion, 2^cost
// rounds of alternating password and salt expansion, then 64 encryptions
// of magicText. It returns all 24 bytes; encoded hashes keep DigestLen.
//
// The caller has checked cost, the salt size and the password length.
func digest(password []byte, salt *[SaltLen]byte, cost int) [24]byte {
	// The key is the password with its C string terminator. Only the first
	// 72 bytes are ever read, so a 72-byte password loses the terminator.
	key := make([]byte, len(password)+1)
	copy(key, password)
	defer cryptox.Wipe(key)

	st := blowfish.NewState()
	defer st.Wipe()

	st.ExpandSaltedKey(key, salt[:])
	rounds := uint64(1) << uint(cost)
	for i := uint64(0); i < rounds; i++ {
		st.ExpandKey(key)
		st.ExpandKey(salt[:])
	}

	data := magicText
	for i := 0; i < 64; i++ {
		for j := 0; j < len(data); j += 2 {
			data[j], data[j+1] = st.EncryptWords(data[j], data[j+1])
		}
	}

	var out [24]byte
	for i, w := range data {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// Digest computes the raw 24-byte bcrypt digest of password under salt
// and cost, applying policy to passwords over MaxPasswordLen.
func Digest(password, salt []byte, cost int, policy TruncationPolicy) ([]byte, error) {
	if err := checkCost(cost); err != nil {
		return nil, err
	}
	if len(salt) != SaltLen {
		return nil, ErrInvalidSalt
	}
	pw, err := applyPolicy(password, policy)
	if err != nil {
		return nil, err
	}

	var s [SaltLen]byte
	copy(s[:], salt)
	d := digest(pw, &s, cost)
	return d[:], nil
}
