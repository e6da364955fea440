package bcrypt

import (
	"fmt"

	"github.com/dmitrijs2005/gobcrypt/internal/cryptox"
	"github.com/dmitrijs2005/gobcrypt/internal/entropy"
)

// GenSalt draws SaltLen bytes from src and returns "$<prefix>$<cost>$<salt>".
// Only Version2A and Version2B may be used as prefix.
func GenSalt(src entropy.Source, cost int, prefix Version) ([]byte, error) {
	if prefix != Version2A && prefix != Version2B {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidPrefix, prefix)
	}
	if err := checkCost(cost); err != nil {
		return nil, err
	}

	salt, err := entropy.Bytes(src, SaltLen)
	if err != nil {
		return nil, err
	}
	return Serialize(prefix, cost, salt, nil)
}

// HashPassword hashes password with the version, cost and salt carried by
// salt, which may be a salt string or a complete hash. The result is
// tagged with the same version. Passwords over MaxPasswordLen bytes fail
// with ErrPasswordTooLong.
func HashPassword(password, salt []byte) ([]byte, error) {
	return HashPasswordPolicy(password, salt, RejectLong)
}

// HashPasswordPolicy is HashPassword with an explicit truncation policy.
func HashPasswordPolicy(password, salt []byte, policy TruncationPolicy) ([]byte, error) {
	pw, err := applyPolicy(password, policy)
	if err != nil {
		return nil, err
	}

	p, err := Parse(salt)
	if err != nil {
		return nil, err
	}

	d := digest(pw, &p.Salt, p.Cost)
	defer cryptox.Wipe(d[:])
	return Serialize(p.Version, p.Cost, p.Salt[:], d[:DigestLen])
}

// VerifyPassword re-hashes password with the parameters stored in hashed
// and compares the two strings in constant time.
func VerifyPassword(password, hashed []byte) (bool, error) {
	return VerifyPasswordPolicy(password, hashed, RejectLong)
}

// VerifyPasswordPolicy is VerifyPassword with an explicit truncation policy.
func VerifyPasswordPolicy(password, hashed []byte, policy TruncationPolicy) (bool, error) {
	computed, err := HashPasswordPolicy(password, hashed, policy)
	if err != nil {
		return false, err
	}
	return cryptox.Equal(computed, hashed), nil
}

// Cost returns the cost recorded in a salt or hash string.
func Cost(hashed []byte) (int, error) {
	p, err := Parse(hashed)
	if err != nil {
		return 0, err
	}
	return p.Cost, nil
}
