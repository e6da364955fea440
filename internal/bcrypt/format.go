package bcrypt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gobcrypt/internal/base64x"
)

const (
	// SaltLen is the raw salt size in bytes.
	SaltLen = 16
	// EncodedSaltLen is the salt size in bcrypt Base64 symbols.
	EncodedSaltLen = 22
	// DigestLen is the number of digest bytes kept in an encoded hash.
	DigestLen = 23
	// EncodedDigestLen is the digest size in bcrypt Base64 symbols.
	EncodedDigestLen = 31
)

// Parsed is a decoded "$version$cost$salt[digest]" string.
type Parsed struct {
	Version Version
	Cost    int
	Salt    [SaltLen]byte
	// Tail is whatever followed the encoded salt: empty for a salt string,
	// the encoded digest for a full hash. It is not validated by Parse.
	Tail []byte
}

// HasDigest reports whether the parsed string carried anything after the salt.
func (p *Parsed) HasDigest() bool {
	return len(p.Tail) > 0
}

// Digest decodes Tail as a bcrypt digest.
func (p *Parsed) Digest() ([]byte, error) {
	d, err := base64x.Decode(p.Tail, DigestLen)
	if err != nil {
		return nil, fmt.Errorf("%w: digest: %w", ErrInvalidSalt, err)
	}
	return d, nil
}

// Parse splits encoded on '$', dropping empty segments, and decodes the
// version tag, the decimal cost and the leading 22-symbol salt of the
// remainder. The cost must be plain digits; a sign such as "+12" is
// rejected.
func Parse(encoded []byte) (*Parsed, error) {
	parts := make([][]byte, 0, 3)
	for _, seg := range bytes.Split(encoded, []byte{'$'}) {
		if len(seg) > 0 {
			parts = append(parts, seg)
		}
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 fields, got %d", ErrInvalidSalt, len(parts))
	}

	version, err := ParseVersion(string(parts[0]))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.ParseUint(string(parts[1]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: cost %q is not a number", ErrInvalidSalt, parts[1])
	}
	if err := checkCost(int(cost)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSalt, err)
	}

	remainder := parts[2]
	if len(remainder) < EncodedSaltLen {
		return nil, fmt.Errorf("%w: salt field has %d symbols, want at least %d", ErrInvalidSalt, len(remainder), EncodedSaltLen)
	}
	raw, err := base64x.Decode(remainder[:EncodedSaltLen], SaltLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSalt, err)
	}

	p := &Parsed{
		Version: version,
		Cost:    int(cost),
		Tail:    bytes.Clone(remainder[EncodedSaltLen:]),
	}
	copy(p.Salt[:], raw)
	return p, nil
}

// Serialize renders "$<version>$<cc>$<salt><digest>". digest is either
// empty, producing a salt string, or exactly DigestLen bytes.
func Serialize(v Version, cost int, salt []byte, digest []byte) ([]byte, error) {
	if !v.valid() {
		return nil, fmt.Errorf("%w: unknown version %d", ErrInvalidSalt, uint8(v))
	}
	if err := checkCost(cost); err != nil {
		return nil, err
	}
	if len(salt) != SaltLen {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidSalt, SaltLen, len(salt))
	}
	if len(digest) != 0 && len(digest) != DigestLen {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidDigest, len(digest), DigestLen)
	}

	tag := v.String()
	out := make([]byte, 0, 1+len(tag)+1+2+1+EncodedSaltLen+EncodedDigestLen)
	out = append(out, '$')
	out = append(out, tag...)
	out = append(out, '$')
	out = append(out, byte('0'+cost/10), byte('0'+cost%10))
	out = append(out, '$')
	out = append(out, base64x.Encode(salt)...)
	if len(digest) > 0 {
		out = append(out, base64x.Encode(digest)...)
	}
	return out, nil
}

func checkCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCost, cost, MinCost, MaxCost)
	}
	return nil
}
