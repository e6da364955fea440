package bcrypt

import "errors"

var (
	// ErrInvalidCost reports a cost (rounds) outside [MinCost, MaxCost].
	ErrInvalidCost = errors.New("bcrypt: invalid rounds")

	// ErrInvalidPrefix reports a version tag that cannot be used for salt generation.
	ErrInvalidPrefix = errors.New("bcrypt: supported prefixes are 2a or 2b")

	// ErrInvalidSalt reports any structural, encoding or field violation in a
	// salt or hash string.
	ErrInvalidSalt = errors.New("bcrypt: invalid salt")

	// ErrPasswordTooLong reports a password over MaxPasswordLen bytes.
	ErrPasswordTooLong = errors.New("bcrypt: password cannot be longer than 72 bytes, truncate manually if necessary")

	// ErrInvalidDigest reports a digest of the wrong size handed to the serializer.
	ErrInvalidDigest = errors.New("bcrypt: invalid digest length")
)
