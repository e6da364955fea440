// Package bcrypt implements the bcrypt adaptive password hash and its
// "$version$cost$salt[digest]" string format.
//
// # Strings
//
//	$2b$12$R9h/cIPz0gi.URNNX3kh2O                                 salt (29 bytes)
//	$2b$12$R9h/cIPz0gi.URNNX3kh2OoLPwTdOAymPHsrvQP3DDZabggtl0m6W  hash (60 bytes)
//
// The cost is always two decimal digits. Salt and digest use the bcrypt
// Base64 alphabet (see package base64x), never standard Base64.
//
// # Versions
//
// 2a, 2b, 2x and 2y are accepted when hashing and are preserved in the
// output; new salts can only be 2a or 2b. The tag does not change the
// computation.
//
// # Long passwords
//
// The key schedule reads at most 72 bytes. HashPassword and VerifyPassword
// refuse longer input with ErrPasswordTooLong instead of cutting it; callers
// that want truncation ask for it with TruncateLong.
//
// All functions are safe for concurrent use. Each call builds and wipes its
// own cipher state.
package bcrypt
