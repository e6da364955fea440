// Package hasher binds the bcrypt and bcrypt_pbkdf primitives to the rest
// of the program. It owns argument defaults taken from config, the
// low-round advisory for key derivation, and running each expensive
// computation off the caller's goroutine.
//
// Cancelling the context makes a call return early with the context's
// error. The computation itself is never interrupted: it finishes in the
// background and its result is discarded, so a cancelled call can never
// return a digest computed with fewer rounds.
package hasher
