// Package cli implements the bcrypt command: one-shot subcommands for
// scripts and an interactive loop when no subcommand is given.
//
// Commands
//
//	gensalt          print a new salt string
//	hash [salt]      hash a password, with a fresh salt unless one is given
//	check <hash>     verify a password; exit status 1 on mismatch
//	kdf <salt>       derive key material with bcrypt_pbkdf, printed as hex
//	cost <hash>      print the cost of a salt or hash and whether it needs rehashing
//	version          print build metadata
//
// Passwords are read from the terminal without echo, or as one line from
// standard input when it is not a terminal.
package cli
