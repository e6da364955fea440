package cli

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/gobcrypt/internal/bcrypt"
	"github.com/dmitrijs2005/gobcrypt/internal/buildinfo"
	"github.com/dmitrijs2005/gobcrypt/internal/cryptox"
)

// GenSalt prints a salt with the configured cost and prefix.
func (a *App) GenSalt(ctx context.Context) error {
	salt, err := a.svc.GenSalt(ctx, a.config.Cost, a.config.Prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(salt))
	return nil
}

// Hash prints the hash of a password read from input, under the given salt
// or a fresh one.
func (a *App) Hash(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one salt", ErrUsage)
	}
	var salt []byte
	if len(args) == 1 {
		salt = []byte(args[0])
	}

	return a.withPassword(func(pw []byte) error {
		hashed, err := a.svc.Hash(ctx, pw, salt)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(hashed))
		return nil
	})
}

// Check verifies a password read from input against a stored hash.
func (a *App) Check(ctx context.Context, args []string) error {
	hashed, err := oneArg(args, "a hash")
	if err != nil {
		return err
	}

	return a.withPassword(func(pw []byte) error {
		ok, err := a.svc.Check(ctx, pw, []byte(hashed))
		if err != nil {
			return err
		}
		if !ok {
			return ErrMismatch
		}
		fmt.Fprintln(a.out, "ok")
		return nil
	})
}

// KDF derives configured-length key material from a password read from
// input and the given salt, and prints it as hex.
func (a *App) KDF(ctx context.Context, args []string) error {
	salt, err := oneArg(args, "a salt")
	if err != nil {
		return err
	}

	return a.withPassword(func(pw []byte) error {
		key, err := a.svc.DeriveKey(ctx, pw, []byte(salt), a.config.KDFKeyBytes, a.config.KDFRounds, a.config.IgnoreFewRounds)
		if err != nil {
			return err
		}
		defer cryptox.Wipe(key)
		fmt.Fprintln(a.out, hex.EncodeToString(key))
		return nil
	})
}

// Cost prints the cost recorded in a salt or hash. For a complete hash it
// also reports whether it falls short of the configured parameters.
func (a *App) Cost(_ context.Context, args []string) error {
	s, err := oneArg(args, "a salt or hash")
	if err != nil {
		return err
	}

	p, err := bcrypt.Parse([]byte(s))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "version: %s\ncost: %d\n", p.Version, p.Cost)

	if p.HasDigest() {
		rehash, err := a.svc.NeedsRehash([]byte(s))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "rehash: %t\n", rehash)
	}
	return nil
}

// Version prints build metadata.
func (a *App) Version() {
	buildinfo.PrintBuildData(a.out)
}
