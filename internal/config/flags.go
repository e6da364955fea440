package config

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/dmitrijs2005/gobcrypt/internal/flagx"
)

// ValueFlags and BoolFlags are the flags parseFlags understands. The CLI
// uses them to find its own positional arguments.
var (
	ValueFlags = []string{"-c", "-config", "-r", "-p", "-k", "-n", "-l", "-f"}
	BoolFlags  = []string{"-i", "-t"}
)

// parseFlags populates Config fields from command-line flags.
//
// Note: The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, so commands and their arguments can be mixed with
// flags.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, ValueFlags[2:], BoolFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&cfg.Cost, "r", cfg.Cost, "bcrypt cost, 4-31")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "version prefix for new salts (2a or 2b)")
	rounds := fs.Uint("k", uint(cfg.KDFRounds), "bcrypt_pbkdf rounds")
	fs.IntVar(&cfg.KDFKeyBytes, "n", cfg.KDFKeyBytes, "bcrypt_pbkdf key length in bytes")
	fs.BoolVar(&cfg.IgnoreFewRounds, "i", cfg.IgnoreFewRounds, "do not warn about few bcrypt_pbkdf rounds")
	fs.BoolVar(&cfg.TruncateLong, "t", cfg.TruncateLong, "truncate passwords over 72 bytes")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *rounds > math.MaxUint32 {
		panic(fmt.Errorf("invalid value %d for flag -k: out of range", *rounds))
	}
	cfg.KDFRounds = uint32(*rounds)
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	fs := flag.NewFlagSet("bcrypt", flag.ContinueOnError)
	fs.SetOutput(w)
	var c Config
	c.LoadDefaults()
	fs.String("c", "", "path to JSON config file")
	fs.Int("r", c.Cost, "bcrypt cost, 4-31")
	fs.String("p", c.Prefix, "version prefix for new salts (2a or 2b)")
	fs.Uint("k", uint(c.KDFRounds), "bcrypt_pbkdf rounds")
	fs.Int("n", c.KDFKeyBytes, "bcrypt_pbkdf key length in bytes")
	fs.Bool("i", false, "do not warn about few bcrypt_pbkdf rounds")
	fs.Bool("t", false, "truncate passwords over 72 bytes")
	fs.String("l", c.LogLevel, "log level")
	fs.String("f", c.LogFormat, "log format (text or json)")
	fs.PrintDefaults()
}
