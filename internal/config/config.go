package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gobcrypt/internal/bcrypt"
	"github.com/dmitrijs2005/gobcrypt/internal/pbkdf"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for hashing and key derivation.
type Config struct {
	Cost            int
	Prefix          string
	KDFRounds       uint32
	KDFKeyBytes     int
	IgnoreFewRounds bool
	TruncateLong    bool
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Cost = bcrypt.DefaultCost
	c.Prefix = bcrypt.Version2B.String()
	c.KDFRounds = 64
	c.KDFKeyBytes = 32
	c.IgnoreFewRounds = false
	c.TruncateLong = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). args excludes the
// program name. Later sources take precedence over earlier ones.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// Policy returns the password truncation policy selected by TruncateLong.
func (c *Config) Policy() bcrypt.TruncationPolicy {
	if c.TruncateLong {
		return bcrypt.TruncateLong
	}
	return bcrypt.RejectLong
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.Cost < bcrypt.MinCost || c.Cost > bcrypt.MaxCost {
		return fmt.Errorf("%w: cost must be %d-%d, got %d", ErrInvalidConfig, bcrypt.MinCost, bcrypt.MaxCost, c.Cost)
	}
	if _, err := bcrypt.ParsePrefix(c.Prefix); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.KDFRounds < 1 {
		return fmt.Errorf("%w: kdf rounds must be 1 or more", ErrInvalidConfig)
	}
	if c.KDFKeyBytes < 1 || c.KDFKeyBytes > pbkdf.MaxKeyLen {
		return fmt.Errorf("%w: kdf key bytes must be 1-%d, got %d", ErrInvalidConfig, pbkdf.MaxKeyLen, c.KDFKeyBytes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
