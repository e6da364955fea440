// Package config loads runtime configuration for the bcrypt command.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r int      bcrypt cost (log2 of the key expansion rounds), 4-31
//	-p string   version prefix for new salts, 2a or 2b
//	-k int      bcrypt_pbkdf rounds
//	-n int      bcrypt_pbkdf derived key length in bytes
//	-i          do not warn about low bcrypt_pbkdf round counts
//	-t          truncate passwords over 72 bytes instead of rejecting them
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//
// # JSON schema
//
// Every key is optional; keys that are absent keep their previous value:
//
//	{
//	  "cost": 12,
//	  "prefix": "2b",
//	  "kdf_rounds": 64,
//	  "kdf_key_bytes": 32,
//	  "ignore_few_rounds": false,
//	  "truncate_long": false,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Loading panics on unreadable files and malformed values. Range checks are
// done separately by (*Config).Validate.
package config
