package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gobcrypt/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish keys that are absent from zero values.
type JsonConfig struct {
	Cost            *int    `json:"cost"`
	Prefix          *string `json:"prefix"`
	KDFRounds       *uint32 `json:"kdf_rounds"`
	KDFKeyBytes     *int    `json:"kdf_key_bytes"`
	IgnoreFewRounds *bool   `json:"ignore_few_rounds"`
	TruncateLong    *bool   `json:"truncate_long"`
	LogLevel        *string `json:"log_level"`
	LogFormat       *string `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.Cost, jc.Cost)
	set(&cfg.Prefix, jc.Prefix)
	set(&cfg.KDFRounds, jc.KDFRounds)
	set(&cfg.KDFKeyBytes, jc.KDFKeyBytes)
	set(&cfg.IgnoreFewRounds, jc.IgnoreFewRounds)
	set(&cfg.TruncateLong, jc.TruncateLong)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
