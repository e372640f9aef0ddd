// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// DefaultArchiveURL is the remote scheme-collection archive that sync
// downloads when no other URL is configured.
const DefaultArchiveURL = "https://github.com/pha4ge/primer-schemes/archive/refs/heads/main.tar.gz"

// Config is the root-level settings struct and is a mix of settings
// available in the settings file, environment (PRIMASCHEMA_*), and
// command line arguments.
type Config struct {
	// SchemesPath is the root of the local primer scheme collection
	SchemesPath string `mapstructure:"schemes-path"`

	// BaseURL is prepended to file URLs in generated manifests
	BaseURL string `mapstructure:"base-url"`

	// ArchiveURL is the remote scheme collection archive used by sync
	ArchiveURL string `mapstructure:"archive-url"`

	// IgnoreChecksums downgrades checksum mismatches to warnings
	IgnoreChecksums bool `mapstructure:"ignore-checksums"`
}

// New returns a new Config struct populated by Viper settings (from the
// settings file, environment and/or bound command line flags).
func New() *Config {
	viper.SetDefault("archive-url", DefaultArchiveURL)

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}
