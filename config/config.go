// Package config holds the network-wide constants the witness
// authorization core consults but does not fix itself: fee rates,
// network magic, and the committee membership CommitteeView answers
// against. Shaped like the teacher's pkg/config.ProtocolConfiguration,
// loaded the same way: a single YAML document via gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProtocolConfiguration mirrors the subset of network-wide constants the
// witness authorization core and its CLI shell need.
type ProtocolConfiguration struct {
	// Magic is the network magic number embedded in signed payloads.
	Magic uint32 `yaml:"Magic"`
	// BaseExecFee is the base unit the Conflicts attribute's network
	// fee is billed in: n_signers * BaseExecFee per instance.
	BaseExecFee int64 `yaml:"BaseExecFee"`
	// NotaryServiceFeePerKey is the per-key rate NotaryAssisted bills:
	// (NKeys+1) * NotaryServiceFeePerKey.
	NotaryServiceFeePerKey int64 `yaml:"NotaryServiceFeePerKey"`
	// Committee lists the NEO addresses whose Hash160 form backs
	// CommitteeView.IsCommitteeMember.
	Committee []string `yaml:"Committee"`
	// ManifestCacheSize bounds the manifeststore LRU front of the
	// contract-group bbolt store.
	ManifestCacheSize int `yaml:"ManifestCacheSize"`
	// NotaryEnabled reports whether the notary service is active on
	// this network; NotaryAssisted.Verify checks it via transaction.
	// NotaryState before considering a notary-assisted transaction
	// valid.
	NotaryEnabled bool `yaml:"NotaryEnabled"`
}

// Config is the top-level document a witnessctl deployment loads.
type Config struct {
	ProtocolConfiguration ProtocolConfiguration `yaml:"ProtocolConfiguration"`
}

// Default returns a configuration usable for local demos: no committee
// members, base fee and notary rate matching the live network's
// current GAS-fraction scale.
func Default() Config {
	return Config{
		ProtocolConfiguration: ProtocolConfiguration{
			Magic:                  860833102,
			BaseExecFee:            30,
			NotaryServiceFeePerKey: 1000_0000,
			ManifestCacheSize:      1000,
			NotaryEnabled:          true,
		},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.ProtocolConfiguration.ManifestCacheSize <= 0 {
		cfg.ProtocolConfiguration.ManifestCacheSize = 1000
	}
	return cfg, nil
}
