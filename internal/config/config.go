package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Contracts         []string `json:"contracts" yaml:"contracts"`
	RequiredModifiers []string `json:"requiredModifiers" yaml:"requiredModifiers"`
	Whitelist         []string `json:"whitelist" yaml:"whitelist"`
	WhitelistFile     string   `json:"whitelistFile" yaml:"whitelistFile"`
	SlitherPath       string   `json:"slitherPath" yaml:"slitherPath"`
	SlitherArgs       []string `json:"slitherArgs" yaml:"slitherArgs"`
	TimeBudgetMs      int      `json:"timeBudgetMs" yaml:"timeBudgetMs"`
}

// Default reproduces the original audit target: Balancer's Vault with its
// batch-swap entry points exempted.
func Default() Config {
	return Config{
		Contracts:         []string{"Vault"},
		RequiredModifiers: []string{"nonReentrant"},
		Whitelist: []string{
			"batchSwapGivenIn",
			"batchSwapGivenOut",
			"queryBatchSwapGivenIn",
			"queryBatchSwapGivenOut",
			"queryBatchSwapHelper",
		},
		TimeBudgetMs: 30000,
	}
}

// LoadFile reads one specific config file (JSON or YAML by extension) over
// the defaults, with no directory search.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	return cfg, err
}

// Load searches upwards from startDir for .reguard.json then .reguard.yaml.
// Returns the effective config, the file used (empty if none) and any error.
func Load(startDir string) (Config, string, error) {
	dir := startDir
	for {
		for _, name := range []string{".reguard.json", ".reguard.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			cfg, err := LoadFile(candidate)
			return cfg, candidate, err
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return Default(), "", nil
}
