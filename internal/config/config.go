// Package config loads the chain-service configuration. A Config is built
// once at process startup and injected into every component; nothing in the
// codebase lazily constructs its own.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

const (
	defaultArtifactName = "PropertyToken.json"
	defaultContractsDir = "."
	defaultNetworkID    = "137"
)

// Config is the immutable chain-service configuration.
type Config struct {
	RPCURL       string `json:"rpc_url"`
	SigningKey   string `json:"signing_key"`
	ChainID      int64  `json:"chain_id,omitempty"`       // 0 = query the endpoint
	GasLimit     uint64 `json:"gas_limit,omitempty"`      // 0 = estimate per call
	GasPriceHint string `json:"gas_price_hint,omitempty"` // wei, "" = query per call
	ArtifactName string `json:"artifact_name"`
	ContractsDir string `json:"contracts_dir"`
	NetworkID    string `json:"network_id"`
}

// Load reads config from an optional JSON file and applies environment
// overrides (CHAIN_RPC_URL, CHAIN_SIGNING_KEY, CHAIN_ID, CHAIN_GAS_LIMIT,
// CHAIN_GAS_PRICE, CHAIN_ARTIFACT, CHAIN_CONTRACTS_DIR, CHAIN_NETWORK_ID).
// path may be empty when everything comes from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ArtifactName: defaultArtifactName,
		ContractsDir: defaultContractsDir,
		NetworkID:    defaultNetworkID,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc_url is required (set CHAIN_RPC_URL)")
	}
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("signing_key is required (set CHAIN_SIGNING_KEY)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHAIN_RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("CHAIN_SIGNING_KEY"); v != "" {
		cfg.SigningKey = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ChainID = id
		}
	}
	if v := os.Getenv("CHAIN_GAS_LIMIT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.GasLimit = n
		}
	}
	if v := os.Getenv("CHAIN_GAS_PRICE"); v != "" {
		cfg.GasPriceHint = v
	}
	if v := os.Getenv("CHAIN_ARTIFACT"); v != "" {
		cfg.ArtifactName = v
	}
	if v := os.Getenv("CHAIN_CONTRACTS_DIR"); v != "" {
		cfg.ContractsDir = v
	}
	if v := os.Getenv("CHAIN_NETWORK_ID"); v != "" {
		cfg.NetworkID = v
	}
}
