// Copyright 2025 The civitas Authors
// This file is part of the civitas library.
//
// The civitas library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The civitas library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the civitas library. If not, see <http://www.gnu.org/licenses/>.

// Package config loads and validates the node's TOML configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/civitasnet/civitas/governance"
)

// Config is the full node configuration as read from the TOML file.
type Config struct {
	Node       NodeConfig       `toml:"node"`
	Log        LogConfig        `toml:"log"`
	Governance GovernanceConfig `toml:"governance"`
}

// NodeConfig holds paths and identity.
type NodeConfig struct {
	DataDir string `toml:"datadir"`
	// Admin is the bootstrap admin address, granted the admin and proposer
	// capabilities when the ledgers are created.
	Admin string `toml:"admin"`
}

// LogConfig holds logging output options.
type LogConfig struct {
	Verbosity  int    `toml:"verbosity"`   // 0=crit .. 5=trace
	File       string `toml:"file"`        // empty means stderr only
	MaxSizeMB  int    `toml:"max-size"`    // rotate threshold per log file
	MaxBackups int    `toml:"max-backups"` // rotated files kept
}

// GovernanceConfig holds the engine parameters applied to new proposals.
type GovernanceConfig struct {
	VotingPeriod   uint64 `toml:"voting-period"`   // seconds
	ExecutionDelay uint64 `toml:"execution-delay"` // seconds
	Quorum         uint64 `toml:"quorum"`          // minimum total weight
}

// Default returns the configuration a fresh `init` writes out.
func Default() *Config {
	engine := governance.DefaultConfig()
	return &Config{
		Node: NodeConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Verbosity:  3,
			MaxSizeMB:  100,
			MaxBackups: 10,
		},
		Governance: GovernanceConfig{
			VotingPeriod:   engine.VotingPeriod,
			ExecutionDelay: engine.ExecutionDelay,
			Quorum:         engine.Quorum.Uint64(),
		},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks value ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.Node.DataDir == "" {
		return fmt.Errorf("node.datadir must not be empty")
	}
	if c.Node.Admin != "" && !common.IsHexAddress(c.Node.Admin) {
		return fmt.Errorf("node.admin is not a hex address: %s", c.Node.Admin)
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		return fmt.Errorf("log.verbosity out of range [0,5]: %d", c.Log.Verbosity)
	}
	if c.Governance.VotingPeriod == 0 {
		return fmt.Errorf("governance.voting-period must be positive")
	}
	if c.Governance.ExecutionDelay == 0 {
		return fmt.Errorf("governance.execution-delay must be positive")
	}
	if c.Governance.Quorum == 0 {
		return fmt.Errorf("governance.quorum must be positive")
	}
	return nil
}

// AdminAddress returns the parsed bootstrap admin address. Validate has
// already checked the format; an unset admin yields the zero address.
func (c *Config) AdminAddress() common.Address {
	return common.HexToAddress(c.Node.Admin)
}

// EngineConfig converts the governance section into engine parameters.
func (c *Config) EngineConfig() *governance.Config {
	return &governance.Config{
		VotingPeriod:   c.Governance.VotingPeriod,
		ExecutionDelay: c.Governance.ExecutionDelay,
		Quorum:         uint256.NewInt(c.Governance.Quorum),
	}
}
