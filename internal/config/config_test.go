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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "civitas.toml")

	cfg := Default()
	cfg.Node.Admin = "0x00000000000000000000000000000000000000aa"
	cfg.Governance.Quorum = 25
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, common.HexToAddress("0xaa"), loaded.AdminAddress())
	assert.Equal(t, uint64(25), loaded.EngineConfig().Quorum.Uint64())
}

func TestLoadAppliesDefaults(t *testing.T) {
	// A partial file keeps defaults for sections it does not mention.
	path := filepath.Join(t.TempDir(), "civitas.toml")
	partial := "[governance]\nvoting-period = 3600\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(3600), cfg.Governance.VotingPeriod)
	assert.Equal(t, Default().Governance.Quorum, cfg.Governance.Quorum)
	assert.Equal(t, Default().Node.DataDir, cfg.Node.DataDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"empty datadir", func(c *Config) { c.Node.DataDir = "" }, false},
		{"bad admin", func(c *Config) { c.Node.Admin = "not-an-address" }, false},
		{"verbosity too high", func(c *Config) { c.Log.Verbosity = 6 }, false},
		{"zero voting period", func(c *Config) { c.Governance.VotingPeriod = 0 }, false},
		{"zero execution delay", func(c *Config) { c.Governance.ExecutionDelay = 0 }, false},
		{"zero quorum", func(c *Config) { c.Governance.Quorum = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
