// Anime Episode Parser
// Copyright (c) 2026 The Anime Episode Parser Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Anime Episode Parser.
//
// Anime Episode Parser is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Anime Episode Parser is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Anime Episode Parser.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codysk/anime-episode-parser/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "EPISODE_PARSER_CFG"

	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"

	DefaultMaxTitleLength = 4096
	DefaultWorkers        = 4
)

type Values struct {
	Output       Output `toml:"output"`
	Parser       Parser `toml:"parser"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

type Parser struct {
	// MaxTitleLength is the longest title, in runes, that is parsed at all.
	// Zero disables the limit.
	MaxTitleLength int `toml:"max_title_length" validate:"gte=0"`
}

type Output struct {
	Format  string `toml:"format" validate:"oneof=text json csv"`
	Workers int    `toml:"workers" validate:"gte=1,lte=256"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Parser: Parser{
		MaxTitleLength: DefaultMaxTitleLength,
	},
	Output: Output{
		Format:  FormatText,
		Workers: DefaultWorkers,
	},
}

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in the
// EPISODE_PARSER_CFG environment variable when set. A missing file is
// created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	return NewConfigAt(fs, cfgPath, defaults)
}

// NewConfigAt is like NewConfig with an explicit config file path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfigAt(fs afero.Fs, cfgPath string, defaults Values) (*Instance, error) {
	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if !exists {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := Validate(&newVals); err != nil {
		return err
	}

	c.vals = newVals

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) MaxTitleLength() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Parser.MaxTitleLength
}

func (c *Instance) OutputFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.Format
}

// SetOutputFormat changes the output format. The value is validated the
// same way as a loaded config file.
func (c *Instance) SetOutputFormat(format string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vals := c.vals
	vals.Output.Format = format
	if err := Validate(&vals); err != nil {
		return err
	}
	c.vals = vals
	return nil
}

func (c *Instance) Workers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.Workers
}

// SetWorkers changes the number of parallel batch workers.
func (c *Instance) SetWorkers(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vals := c.vals
	vals.Output.Workers = n
	if err := Validate(&vals); err != nil {
		return err
	}
	c.vals = vals
	return nil
}
