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

package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/codysk/anime-episode-parser/pkg/config"
	"github.com/codysk/anime-episode-parser/pkg/helpers/syncutil"
	testhelpers "github.com/codysk/anime-episode-parser/pkg/testing/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogging(t *testing.T) {
	t.Helper()
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

//nolint:paralleltest // replaces the global logger and level
func TestSetup(t *testing.T) {
	restoreLogging(t)

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreateConfigFile("/config/config.toml", map[string]any{
		"config_schema": config.SchemaVersion,
		"debug_logging": true,
		"output":        map[string]any{"format": config.FormatJSON},
	}))

	f := newTestFlags(t, "-config", "/config/config.toml", "-workers", "3")
	logDir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	cfg, err := Setup(h.Fs, f, logDir, []io.Writer{&buf})
	require.NoError(t, err)

	assert.Equal(t, "/config/config.toml", cfg.Path())
	assert.Equal(t, config.FormatJSON, cfg.OutputFormat())
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.Contains(t, buf.String(), "episode-parser started")
	assert.Contains(t, buf.String(), `"deadlock_detection":`)
	if syncutil.DeadlockEnabled {
		assert.Contains(t, buf.String(), `"deadlock_detection":true`)
	} else {
		assert.Contains(t, buf.String(), `"deadlock_detection":false`)
	}

	_, err = os.Stat(filepath.Join(logDir, config.LogFile))
	require.NoError(t, err, "log file should be created in logDir")

	reloaded, err := config.NewConfigAt(h.Fs, "/config/config.toml", config.BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultWorkers, reloaded.Workers(), "flag overrides should not be saved")
}

//nolint:paralleltest // replaces the global logger and level
func TestSetup_TraceFlag(t *testing.T) {
	restoreLogging(t)

	h := testhelpers.NewMemoryFS()
	f := newTestFlags(t, "-config", "/config/config.toml", "-trace")

	cfg, err := Setup(h.Fs, f, t.TempDir(), nil)
	require.NoError(t, err)

	assert.False(t, cfg.DebugLogging())
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	exists, err := afero.Exists(h.Fs, "/config/config.toml")
	require.NoError(t, err)
	assert.True(t, exists, "missing config should be created")
}

//nolint:paralleltest // replaces the global logger and level
func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name        string
		config      map[string]any
		errContains string
		args        []string
	}{
		{
			name:        "schema mismatch",
			config:      map[string]any{"config_schema": 99},
			errContains: "error loading config",
		},
		{
			name:        "invalid workers override",
			config:      map[string]any{"config_schema": config.SchemaVersion},
			args:        []string{"-workers", "999"},
			errContains: "invalid -workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLogging(t)

			h := testhelpers.NewMemoryFS()
			require.NoError(t, h.CreateConfigFile("/config/config.toml", tt.config))

			args := append([]string{"-config", "/config/config.toml"}, tt.args...)
			_, err := Setup(h.Fs, newTestFlags(t, args...), t.TempDir(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
