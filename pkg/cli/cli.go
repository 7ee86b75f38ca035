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
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/codysk/anime-episode-parser/pkg/config"
	"github.com/codysk/anime-episode-parser/pkg/helpers"
	"github.com/codysk/anime-episode-parser/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrVersionRequested = errors.New("version requested")

type Flags struct {
	set     *flag.FlagSet
	Config  *string
	Input   *string
	Format  *string
	Workers *int
	Explain *bool
	Rules   *bool
	Trace   *bool
	Version *bool
}

// SetupFlags defines all CLI flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		set: fs,
		Config: fs.String(
			"config",
			"",
			"path to config file",
		),
		Input: fs.String(
			"input",
			"",
			"read titles from file, one per line (- for stdin)",
		),
		Format: fs.String(
			"format",
			"",
			"output format: text, json or csv (overrides config)",
		),
		Workers: fs.Int(
			"workers",
			0,
			"number of parallel parse workers (overrides config)",
		),
		Explain: fs.Bool(
			"explain",
			false,
			"show the rule that decided each title",
		),
		Rules: fs.Bool(
			"rules",
			false,
			"list the parse rules in evaluation order and exit",
		),
		Trace: fs.Bool(
			"trace",
			false,
			"log every rule decision",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Args returns the positional arguments, which are titles to parse.
func (f *Flags) Args() []string {
	return f.set.Args()
}

// Pre parses args and handles flags that don't need config or logging.
// It returns ErrVersionRequested after printing the version.
func (f *Flags) Pre(args []string, stdout io.Writer) error {
	if err := f.set.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(stdout, "episode-parser v%s\n", config.AppVersion)
		return ErrVersionRequested
	}

	return nil
}

// Setup initializes logging in logDir and the user config, then applies
// flag overrides on top of the loaded config. Overrides are not saved.
func Setup(fs afero.Fs, f *Flags, logDir string, writers []io.Writer) (*config.Instance, error) {
	err := helpers.InitLogging(logDir, writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	var cfg *config.Instance
	if *f.Config != "" {
		cfg, err = config.NewConfigAt(fs, *f.Config, config.BaseDefaults)
	} else {
		cfg, err = config.NewConfig(fs, helpers.ConfigDir(), config.BaseDefaults)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if err := f.applyOverrides(cfg); err != nil {
		return nil, err
	}

	helpers.SetLogLevel(cfg.DebugLogging(), *f.Trace)

	log.Debug().
		Str("version", config.AppVersion).
		Str("config", cfg.Path()).
		Bool("deadlock_detection", syncutil.DeadlockEnabled).
		Msg("episode-parser started")

	return cfg, nil
}

func (f *Flags) applyOverrides(cfg *config.Instance) error {
	if f.isFlagPassed("format") {
		if err := cfg.SetOutputFormat(*f.Format); err != nil {
			return fmt.Errorf("invalid -format: %w", err)
		}
	}
	if f.isFlagPassed("workers") {
		if err := cfg.SetWorkers(*f.Workers); err != nil {
			return fmt.Errorf("invalid -workers: %w", err)
		}
	}
	return nil
}
