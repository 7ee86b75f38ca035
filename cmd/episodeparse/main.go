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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/codysk/anime-episode-parser/pkg/cli"
	"github.com/codysk/anime-episode-parser/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)

	err := flags.Pre(os.Args[1:], os.Stdout)
	if errors.Is(err, cli.ErrVersionRequested) {
		return nil
	} else if err != nil {
		return err
	}

	logWriters := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}

	fs := afero.NewOsFs()
	cfg, err := cli.Setup(fs, flags, helpers.LogDir(), logWriters)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = cli.Run(ctx, cfg, flags, cli.Streams{
		Fs:     fs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
	if err != nil {
		log.Error().Err(err).Msg("episode parse failed")
		return err
	}

	return nil
}
