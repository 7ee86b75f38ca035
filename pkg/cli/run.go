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
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/codysk/anime-episode-parser/pkg/batch"
	"github.com/codysk/anime-episode-parser/pkg/config"
	"github.com/codysk/anime-episode-parser/pkg/episode"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrNoTitles = errors.New("no titles given")

// Streams are the files Run reads from and writes to.
type Streams struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
}

// Run parses the titles selected by the flags and writes the results.
func Run(ctx context.Context, cfg *config.Instance, f *Flags, s Streams) error {
	if *f.Rules {
		return writeRules(s.Stdout)
	}

	titles, err := collectTitles(f, s)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		return ErrNoTitles
	}

	format, err := batch.ParseFormat(cfg.OutputFormat())
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	parser := episode.NewParser(episode.WithMaxTitleLength(cfg.MaxTitleLength()))

	log.Debug().Msgf("parsing %d titles with %d workers", len(titles), cfg.Workers())
	records, err := batch.ParseAll(ctx, parser, titles, cfg.Workers())
	if err != nil {
		return fmt.Errorf("error parsing titles: %w", err)
	}

	if err := batch.Write(s.Stdout, format, records, *f.Explain); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}
	return nil
}

func collectTitles(f *Flags, s Streams) ([]string, error) {
	titles := append([]string(nil), f.Args()...)

	switch *f.Input {
	case "":
		return titles, nil
	case "-":
		more, err := batch.ReadTitles(s.Stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return append(titles, more...), nil
	default:
		more, err := batch.ReadTitlesFile(s.Fs, *f.Input)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", *f.Input, err)
		}
		return append(titles, more...), nil
	}
}

func writeRules(w io.Writer) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Order", "Role", "Name", "Pattern"})

	for i, r := range episode.Rules() {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), r.Role.String(), r.Name, r.Pattern.String()})
	}
	tw.AppendSeparator()
	for _, r := range episode.TokenRules() {
		tw.AppendRow(table.Row{"token", r.Role.String(), r.Name, r.Pattern.String()})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return fmt.Errorf("error writing rules: %w", err)
	}
	return nil
}
