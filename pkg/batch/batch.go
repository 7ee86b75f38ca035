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

// Package batch parses many release titles at once and writes the results
// as text, JSON or CSV.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/codysk/anime-episode-parser/pkg/episode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single input line. Release titles are short, this
// only protects against binary garbage.
const maxLineSize = 1 << 20

// Record is the parse outcome of one title.
type Record struct {
	Title   string `csv:"title" json:"title"`
	Rule    string `csv:"rule" json:"rule,omitempty"`
	Episode int    `csv:"episode" json:"episode"`
	Found   bool   `csv:"found" json:"found"`
	Spare   bool   `csv:"spare" json:"spare,omitempty"`
}

// ReadTitles reads one title per line. Blank lines are skipped and a
// leading UTF-8 byte order mark is dropped.
func ReadTitles(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var titles []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	return titles, nil
}

// ReadTitlesFile reads titles from path on fs.
func ReadTitlesFile(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close input file")
		}
	}()

	return ReadTitles(f)
}

// ParseAll parses titles with up to workers goroutines. Records are
// returned in input order. Cancelling ctx stops work that hasn't started.
func ParseAll(
	ctx context.Context,
	p *episode.Parser,
	titles []string,
	workers int,
) ([]Record, error) {
	if workers < 1 {
		workers = 1
	}

	records := make([]Record, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, title := range titles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context error returned as-is
			}
			res := p.ParseResult(title)
			records[i] = Record{
				Title:   title,
				Episode: res.Episode,
				Found:   res.Found,
				Rule:    res.Rule,
				Spare:   res.Spare,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch parse cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch parse cancelled: %w", err)
	}

	log.Debug().Int("titles", len(titles)).Int("workers", workers).Msg("batch parse finished")
	return records, nil
}
