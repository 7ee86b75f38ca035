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

package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// Format selects how records are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write writes records to w in the given format. When explain is set the
// text format includes the rule that decided each title.
func Write(w io.Writer, format Format, records []Record, explain bool) error {
	switch format {
	case FormatText:
		return writeText(w, records, explain)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []Record{}
		}
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatCSV:
		if err := gocsv.Marshal(records, w); err != nil {
			return fmt.Errorf("failed to encode csv: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// writeText prints "episode<TAB>title" lines, with "-" for titles without a
// single episode.
func writeText(w io.Writer, records []Record, explain bool) error {
	for _, r := range records {
		ep := "-"
		if r.Found {
			ep = strconv.Itoa(r.Episode)
		}

		var err error
		if explain {
			rule := r.Rule
			if rule == "" {
				rule = "-"
			}
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", ep, rule, r.Title)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", ep, r.Title)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
