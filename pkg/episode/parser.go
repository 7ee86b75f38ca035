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

package episode

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Result describes the outcome of parsing a single title.
type Result struct {
	// Rule is the name of the rule that decided the outcome. It is empty when
	// nothing matched.
	Rule    string
	Episode int
	Found   bool
	// Vetoed is set when a range rule matched, so no single episode exists.
	Vetoed bool
	// Spare is set when the episode is a year-like fallback value (>= 1000).
	Spare bool
}

// Parser extracts episode numbers from release titles. A Parser is
// immutable once built and safe for concurrent use.
type Parser struct {
	logger         *zerolog.Logger
	maxTitleLength int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sends rule trace events to logger instead of the global logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = &logger
	}
}

// WithMaxTitleLength makes titles longer than n runes parse as not found.
// Zero or less disables the limit.
func WithMaxTitleLength(n int) Option {
	return func(p *Parser) {
		p.maxTitleLength = n
	}
}

// NewParser returns a Parser using the shared rule table.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse returns the episode number of title using the default parser.
// The boolean is false when no single episode number can be determined.
func Parse(title string) (int, bool) {
	return defaultParser.Parse(title)
}

// ParseResult is like Parse but also reports which rule decided.
func ParseResult(title string) Result {
	return defaultParser.ParseResult(title)
}

func (p *Parser) log() *zerolog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return &log.Logger
}

// Parse returns the episode number of title. The boolean is false when the
// title names an episode range or no rule produced a usable number.
//
// Examples:
//   - "【16】Some Title" → 16
//   - "第二十三集 Title" → 23
//   - "第12-13話 Title" → not found
func (p *Parser) Parse(title string) (int, bool) {
	res := p.ParseResult(title)
	return res.Episode, res.Found
}

// ParseResult runs the rule cascade over title.
//
// Whole-title rules run first in table order: range vetoes end parsing with
// no result, the first match rule producing a number wins. When nothing
// fires the title is split into tokens and every token rule is tried on
// every token. The smallest value below 1000 wins; otherwise the last value
// of 1000 or more is used.
func (p *Parser) ParseResult(title string) Result {
	logger := p.log()

	if p.maxTitleLength > 0 && utf8.RuneCountInString(title) > p.maxTitleLength {
		logger.Trace().
			Int("length", utf8.RuneCountInString(title)).
			Int("max", p.maxTitleLength).
			Msg("title too long, skipping")
		return Result{}
	}

	for i := range titleRules {
		rule := &titleRules[i]
		if rule.Role == RoleVeto {
			if capture, ok := rule.firstCapture(title); ok && capture != "" {
				logger.Trace().Str("rule", rule.Name).Str("range", capture).
					Msg("episode range matched")
				return Result{Rule: rule.Name, Vetoed: true}
			}
			continue
		}

		if n, ok := p.extract(rule, title); ok {
			logger.Trace().Str("rule", rule.Name).Int("episode", n).
				Msg("episode matched")
			return Result{Rule: rule.Name, Episode: n, Found: true}
		}
	}

	logger.Trace().Msg("no rule matched whole title, trying tokens")
	return p.parseTokens(title)
}

func (p *Parser) parseTokens(title string) Result {
	logger := p.log()

	s := strings.ReplaceAll(title, "[", " ")
	s = strings.ReplaceAll(s, "【", ",")

	var found candidates
	for _, token := range strings.Split(s, " ") {
		if token == "" {
			continue
		}
		for i := range tokenRules {
			rule := &tokenRules[i]
			n, ok := p.extract(rule, token)
			if !ok {
				continue
			}
			logger.Trace().Str("rule", rule.Name).Str("token", token).Int("episode", n).
				Msg("token matched")
			found.add(n)
		}
	}

	n, spare, ok := found.best()
	if !ok {
		logger.Trace().Msg("no episode found")
		return Result{}
	}
	return Result{Rule: RuleTokenFallback, Episode: n, Found: true, Spare: spare}
}

// extract applies a match rule to s. The boolean is false when the rule did
// not match or its capture could not be converted.
func (p *Parser) extract(rule *Rule, s string) (int, bool) {
	switch rule.mode {
	case extractMin:
		best, found := 0, false
		for _, capture := range rule.allCaptures(s) {
			n, ok := parseDigits(capture)
			if !ok {
				continue
			}
			if !found || n < best {
				best, found = n, true
			}
		}
		return best, found
	case extractNumeral:
		capture, ok := rule.firstCapture(s)
		if !ok || capture == "" {
			return 0, false
		}
		if n, ok := parseDigits(capture); ok {
			return n, true
		}
		n, err := ConvertChineseNumeral(capture)
		if err != nil {
			p.log().Trace().Err(err).Str("rule", rule.Name).Str("numeral", capture).
				Msg("can't convert numeral")
			return 0, false
		}
		return n, true
	default:
		capture, ok := rule.firstCapture(s)
		if !ok {
			return 0, false
		}
		return parseDigits(capture)
	}
}
