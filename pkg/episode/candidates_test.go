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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierNormal, TierOf(0))
	assert.Equal(t, TierNormal, TierOf(999))
	assert.Equal(t, TierSpare, TierOf(1000))
	assert.Equal(t, TierSpare, TierOf(2023))
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		values    []int
		expected  int
		wantSpare bool
		wantOK    bool
	}{
		{name: "empty", values: nil},
		{name: "minimum normal", values: []int{12, 5, 7}, expected: 5, wantOK: true},
		{name: "zero is a candidate", values: []int{3, 0}, expected: 0, wantOK: true},
		{name: "normal beats spare", values: []int{2023, 12}, expected: 12, wantOK: true},
		{name: "last spare wins", values: []int{2023, 1999}, expected: 1999, wantSpare: true, wantOK: true},
		{name: "threshold is spare", values: []int{1000}, expected: 1000, wantSpare: true, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c candidates
			for _, v := range tt.values {
				c.add(v)
			}
			n, spare, ok := c.best()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSpare, spare)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestRules_Order(t *testing.T) {
	t.Parallel()

	rules := Rules()
	seenMatch := false
	for _, r := range rules {
		if r.Role == RoleMatch {
			seenMatch = true
			continue
		}
		assert.False(t, seenMatch, "veto rule %s runs after a match rule", r.Name)
	}

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		RuleRangeAllZH,
		RuleRangeSingleDigitZH,
		RuleRangeZH,
		RuleRange,
		RuleEpisodeZH,
		RuleEpisodeNumeralZH,
		RuleEpisodeVersion,
		RuleEpisodeBrackets,
	}, names)

	// callers can't reorder the shared table
	rules[0], rules[1] = rules[1], rules[0]
	assert.Equal(t, RuleRangeAllZH, Rules()[0].Name)

	for _, r := range TokenRules() {
		assert.Equal(t, RoleMatch, r.Role, "token rule %s", r.Name)
	}
}

func TestParseDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{input: "12", expected: 12, ok: true},
		{input: "007", expected: 7, ok: true},
		{input: "１２", expected: 12, ok: true},
		{input: "", ok: false},
		{input: "1a", ok: false},
		{input: "99999999999999999999999", ok: false},
	}

	for _, tt := range tests {
		n, ok := parseDigits(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.expected, n, "input %q", tt.input)
	}
}
