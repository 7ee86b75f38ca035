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
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Role says what happens when a rule's pattern matches a title.
type Role int

const (
	// RoleVeto rules recognise multi-episode ranges. A hit ends parsing with
	// no result.
	RoleVeto Role = iota
	// RoleMatch rules yield an episode number candidate.
	RoleMatch
)

func (r Role) String() string {
	switch r {
	case RoleVeto:
		return "veto"
	case RoleMatch:
		return "match"
	default:
		return "unknown"
	}
}

type extractMode int

const (
	// first capture group of the leftmost match, as digits
	extractFirst extractMode = iota
	// first capture group of the leftmost match, as a Chinese numeral
	extractNumeral
	// smallest first capture group over all matches
	extractMin
)

// Rule is a single entry of the ordered rule table.
type Rule struct {
	Pattern *regexp.Regexp
	Name    string
	Role    Role
	mode    extractMode
}

// Digits accepted anywhere a pattern expects a number. Fullwidth digits are
// folded to ASCII before conversion.
const (
	digitClass = `0-9０-９`
	num        = `[` + digitClass + `]`
)

// space matches any Unicode whitespace, including the ideographic space
// U+3000 that CJK titles put around markers and dashes. RE2's \s is ASCII
// only.
const space = `[\t\n\v\f\r\x{1c}-\x{1f}\x{85}\pZ]`

// Rule names, also reported in Result.Rule.
const (
	RuleRangeAllZH         = "range_all_zh"
	RuleRangeSingleDigitZH = "range_single_digit_zh"
	RuleRangeZH            = "range_zh"
	RuleRange              = "range"
	RuleEpisodeZH          = "episode_zh"
	RuleEpisodeNumeralZH   = "episode_numeral_zh"
	RuleEpisodeVersion     = "episode_version"
	RuleEpisodeBrackets    = "episode_brackets"
	RuleEpisodeNumberOnly  = "episode_number_only"
	RuleEpisodeOVA         = "episode_ova"
)

// RuleTokenFallback is reported in Result.Rule when the episode came from
// the token-splitting pass.
const RuleTokenFallback = "token_fallback"

var (
	// 全12話, 全1-12話
	rangeAllZH = Rule{
		Name:    RuleRangeAllZH,
		Role:    RoleVeto,
		Pattern: regexp.MustCompile(`全([` + digitClass + `-]*?)[話话集]`),
	}
	// 第1-2話, 1-2話
	rangeSingleDigitZH = Rule{
		Name:    RuleRangeSingleDigitZH,
		Role:    RoleVeto,
		Pattern: regexp.MustCompile(`第?(` + num + `-` + num + `)[話话集]`),
	}
	// 第12-13話
	rangeZH = Rule{
		Name:    RuleRangeZH,
		Role:    RoleVeto,
		Pattern: regexp.MustCompile(`第` + num + `{2,}` + space + `?-` + space + `?(` + num + `{2,})` + space + `?[話话集]`),
	}
	// 12-13, but not season codes like S01-02
	rangeBare = Rule{
		Name:    RuleRange,
		Role:    RoleVeto,
		Pattern: regexp.MustCompile(`[^sS]` + num + `{2,}` + space + `?-` + space + `?(` + num + `{2,})`),
	}
	// 第12話, 12集
	episodeZH = Rule{
		Name:    RuleEpisodeZH,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`第?` + space + `?(` + num + `{1,3})` + space + `?[話话集]`),
	}
	// 第二十三集
	episodeNumeralZH = Rule{
		Name:    RuleEpisodeNumeralZH,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`第([^第]*?)[話话集]`),
		mode:    extractNumeral,
	}
	// [04v2], [04v2 END], 【12 v3】
	episodeVersion = Rule{
		Name:    RuleEpisodeVersion,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`[【\[](` + num + `+)` + space + `? *v\d` + space + `?(?:END)?[】\]]`),
	}
	// [12], 【E05】, [24 END]
	episodeBrackets = Rule{
		Name:    RuleEpisodeBrackets,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`[【\[]E?(` + num + `+)` + space + `?(?:END)?[】\]]`),
		mode:    extractMin,
	}
	episodeNumberOnly = Rule{
		Name:    RuleEpisodeNumberOnly,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`^(` + num + `{2,})$`),
	}
	// 12(OVA)], 03 (OAD)]
	episodeOVA = Rule{
		Name:    RuleEpisodeOVA,
		Role:    RoleMatch,
		Pattern: regexp.MustCompile(`(` + num + `{2,})` + space + `?\((?:OVA|OAD)\)]`),
	}
)

// titleRules is evaluated against the whole title. Order is significant:
// every veto runs before any match.
var titleRules = []Rule{
	rangeAllZH,
	rangeSingleDigitZH,
	rangeZH,
	rangeBare,
	episodeZH,
	episodeNumeralZH,
	episodeVersion,
	episodeBrackets,
}

// tokenRules is evaluated against each token of a split title when no
// whole-title rule fired.
var tokenRules = []Rule{
	episodeZH,
	episodeNumeralZH,
	episodeBrackets,
	episodeNumberOnly,
	episodeOVA,
	episodeVersion,
}

// Rules returns the whole-title rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(titleRules))
	copy(out, titleRules)
	return out
}

// TokenRules returns the per-token fallback rules in evaluation order.
func TokenRules() []Rule {
	out := make([]Rule, len(tokenRules))
	copy(out, tokenRules)
	return out
}

// firstCapture returns the first capture group of the leftmost match.
func (r *Rule) firstCapture(s string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// allCaptures returns the first capture group of every match.
func (r *Rule) allCaptures(s string) []string {
	matches := r.Pattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// parseDigits converts a run of ASCII or fullwidth digits to an integer.
// It fails for anything else, including values that overflow int.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	folded := width.Fold.String(s)
	if strings.IndexFunc(folded, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(folded)
	if err != nil {
		return 0, false
	}
	return n, true
}
