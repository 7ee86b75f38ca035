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
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// releaseTitleGen generates strings from characters seen in real release
// titles, including the markers the rules look for.
func releaseTitleGen() *rapid.Generator[string] {
	//nolint:gosmopolitan // CJK release title markers
	chars := []rune(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
			" \u3000-_.()[]【】" +
			"第話话集全一二三四五六七八九十百千万两零" +
			"０１２３４５６７８９" +
			"ドラゴン物語",
	)
	return rapid.StringOfN(rapid.SampledFrom(chars), 0, 80, -1)
}

// safeTextGen generates filler that cannot contain digits or rule markers.
func safeTextGen() *rapid.Generator[string] {
	chars := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz _.")
	return rapid.StringOfN(rapid.SampledFrom(chars), 0, 30, -1)
}

var cnDigitChars = []rune("〇一二三四五六七八九")

// chineseNumeral formats 1..99 the way release titles write episode numbers.
func chineseNumeral(n int) string {
	var b strings.Builder
	tens, ones := n/10, n%10
	if tens > 1 {
		b.WriteRune(cnDigitChars[tens])
	}
	if tens > 0 {
		b.WriteRune('十')
	}
	if ones > 0 {
		b.WriteRune(cnDigitChars[ones])
	}
	return b.String()
}

func TestPropertyParseDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		input := releaseTitleGen().Draw(t, "input")

		first := ParseResult(input)
		second := ParseResult(input)
		if first != second {
			t.Fatalf("ParseResult not deterministic: %+v vs %+v (input=%q)", first, second, input)
		}
	})
}

func TestPropertyResultConsistent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		input := releaseTitleGen().Draw(t, "input")

		res := ParseResult(input)
		if res.Vetoed && res.Found {
			t.Fatalf("vetoed result must not be found: %+v (input=%q)", res, input)
		}
		if !res.Found && res.Episode != 0 {
			t.Fatalf("not found result carries episode: %+v (input=%q)", res, input)
		}
		if res.Spare && (res.Rule != RuleTokenFallback || res.Episode < spareThreshold) {
			t.Fatalf("spare result is inconsistent: %+v (input=%q)", res, input)
		}
		if res.Found && res.Episode < 0 {
			t.Fatalf("negative episode: %+v (input=%q)", res, input)
		}
	})
}

func TestPropertyRangeAlwaysVetoes(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		prefix := releaseTitleGen().Draw(t, "prefix")
		suffix := releaseTitleGen().Draw(t, "suffix")
		from := rapid.IntRange(10, 98).Draw(t, "from")
		to := rapid.IntRange(from+1, 99).Draw(t, "to")
		gap := rapid.SampledFrom([]string{"", " ", "\u3000", "\u00a0"}).Draw(t, "gap")

		input := fmt.Sprintf("%s 第%d%s-%s%d話 %s", prefix, from, gap, gap, to, suffix)
		res := ParseResult(input)
		if !res.Vetoed || res.Found {
			t.Fatalf("range not vetoed: %+v (input=%q)", res, input)
		}
	})
}

func TestPropertyBracketMinimum(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		episodes := rapid.SliceOfN(rapid.IntRange(0, 999), 1, 6).Draw(t, "episodes")
		name := safeTextGen().Draw(t, "name")

		var b strings.Builder
		want := episodes[0]
		for _, e := range episodes {
			_, _ = fmt.Fprintf(&b, "【%02d】", e)
			want = min(want, e)
		}
		input := b.String() + name

		got, ok := Parse(input)
		if !ok || got != want {
			t.Fatalf("Parse(%q) = %d, %v; want %d", input, got, ok, want)
		}
	})
}

func TestPropertyEpisodeBeatsYear(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(1000, 9999).Draw(t, "year")
		ep := rapid.IntRange(0, 999).Draw(t, "episode")
		name := safeTextGen().Draw(t, "name")
		yearFirst := rapid.Bool().Draw(t, "yearFirst")

		var input string
		if yearFirst {
			input = fmt.Sprintf("%s %d %02d", name, year, ep)
		} else {
			input = fmt.Sprintf("%s %02d %d", name, ep, year)
		}

		res := ParseResult(input)
		if !res.Found || res.Spare || res.Episode != ep {
			t.Fatalf("ParseResult(%q) = %+v; want episode %d", input, res, ep)
		}

		res = ParseResult(fmt.Sprintf("%s %d", name, year))
		if !res.Found || !res.Spare || res.Episode != year {
			t.Fatalf("year only title: %+v; want spare %d", res, year)
		}
	})
}

func TestPropertyChineseNumeralEpisode(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 99).Draw(t, "n")
		marker := rapid.SampledFrom([]string{"話", "话", "集"}).Draw(t, "marker")
		name := safeTextGen().Draw(t, "name")

		text := chineseNumeral(n)
		got, err := ConvertChineseNumeral(text)
		if err != nil || got != n {
			t.Fatalf("ConvertChineseNumeral(%q) = %d, %v; want %d", text, got, err, n)
		}

		input := name + " 第" + text + marker
		ep, ok := Parse(input)
		if !ok || ep != n {
			t.Fatalf("Parse(%q) = %d, %v; want %d", input, ep, ok, n)
		}
	})
}
