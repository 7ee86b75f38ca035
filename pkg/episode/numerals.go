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
	"errors"
	"fmt"
)

// ErrUnknownNumeral is returned when a character is neither a Chinese digit
// nor a Chinese unit.
var ErrUnknownNumeral = errors.New("unknown chinese numeral character")

const (
	unitTen            = 10
	unitTenThousand    = 10_000
	unitHundredMillion = 100_000_000
)

var cnDigits = map[rune]int{
	'〇': 0,
	'一': 1,
	'二': 2,
	'三': 3,
	'四': 4,
	'五': 5,
	'六': 6,
	'七': 7,
	'八': 8,
	'九': 9,
	'零': 0,
	'壹': 1,
	'贰': 2,
	'叁': 3,
	'肆': 4,
	'伍': 5,
	'陆': 6,
	'柒': 7,
	'捌': 8,
	'玖': 9,
	'貮': 2,
	'两': 2,
}

// No character maps to unitHundredMillion yet. The reduction below still
// treats it as a section marker so adding a unit character is enough.
var cnUnits = map[rune]int{
	'十': 10,
	'拾': 10,
	'百': 100,
	'佰': 100,
	'千': 1000,
	'仟': 1000,
	'万': unitTenThousand,
	'萬': unitTenThousand,
}

func isSectionUnit(v int) bool {
	return v == unitTenThousand || v == unitHundredMillion
}

// ConvertChineseNumeral converts a positional Chinese numeral such as
// "二十三" or "一百零五" to an integer.
//
// The text must contain only digit and unit characters. Any other character
// returns an error wrapping ErrUnknownNumeral. Empty text converts to 0.
//
// Examples:
//   - "十五" → 15
//   - "三千二百" → 3200
//   - "两" → 2
func ConvertChineseNumeral(text string) (int, error) {
	runes := []rune(text)
	unit := 0
	digits := make([]int, 0, len(runes))

	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if u, ok := cnUnits[r]; ok {
			unit = u
			if isSectionUnit(unit) {
				digits = append(digits, unit)
				// a bare digit before a section unit counts as ones
				unit = 1
			}
			continue
		}

		d, ok := cnDigits[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownNumeral, r)
		}
		if unit != 0 {
			d *= unit
			unit = 0
		}
		digits = append(digits, d)
	}

	// leading 十 with no digit in front of it, e.g. "十五"
	if unit == unitTen {
		digits = append(digits, unitTen)
	}

	val, tmp := 0, 0
	for i := len(digits) - 1; i >= 0; i-- {
		x := digits[i]
		if isSectionUnit(x) {
			val += tmp * x
			tmp = 0
			continue
		}
		tmp += x
	}

	return val + tmp, nil
}
