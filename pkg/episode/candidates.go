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

// spareThreshold separates episode numbers from year-like numbers.
const spareThreshold = 1000

// Tier classifies a candidate number found during the token fallback.
type Tier int

const (
	// TierNormal candidates are below 1000 and are treated as episodes.
	TierNormal Tier = iota
	// TierSpare candidates are 1000 or more and are probably years.
	TierSpare
)

// TierOf returns the tier a candidate value belongs to.
func TierOf(n int) Tier {
	if n >= spareThreshold {
		return TierSpare
	}
	return TierNormal
}

// candidates collects token fallback results for a single parse call.
type candidates struct {
	spare    int
	min      int
	hasSpare bool
	hasMin   bool
}

func (c *candidates) add(n int) {
	if TierOf(n) == TierSpare {
		// last spare wins
		c.spare = n
		c.hasSpare = true
		return
	}
	if !c.hasMin || n < c.min {
		c.min = n
		c.hasMin = true
	}
}

// best returns the smallest normal candidate, falling back to the spare.
func (c *candidates) best() (n int, spare, ok bool) {
	switch {
	case c.hasMin:
		return c.min, false, true
	case c.hasSpare:
		return c.spare, true, true
	default:
		return 0, false, false
	}
}
