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

// Package episode extracts a single episode number from anime release
// titles.
//
// Titles mix CJK and Latin text, fullwidth and halfwidth brackets, episode
// ranges and Chinese numerals. Parsing runs an ordered table of rules over
// the whole title:
//
//  1. Range rules ("全12話", "第12-13話", "01-12") veto the title. A batch
//     release has no single episode, so nothing is returned.
//  2. Match rules ("第12話", "第二十三集", "[04v2]", "【16】") return the
//     first number they produce.
//  3. When nothing fires, the title is split into tokens and the match
//     rules plus bare-number and OVA/OAD rules run on each token. Numbers of
//     1000 or more are kept only as a last resort since they are usually
//     years.
//
// The rule table is compiled once at init and never modified, so Parse is
// safe for concurrent use. Patterns use Go's linear time regexp engine.
package episode
