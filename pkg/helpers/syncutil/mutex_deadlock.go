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

//go:build deadlock

// Package syncutil wraps the mutex types so builds tagged deadlock can swap
// in go-deadlock's detecting implementations.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether this build detects deadlocks.
const DeadlockEnabled = true

// Config locks are held for microseconds; anything near this is a bug.
const lockTimeout = 10 * time.Second

func init() {
	deadlock.Opts.DeadlockTimeout = lockTimeout
}

// RWMutex is go-deadlock's RWMutex in builds tagged deadlock.
type RWMutex struct {
	deadlock.RWMutex
}
