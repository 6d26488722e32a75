// Copyright 2025 The civitas Authors
// This file is part of the civitas library.
//
// The civitas library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The civitas library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the civitas library. If not, see <http://www.gnu.org/licenses/>.

package adapter

import "strings"

// Status is the canonical proposal status every backend shape normalizes to.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusPending
	StatusActive
	StatusCanceled
	StatusDefeated
	StatusSucceeded
	StatusQueued
	StatusExpired
	StatusExecuted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusCanceled:
		return "canceled"
	case StatusDefeated:
		return "defeated"
	case StatusSucceeded:
		return "succeeded"
	case StatusQueued:
		return "queued"
	case StatusExpired:
		return "expired"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Vocabulary is a backend's ordered status vocabulary. Numeric raw codes
// index into Ordered; string raw codes look up Names case-insensitively.
type Vocabulary struct {
	Ordered []Status
	Names   map[string]Status
}

// Normalize maps a raw backend status code onto the canonical status set.
// Unknown codes and unsupported raw types yield StatusUnknown, never an error.
func (v Vocabulary) Normalize(raw interface{}) Status {
	switch code := raw.(type) {
	case Status:
		return code
	case string:
		if s, ok := v.Names[strings.ToLower(code)]; ok {
			return s
		}
		return StatusUnknown
	case int:
		return v.byIndex(int64(code))
	case int8:
		return v.byIndex(int64(code))
	case int32:
		return v.byIndex(int64(code))
	case int64:
		return v.byIndex(code)
	case uint8:
		return v.byIndex(int64(code))
	case uint32:
		return v.byIndex(int64(code))
	case uint64:
		if code > uint64(len(v.Ordered)) {
			return StatusUnknown
		}
		return v.byIndex(int64(code))
	case float64:
		// JSON decoders hand numbers over as float64.
		if code != float64(int64(code)) {
			return StatusUnknown
		}
		return v.byIndex(int64(code))
	default:
		return StatusUnknown
	}
}

func (v Vocabulary) byIndex(i int64) Status {
	if i < 0 || i >= int64(len(v.Ordered)) {
		return StatusUnknown
	}
	return v.Ordered[i]
}
