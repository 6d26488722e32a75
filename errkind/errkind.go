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

// Package errkind classifies ledger errors into the taxonomy surfaced to
// callers: authorization, lifecycle, validation, not-found, system-paused.
// Sentinel errors across the ledger packages are created through New so a
// caller can branch on Of(err) without knowing which package produced the
// error or how its state is encoded.
package errkind

import "errors"

// Kind is the coarse classification of a ledger error.
type Kind uint8

const (
	Unknown       Kind = iota
	Authorization      // caller lacks a required capability
	Lifecycle          // operation outside its valid state-machine window
	Validation         // malformed input
	NotFound           // referenced id does not exist
	SystemPaused       // global pause gate active
	Internal           // collaborator failure (power source, storage)
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Lifecycle:
		return "lifecycle"
	case Validation:
		return "validation"
	case NotFound:
		return "not found"
	case SystemPaused:
		return "system paused"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a sentinel error tagged with its taxonomy kind. Instances are
// package-level variables compared by identity via errors.Is, so wrapping
// with fmt.Errorf("...: %w", err) preserves both identity and kind.
type Error struct {
	kind Kind
	msg  string
}

// New creates a kinded sentinel error.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Kind returns the taxonomy kind of the sentinel.
func (e *Error) Kind() Kind { return e.kind }

// Of walks the wrap chain of err and returns the kind of the first tagged
// sentinel found, or Unknown when err carries no taxonomy information.
func Of(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.kind
	}
	return Unknown
}
