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

package errkind

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	sentinel := New(Lifecycle, "proposal already executed")

	if got := Of(sentinel); got != Lifecycle {
		t.Errorf("expected Lifecycle, got %v", got)
	}

	wrapped := fmt.Errorf("governance: execute: %w", sentinel)
	if got := Of(wrapped); got != Lifecycle {
		t.Errorf("expected Lifecycle through wrap, got %v", got)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Error("wrapped error lost sentinel identity")
	}

	if got := Of(errors.New("plain")); got != Unknown {
		t.Errorf("expected Unknown for untagged error, got %v", got)
	}
	if got := Of(nil); got != Unknown {
		t.Errorf("expected Unknown for nil, got %v", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Authorization: "authorization",
		Lifecycle:     "lifecycle",
		Validation:    "validation",
		NotFound:      "not found",
		SystemPaused:  "system paused",
		Internal:      "internal",
		Unknown:       "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
