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

import "github.com/civitasnet/civitas/errkind"

var (
	ErrEmptyTitle       = errkind.New(errkind.Validation, "proposal title must not be empty")
	ErrTitleTooLong     = errkind.New(errkind.Validation, "proposal title exceeds 256 characters")
	ErrEmptyDescription = errkind.New(errkind.Validation, "proposal description must not be empty")
	ErrNoActions        = errkind.New(errkind.Validation, "proposal must carry at least one action")
	ErrNotSupported     = errkind.New(errkind.Validation, "operation not supported by backend")
	ErrNoRecord         = errkind.New(errkind.NotFound, "backend has no record for principal")
)
