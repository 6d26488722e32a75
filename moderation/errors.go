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

package moderation

import "github.com/civitasnet/civitas/errkind"

var (
	ErrEmptyContentID   = errkind.New(errkind.Validation, "content id must not be empty")
	ErrEmptyContentHash = errkind.New(errkind.Validation, "content hash must not be empty")
	ErrEmptyReason      = errkind.New(errkind.Validation, "reason must not be empty")
	ErrConfidenceRange  = errkind.New(errkind.Validation, "confidence score out of range")
	ErrRecordNotFound   = errkind.New(errkind.NotFound, "moderation record not found")
	ErrAlreadyOverruled = errkind.New(errkind.Lifecycle, "record already overruled")
)
