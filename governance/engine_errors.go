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

package governance

import "github.com/civitasnet/civitas/errkind"

// Proposal validation errors
var (
	ErrEmptyTitle       = errkind.New(errkind.Validation, "proposal title must not be empty")
	ErrTitleTooLong     = errkind.New(errkind.Validation, "proposal title exceeds maximum length")
	ErrEmptyDescription = errkind.New(errkind.Validation, "proposal description must not be empty")
	ErrNonPositiveValue = errkind.New(errkind.Validation, "config value must be positive")
)

// Voting errors
var (
	ErrProposalNotFound = errkind.New(errkind.NotFound, "proposal not found")
	ErrVotingClosed     = errkind.New(errkind.Lifecycle, "voting period has ended")
	ErrAlreadyVoted     = errkind.New(errkind.Lifecycle, "voter has already voted on this proposal")
	ErrNoVotingPower    = errkind.New(errkind.Authorization, "voter has no voting power")
	ErrPowerSource      = errkind.New(errkind.Internal, "voting power lookup failed")
)

// Execution errors
var (
	ErrVotingNotEnded       = errkind.New(errkind.Lifecycle, "voting period has not ended")
	ErrExecutionDelayNotMet = errkind.New(errkind.Lifecycle, "execution delay not met")
	ErrQuorumNotReached     = errkind.New(errkind.Lifecycle, "quorum not reached")
	ErrAlreadyExecuted      = errkind.New(errkind.Lifecycle, "proposal already executed")
)
