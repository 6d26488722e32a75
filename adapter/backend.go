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

import (
	"context"

	"github.com/holiman/uint256"
)

// CanonicalProposal is the backend-independent proposal shape handed to
// callers. Identifiers and principals are strings so heterogeneous id schemes
// (sequential ids, hex hashes) fit without protocol-specific branches.
type CanonicalProposal struct {
	Backend      string // name of the backend the proposal lives on
	ID           string
	Title        string
	Description  string
	Proposer     string
	Status       Status
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
	StartTime    uint64
	EndTime      uint64
}

// Action is one effect a proposal carries when executed.
type Action struct {
	Target string
	Value  *uint256.Int
	Data   []byte
}

// ProposalInput is the backend-independent creation request.
type ProposalInput struct {
	Proposer    string
	Title       string
	Description string
	Actions     []Action
}

// Backend is the capability set every governance backend variant provides.
// One adapter instance is bound to exactly one backend at construction; the
// adapter dispatches on the bound variant, never on runtime shape inspection.
type Backend interface {
	// Name identifies the backend in wrapped errors and aggregated results.
	Name() string

	// Vocabulary returns the backend's ordered status vocabulary.
	Vocabulary() Vocabulary

	// Proposals lists all proposals known to the backend.
	Proposals(ctx context.Context) ([]CanonicalProposal, error)

	// Proposal fetches one proposal by backend-native id.
	Proposal(ctx context.Context, id string) (CanonicalProposal, error)

	// CreateProposal submits a new proposal and returns its id.
	CreateProposal(ctx context.Context, input ProposalInput) (string, error)

	// CastVote casts a for/against vote on behalf of voter.
	CastVote(ctx context.Context, id, voter string, support bool) error

	// Delegate delegates from's voting power to to. Backends without
	// delegation return ErrNotSupported.
	Delegate(ctx context.Context, from, to string) error

	// HasVoted reports whether voter already voted on the proposal.
	HasVoted(ctx context.Context, id, voter string) (bool, error)

	// VotingPower returns the principal's weight from the backend's power
	// source. A principal unknown to the backend yields zero, not an error.
	VotingPower(ctx context.Context, principal string) (*uint256.Int, error)
}
