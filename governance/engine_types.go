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

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MaxTitleLength bounds proposal titles.
const MaxTitleLength = 256

// VoteChoice is a principal's recorded choice on a proposal.
type VoteChoice uint8

const (
	VoteNone    VoteChoice = 0x00
	VoteFor     VoteChoice = 0x01
	VoteAgainst VoteChoice = 0x02
)

// String implements fmt.Stringer.
func (v VoteChoice) String() string {
	switch v {
	case VoteFor:
		return "for"
	case VoteAgainst:
		return "against"
	default:
		return "none"
	}
}

// State is the lifecycle position of a proposal, derived from the clock.
// Transitions never skip a state and Executed is terminal.
type State uint8

const (
	StatePending  State = 0x00 // voting window open
	StateClosed   State = 0x01 // window elapsed, not yet executed
	StateExecuted State = 0x02
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateClosed:
		return "closed"
	case StateExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Proposal is a token-weighted governance proposal. Voting-window and quorum
// parameters are snapshotted from the engine config at creation time, so
// later admin config changes never affect a proposal already in flight.
type Proposal struct {
	ID           uint64
	Title        string
	Description  string
	Proposer     common.Address
	StartTime    uint64 // unix time voting opened
	EndTime      uint64 // StartTime + snapshotted voting period
	ExecuteAfter uint64 // EndTime + snapshotted execution delay
	Quorum       *uint256.Int
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
	Executed     bool
	Passed       bool // decided and frozen at execution

	// votes is the per-proposal arena of recorded choices. It is never
	// shared outward; callers read it through VoteStatus.
	votes map[common.Address]VoteChoice
}

// copyProposal clones the exported view of a proposal. The vote arena stays
// behind; only tallies and lifecycle fields leave the engine.
func copyProposal(p *Proposal) Proposal {
	out := *p
	out.Quorum = new(uint256.Int).Set(p.Quorum)
	out.ForVotes = new(uint256.Int).Set(p.ForVotes)
	out.AgainstVotes = new(uint256.Int).Set(p.AgainstVotes)
	out.votes = nil
	return out
}

// Config holds the engine parameters applied to newly created proposals.
// All values are strictly positive.
type Config struct {
	VotingPeriod   uint64 // seconds the voting window stays open
	ExecutionDelay uint64 // seconds after EndTime before execution is allowed
	Quorum         *uint256.Int
}

// DefaultConfig returns the default governance parameters.
func DefaultConfig() *Config {
	return &Config{
		VotingPeriod:   7 * 24 * 3600, // 7 days
		ExecutionDelay: 24 * 3600,     // 1 day
		Quorum:         uint256.NewInt(10),
	}
}

// ProposalCreated is emitted once per committed CreateProposal.
type ProposalCreated struct {
	ID        uint64
	Proposer  common.Address
	Title     string
	StartTime uint64
	EndTime   uint64
}

// VoteCast is emitted once per committed CastVote.
type VoteCast struct {
	ProposalID uint64
	Voter      common.Address
	Support    bool
	Weight     *uint256.Int
}

// ProposalExecuted is emitted once per committed ExecuteProposal.
type ProposalExecuted struct {
	ID           uint64
	Passed       bool
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
}
