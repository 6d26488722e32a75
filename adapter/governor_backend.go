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
	"strings"

	"github.com/holiman/uint256"
)

// GovernorProposal is the raw proposal shape of a Governor-style backend.
// Governor proposals carry a description only; the conventional first line
// serves as the title.
type GovernorProposal struct {
	ID           string
	Proposer     string
	Description  string
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
	VoteStart    uint64
	VoteEnd      uint64
	State        uint8 // raw Governor state code, 0..7
}

// GovernorClient is the transport to an external Governor deployment. The
// caller supplies the implementation; the backend never assumes how calls
// reach the contract.
type GovernorClient interface {
	ProposalIDs(ctx context.Context) ([]string, error)
	ProposalByID(ctx context.Context, id string) (GovernorProposal, error)
	Propose(ctx context.Context, proposer, description string, targets []string, values []*uint256.Int, calldatas [][]byte) (string, error)
	CastVote(ctx context.Context, id, voter string, support uint8) error
	Delegate(ctx context.Context, delegator, delegatee string) error
	HasVoted(ctx context.Context, id, voter string) (bool, error)
	GetVotes(ctx context.Context, account string) (*uint256.Int, error)
}

// Governor vote support values.
const (
	governorVoteAgainst uint8 = 0
	governorVoteFor     uint8 = 1
)

// GovernorBackend adapts a Governor-style deployment: numeric status codes in
// Governor enumeration order and delegated-shares voting power.
type GovernorBackend struct {
	name   string
	client GovernorClient
}

// NewGovernorBackend binds a governor client under the given display name.
func NewGovernorBackend(name string, client GovernorClient) *GovernorBackend {
	if name == "" {
		name = "governor"
	}
	return &GovernorBackend{name: name, client: client}
}

// Name implements Backend.
func (b *GovernorBackend) Name() string { return b.name }

// Vocabulary implements Backend. The ordered set follows the Governor state
// enumeration, codes 0 through 7.
func (b *GovernorBackend) Vocabulary() Vocabulary {
	return Vocabulary{
		Ordered: []Status{
			StatusPending, StatusActive, StatusCanceled, StatusDefeated,
			StatusSucceeded, StatusQueued, StatusExpired, StatusExecuted,
		},
		Names: map[string]Status{
			"pending":   StatusPending,
			"active":    StatusActive,
			"canceled":  StatusCanceled,
			"defeated":  StatusDefeated,
			"succeeded": StatusSucceeded,
			"queued":    StatusQueued,
			"expired":   StatusExpired,
			"executed":  StatusExecuted,
		},
	}
}

// Proposals implements Backend.
func (b *GovernorBackend) Proposals(ctx context.Context) ([]CanonicalProposal, error) {
	ids, err := b.client.ProposalIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CanonicalProposal, 0, len(ids))
	for _, id := range ids {
		p, err := b.Proposal(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Proposal implements Backend.
func (b *GovernorBackend) Proposal(ctx context.Context, id string) (CanonicalProposal, error) {
	raw, err := b.client.ProposalByID(ctx, id)
	if err != nil {
		return CanonicalProposal{}, err
	}
	title, description := splitDescription(raw.Description)
	return CanonicalProposal{
		Backend:      b.name,
		ID:           raw.ID,
		Title:        title,
		Description:  description,
		Proposer:     raw.Proposer,
		Status:       b.Vocabulary().Normalize(raw.State),
		ForVotes:     raw.ForVotes,
		AgainstVotes: raw.AgainstVotes,
		StartTime:    raw.VoteStart,
		EndTime:      raw.VoteEnd,
	}, nil
}

// CreateProposal implements Backend. Title and description are joined back
// into the single Governor description field.
func (b *GovernorBackend) CreateProposal(ctx context.Context, input ProposalInput) (string, error) {
	targets := make([]string, len(input.Actions))
	values := make([]*uint256.Int, len(input.Actions))
	calldatas := make([][]byte, len(input.Actions))
	for i, action := range input.Actions {
		targets[i] = action.Target
		if action.Value != nil {
			values[i] = action.Value
		} else {
			values[i] = new(uint256.Int)
		}
		calldatas[i] = action.Data
	}
	description := input.Title + "\n\n" + input.Description
	return b.client.Propose(ctx, input.Proposer, description, targets, values, calldatas)
}

// CastVote implements Backend.
func (b *GovernorBackend) CastVote(ctx context.Context, id, voter string, support bool) error {
	code := governorVoteAgainst
	if support {
		code = governorVoteFor
	}
	return b.client.CastVote(ctx, id, voter, code)
}

// Delegate implements Backend.
func (b *GovernorBackend) Delegate(ctx context.Context, from, to string) error {
	return b.client.Delegate(ctx, from, to)
}

// HasVoted implements Backend.
func (b *GovernorBackend) HasVoted(ctx context.Context, id, voter string) (bool, error) {
	return b.client.HasVoted(ctx, id, voter)
}

// VotingPower implements Backend.
func (b *GovernorBackend) VotingPower(ctx context.Context, principal string) (*uint256.Int, error) {
	return b.client.GetVotes(ctx, principal)
}

// splitDescription extracts the conventional first-line title from a
// Governor description.
func splitDescription(description string) (title, body string) {
	title, body, found := strings.Cut(description, "\n")
	if !found {
		return description, description
	}
	title = strings.TrimPrefix(strings.TrimSpace(title), "# ")
	return title, strings.TrimSpace(body)
}
