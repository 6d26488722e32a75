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
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/civitasnet/civitas/governance"
)

// EngineBackend binds the in-process governance engine as a backend variant.
// Proposal ids are the engine's sequential ids rendered in decimal; voting
// starts at creation, so the engine vocabulary has no separate pending state.
type EngineBackend struct {
	engine *governance.Engine
	power  governance.PowerSource
}

// NewEngineBackend wraps an engine and its power source.
func NewEngineBackend(engine *governance.Engine, power governance.PowerSource) *EngineBackend {
	return &EngineBackend{engine: engine, power: power}
}

// Name implements Backend.
func (b *EngineBackend) Name() string { return "engine" }

// Vocabulary implements Backend. Numeric codes are governance.State values.
func (b *EngineBackend) Vocabulary() Vocabulary {
	return Vocabulary{
		Ordered: []Status{StatusActive, StatusQueued, StatusExecuted},
		Names: map[string]Status{
			"pending":  StatusActive,
			"closed":   StatusQueued,
			"executed": StatusExecuted,
		},
	}
}

// Proposals implements Backend.
func (b *EngineBackend) Proposals(_ context.Context) ([]CanonicalProposal, error) {
	count := b.engine.ProposalCount()
	out := make([]CanonicalProposal, 0, count)
	for id := uint64(0); id < count; id++ {
		p, err := b.engine.Proposal(id)
		if err != nil {
			return nil, err
		}
		out = append(out, b.canonical(p))
	}
	return out, nil
}

// Proposal implements Backend.
func (b *EngineBackend) Proposal(_ context.Context, id string) (CanonicalProposal, error) {
	seq, err := parseSeqID(id)
	if err != nil {
		return CanonicalProposal{}, err
	}
	p, err := b.engine.Proposal(seq)
	if err != nil {
		return CanonicalProposal{}, err
	}
	return b.canonical(p), nil
}

// CreateProposal implements Backend. Actions are advisory for the in-process
// engine; the proposal text carries the decision.
func (b *EngineBackend) CreateProposal(_ context.Context, input ProposalInput) (string, error) {
	id, err := b.engine.CreateProposal(common.HexToAddress(input.Proposer), input.Title, input.Description)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(id, 10), nil
}

// CastVote implements Backend.
func (b *EngineBackend) CastVote(_ context.Context, id, voter string, support bool) error {
	seq, err := parseSeqID(id)
	if err != nil {
		return err
	}
	return b.engine.CastVote(common.HexToAddress(voter), seq, support)
}

// Delegate implements Backend. The engine reads power directly from its
// token source and has no delegation.
func (b *EngineBackend) Delegate(_ context.Context, _, _ string) error {
	return ErrNotSupported
}

// HasVoted implements Backend.
func (b *EngineBackend) HasVoted(_ context.Context, id, voter string) (bool, error) {
	seq, err := parseSeqID(id)
	if err != nil {
		return false, err
	}
	choice, err := b.engine.VoteStatus(seq, common.HexToAddress(voter))
	if err != nil {
		return false, err
	}
	return choice != governance.VoteNone, nil
}

// VotingPower implements Backend.
func (b *EngineBackend) VotingPower(_ context.Context, principal string) (*uint256.Int, error) {
	return b.power.VotingPower(common.HexToAddress(principal))
}

func (b *EngineBackend) canonical(p governance.Proposal) CanonicalProposal {
	status := StatusActive
	switch {
	case p.Executed && p.Passed:
		status = StatusExecuted
	case p.Executed:
		status = StatusDefeated
	default:
		if state, err := b.engine.ProposalState(p.ID); err == nil && state == governance.StateClosed {
			status = StatusQueued
		}
	}
	return CanonicalProposal{
		Backend:      b.Name(),
		ID:           strconv.FormatUint(p.ID, 10),
		Title:        p.Title,
		Description:  p.Description,
		Proposer:     p.Proposer.Hex(),
		Status:       status,
		ForVotes:     p.ForVotes,
		AgainstVotes: p.AgainstVotes,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
	}
}

func parseSeqID(id string) (uint64, error) {
	seq, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, governance.ErrProposalNotFound
	}
	return seq, nil
}
