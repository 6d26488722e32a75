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

// CustomBackend is the escape hatch variant: a function table for backends
// that fit neither the engine, governor nor registry shapes. Nil functions
// report ErrNotSupported instead of panicking.
type CustomBackend struct {
	BackendName string
	Vocab       Vocabulary

	ProposalsFn      func(ctx context.Context) ([]CanonicalProposal, error)
	ProposalFn       func(ctx context.Context, id string) (CanonicalProposal, error)
	CreateProposalFn func(ctx context.Context, input ProposalInput) (string, error)
	CastVoteFn       func(ctx context.Context, id, voter string, support bool) error
	DelegateFn       func(ctx context.Context, from, to string) error
	HasVotedFn       func(ctx context.Context, id, voter string) (bool, error)
	VotingPowerFn    func(ctx context.Context, principal string) (*uint256.Int, error)
}

// Name implements Backend.
func (b *CustomBackend) Name() string {
	if b.BackendName == "" {
		return "custom"
	}
	return b.BackendName
}

// Vocabulary implements Backend.
func (b *CustomBackend) Vocabulary() Vocabulary { return b.Vocab }

// Proposals implements Backend.
func (b *CustomBackend) Proposals(ctx context.Context) ([]CanonicalProposal, error) {
	if b.ProposalsFn == nil {
		return nil, ErrNotSupported
	}
	return b.ProposalsFn(ctx)
}

// Proposal implements Backend.
func (b *CustomBackend) Proposal(ctx context.Context, id string) (CanonicalProposal, error) {
	if b.ProposalFn == nil {
		return CanonicalProposal{}, ErrNotSupported
	}
	return b.ProposalFn(ctx, id)
}

// CreateProposal implements Backend.
func (b *CustomBackend) CreateProposal(ctx context.Context, input ProposalInput) (string, error) {
	if b.CreateProposalFn == nil {
		return "", ErrNotSupported
	}
	return b.CreateProposalFn(ctx, input)
}

// CastVote implements Backend.
func (b *CustomBackend) CastVote(ctx context.Context, id, voter string, support bool) error {
	if b.CastVoteFn == nil {
		return ErrNotSupported
	}
	return b.CastVoteFn(ctx, id, voter, support)
}

// Delegate implements Backend.
func (b *CustomBackend) Delegate(ctx context.Context, from, to string) error {
	if b.DelegateFn == nil {
		return ErrNotSupported
	}
	return b.DelegateFn(ctx, from, to)
}

// HasVoted implements Backend.
func (b *CustomBackend) HasVoted(ctx context.Context, id, voter string) (bool, error) {
	if b.HasVotedFn == nil {
		return false, ErrNotSupported
	}
	return b.HasVotedFn(ctx, id, voter)
}

// VotingPower implements Backend.
func (b *CustomBackend) VotingPower(ctx context.Context, principal string) (*uint256.Int, error) {
	if b.VotingPowerFn == nil {
		return new(uint256.Int), nil
	}
	return b.VotingPowerFn(ctx, principal)
}
