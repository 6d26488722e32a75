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

// Package adapter normalizes heterogeneous governance backends onto one
// canonical proposal/vote model. Each adapter instance is bound to exactly
// one backend variant; callers never see backend-specific types, statuses or
// voting-power shapes.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// Adapter presents the canonical model over one bound backend. Backend
// failures are wrapped with the backend name and operation so callers can
// attribute errors without unwrapping backend types.
type Adapter struct {
	backend Backend
}

// New binds an adapter to a backend.
func New(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Name returns the bound backend's name.
func (a *Adapter) Name() string { return a.backend.Name() }

// NormalizeStatus maps a raw backend status code (numeric or string) onto the
// canonical status set. Unknown codes yield StatusUnknown, never an error.
func (a *Adapter) NormalizeStatus(raw interface{}) Status {
	return a.backend.Vocabulary().Normalize(raw)
}

// Proposals lists all proposals on the bound backend.
func (a *Adapter) Proposals(ctx context.Context) ([]CanonicalProposal, error) {
	proposals, err := a.backend.Proposals(ctx)
	if err != nil {
		return nil, a.wrap("proposals", err)
	}
	return proposals, nil
}

// Proposal fetches one proposal by id.
func (a *Adapter) Proposal(ctx context.Context, id string) (CanonicalProposal, error) {
	p, err := a.backend.Proposal(ctx, id)
	if err != nil {
		return CanonicalProposal{}, a.wrap("proposal", err)
	}
	return p, nil
}

// CreateProposal validates the input independent of the backend, then
// submits it: non-empty title of at most 256 characters, non-empty
// description, and at least one attached action.
func (a *Adapter) CreateProposal(ctx context.Context, input ProposalInput) (string, error) {
	if input.Title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(input.Title) > 256 {
		return "", ErrTitleTooLong
	}
	if input.Description == "" {
		return "", ErrEmptyDescription
	}
	if len(input.Actions) == 0 {
		return "", ErrNoActions
	}
	id, err := a.backend.CreateProposal(ctx, input)
	if err != nil {
		return "", a.wrap("create proposal", err)
	}
	return id, nil
}

// CastVote casts a for/against vote on behalf of voter.
func (a *Adapter) CastVote(ctx context.Context, id, voter string, support bool) error {
	if err := a.backend.CastVote(ctx, id, voter, support); err != nil {
		return a.wrap("cast vote", err)
	}
	return nil
}

// Delegate delegates from's voting power to to.
func (a *Adapter) Delegate(ctx context.Context, from, to string) error {
	if err := a.backend.Delegate(ctx, from, to); err != nil {
		return a.wrap("delegate", err)
	}
	return nil
}

// HasVoted reports whether voter already voted on the proposal.
func (a *Adapter) HasVoted(ctx context.Context, id, voter string) (bool, error) {
	voted, err := a.backend.HasVoted(ctx, id, voter)
	if err != nil {
		return false, a.wrap("has voted", err)
	}
	return voted, nil
}

// VotingPower returns the principal's weight from the bound backend's power
// source. A principal the backend has no record for yields zero, nil.
func (a *Adapter) VotingPower(ctx context.Context, principal string) (*uint256.Int, error) {
	power, err := a.backend.VotingPower(ctx, principal)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return new(uint256.Int), nil
		}
		return nil, a.wrap("voting power", err)
	}
	if power == nil {
		return new(uint256.Int), nil
	}
	return power, nil
}

func (a *Adapter) wrap(op string, err error) error {
	return fmt.Errorf("adapter: %s: %s: %w", a.backend.Name(), op, err)
}
