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

// RegistryProposal is the raw proposal shape of a registry-style backend:
// string status codes and direct token-balance voting power.
type RegistryProposal struct {
	ID          string
	Title       string
	Description string
	Proposer    string
	Status      string // raw string code, e.g. "voting", "passed"
	YesWeight   *uint256.Int
	NoWeight    *uint256.Int
	OpenedAt    uint64
	ClosesAt    uint64
}

// RegistryClient is the transport to an external registry-style governance
// service.
type RegistryClient interface {
	ListProposals(ctx context.Context) ([]RegistryProposal, error)
	GetProposal(ctx context.Context, id string) (RegistryProposal, error)
	SubmitProposal(ctx context.Context, proposer, title, description string) (string, error)
	SubmitVote(ctx context.Context, id, voter string, approve bool) error
	HasVoted(ctx context.Context, id, voter string) (bool, error)
	TokenBalance(ctx context.Context, holder string) (*uint256.Int, error)
}

// RegistryBackend adapts a registry-style backend with a string status
// vocabulary. Delegation is not part of the registry model.
type RegistryBackend struct {
	name   string
	client RegistryClient
}

// NewRegistryBackend binds a registry client under the given display name.
func NewRegistryBackend(name string, client RegistryClient) *RegistryBackend {
	if name == "" {
		name = "registry"
	}
	return &RegistryBackend{name: name, client: client}
}

// Name implements Backend.
func (b *RegistryBackend) Name() string { return b.name }

// Vocabulary implements Backend. Registry backends report string codes only;
// the ordered form mirrors the service's documented code order.
func (b *RegistryBackend) Vocabulary() Vocabulary {
	return Vocabulary{
		Ordered: []Status{
			StatusPending, StatusActive, StatusSucceeded, StatusDefeated,
			StatusExecuted, StatusCanceled, StatusExpired,
		},
		Names: map[string]Status{
			"pending":   StatusPending,
			"voting":    StatusActive,
			"passed":    StatusSucceeded,
			"rejected":  StatusDefeated,
			"executed":  StatusExecuted,
			"withdrawn": StatusCanceled,
			"lapsed":    StatusExpired,
		},
	}
}

// Proposals implements Backend.
func (b *RegistryBackend) Proposals(ctx context.Context) ([]CanonicalProposal, error) {
	raws, err := b.client.ListProposals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CanonicalProposal, 0, len(raws))
	for _, raw := range raws {
		out = append(out, b.canonical(raw))
	}
	return out, nil
}

// Proposal implements Backend.
func (b *RegistryBackend) Proposal(ctx context.Context, id string) (CanonicalProposal, error) {
	raw, err := b.client.GetProposal(ctx, id)
	if err != nil {
		return CanonicalProposal{}, err
	}
	return b.canonical(raw), nil
}

// CreateProposal implements Backend.
func (b *RegistryBackend) CreateProposal(ctx context.Context, input ProposalInput) (string, error) {
	return b.client.SubmitProposal(ctx, input.Proposer, input.Title, input.Description)
}

// CastVote implements Backend.
func (b *RegistryBackend) CastVote(ctx context.Context, id, voter string, support bool) error {
	return b.client.SubmitVote(ctx, id, voter, support)
}

// Delegate implements Backend.
func (b *RegistryBackend) Delegate(_ context.Context, _, _ string) error {
	return ErrNotSupported
}

// HasVoted implements Backend.
func (b *RegistryBackend) HasVoted(ctx context.Context, id, voter string) (bool, error) {
	return b.client.HasVoted(ctx, id, voter)
}

// VotingPower implements Backend.
func (b *RegistryBackend) VotingPower(ctx context.Context, principal string) (*uint256.Int, error) {
	return b.client.TokenBalance(ctx, principal)
}

func (b *RegistryBackend) canonical(raw RegistryProposal) CanonicalProposal {
	return CanonicalProposal{
		Backend:      b.name,
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  raw.Description,
		Proposer:     raw.Proposer,
		Status:       b.Vocabulary().Normalize(raw.Status),
		ForVotes:     raw.YesWeight,
		AgainstVotes: raw.NoWeight,
		StartTime:    raw.OpenedAt,
		EndTime:      raw.ClosesAt,
	}
}
