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

// Package governance implements the proposal ledger: time-boxed token-weighted
// voting with quorum and one-shot execution. The engine is a sequential state
// machine; the surrounding transport serializes submissions and every mutation
// either fully commits or leaves no observable change.
package governance

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/civitasnet/civitas/pause"
	"github.com/civitasnet/civitas/roles"
)

// PowerSource answers voting-power lookups, typically a token balance or
// delegated shares. Power is sampled exactly once per cast vote; later
// balance changes never alter a recorded weight.
type PowerSource interface {
	VotingPower(principal common.Address) (*uint256.Int, error)
}

// Journal receives committed proposals for write-through persistence.
// Failures are logged, never surfaced; the engine is the source of truth.
type Journal interface {
	AppendProposal(p Proposal) error
	UpdateProposal(p Proposal) error
}

// Engine is the governance ledger.
type Engine struct {
	registry *roles.Registry
	gate     *pause.Gate
	power    PowerSource
	now      func() uint64

	mu        sync.RWMutex
	config    Config
	proposals []*Proposal
	journal   Journal

	createdFeed  event.FeedOf[ProposalCreated]
	voteFeed     event.FeedOf[VoteCast]
	executedFeed event.FeedOf[ProposalExecuted]
}

// NewEngine creates an engine with the given parameters. A nil config uses
// DefaultConfig, a nil clock wall time.
func NewEngine(cfg *Config, registry *roles.Registry, gate *pause.Gate, power PowerSource, now func() uint64) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Engine{
		registry: registry,
		gate:     gate,
		power:    power,
		now:      now,
		config: Config{
			VotingPeriod:   cfg.VotingPeriod,
			ExecutionDelay: cfg.ExecutionDelay,
			Quorum:         new(uint256.Int).Set(cfg.Quorum),
		},
	}
}

// AttachJournal wires a persistence sink. Intended to be called once during
// setup, before the engine starts taking writes.
func (e *Engine) AttachJournal(j Journal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.journal = j
}

// CreateProposal opens a new proposal for voting and returns its sequential
// id. Requires the Proposer capability and an unpaused system. The voting
// window and quorum are snapshotted from the current config.
func (e *Engine) CreateProposal(caller common.Address, title, description string) (uint64, error) {
	if err := e.gate.Check(); err != nil {
		return 0, err
	}
	if !e.registry.Has(roles.Proposer, caller) {
		return 0, roles.ErrUnauthorized
	}
	if title == "" {
		return 0, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return 0, ErrTitleTooLong
	}
	if description == "" {
		return 0, ErrEmptyDescription
	}

	e.mu.Lock()
	start := e.now()
	p := &Proposal{
		ID:           uint64(len(e.proposals)),
		Title:        title,
		Description:  description,
		Proposer:     caller,
		StartTime:    start,
		EndTime:      start + e.config.VotingPeriod,
		ExecuteAfter: start + e.config.VotingPeriod + e.config.ExecutionDelay,
		Quorum:       new(uint256.Int).Set(e.config.Quorum),
		ForVotes:     new(uint256.Int),
		AgainstVotes: new(uint256.Int),
		votes:        make(map[common.Address]VoteChoice),
	}
	e.proposals = append(e.proposals, p)
	journal := e.journal
	committed := copyProposal(p)
	e.mu.Unlock()

	if journal != nil {
		if err := journal.AppendProposal(committed); err != nil {
			log.Error("Failed to journal proposal", "proposal", committed.ID, "err", err)
		}
	}
	log.Info("Proposal created", "proposal", committed.ID, "proposer", caller, "ends", committed.EndTime)
	e.createdFeed.Send(ProposalCreated{
		ID:        committed.ID,
		Proposer:  caller,
		Title:     title,
		StartTime: committed.StartTime,
		EndTime:   committed.EndTime,
	})
	return committed.ID, nil
}

// CastVote tallies the caller's full voting power for or against a proposal.
// Any token holder with positive power may vote once; the choice is recorded
// so no later vote, for or against, is accepted from the same principal.
func (e *Engine) CastVote(caller common.Address, proposalID uint64, support bool) error {
	if err := e.gate.Check(); err != nil {
		return err
	}

	e.mu.Lock()
	if proposalID >= uint64(len(e.proposals)) {
		e.mu.Unlock()
		return ErrProposalNotFound
	}
	p := e.proposals[proposalID]
	if e.now() > p.EndTime {
		e.mu.Unlock()
		return ErrVotingClosed
	}
	if p.votes[caller] != VoteNone {
		e.mu.Unlock()
		return ErrAlreadyVoted
	}

	// Sample voting power exactly once, before any state changes.
	weight, err := e.power.VotingPower(caller)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrPowerSource, err)
	}
	if weight == nil || weight.IsZero() {
		e.mu.Unlock()
		return ErrNoVotingPower
	}

	if support {
		p.ForVotes.Add(p.ForVotes, weight)
		p.votes[caller] = VoteFor
	} else {
		p.AgainstVotes.Add(p.AgainstVotes, weight)
		p.votes[caller] = VoteAgainst
	}
	journal := e.journal
	committed := copyProposal(p)
	e.mu.Unlock()

	if journal != nil {
		if err := journal.UpdateProposal(committed); err != nil {
			log.Error("Failed to journal vote", "proposal", committed.ID, "err", err)
		}
	}
	log.Info("Vote cast", "proposal", committed.ID, "voter", caller, "support", support, "weight", weight)
	e.voteFeed.Send(VoteCast{
		ProposalID: committed.ID,
		Voter:      caller,
		Support:    support,
		Weight:     new(uint256.Int).Set(weight),
	})
	return nil
}

// ExecuteProposal finalizes a proposal after its window and execution delay
// have elapsed and quorum was reached. Execution happens exactly once; every
// later call fails. A tie fails the proposal since passing requires a strict
// majority of weight.
func (e *Engine) ExecuteProposal(caller common.Address, proposalID uint64) error {
	if err := e.gate.Check(); err != nil {
		return err
	}

	e.mu.Lock()
	if proposalID >= uint64(len(e.proposals)) {
		e.mu.Unlock()
		return ErrProposalNotFound
	}
	p := e.proposals[proposalID]
	if p.Executed {
		e.mu.Unlock()
		return ErrAlreadyExecuted
	}
	now := e.now()
	if now <= p.EndTime {
		e.mu.Unlock()
		return ErrVotingNotEnded
	}
	if now < p.ExecuteAfter {
		e.mu.Unlock()
		return ErrExecutionDelayNotMet
	}
	total := new(uint256.Int).Add(p.ForVotes, p.AgainstVotes)
	if total.Lt(p.Quorum) {
		e.mu.Unlock()
		return ErrQuorumNotReached
	}

	p.Executed = true
	p.Passed = p.ForVotes.Gt(p.AgainstVotes)
	journal := e.journal
	committed := copyProposal(p)
	e.mu.Unlock()

	if journal != nil {
		if err := journal.UpdateProposal(committed); err != nil {
			log.Error("Failed to journal execution", "proposal", committed.ID, "err", err)
		}
	}
	log.Info("Proposal executed", "proposal", committed.ID, "passed", committed.Passed,
		"for", committed.ForVotes, "against", committed.AgainstVotes, "executor", caller)
	e.executedFeed.Send(ProposalExecuted{
		ID:           committed.ID,
		Passed:       committed.Passed,
		ForVotes:     committed.ForVotes,
		AgainstVotes: committed.AgainstVotes,
	})
	return nil
}

// SetVotingPeriod updates the voting window for future proposals. Admin only.
func (e *Engine) SetVotingPeriod(caller common.Address, seconds uint64) error {
	if !e.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	if seconds == 0 {
		return ErrNonPositiveValue
	}
	e.mu.Lock()
	e.config.VotingPeriod = seconds
	e.mu.Unlock()
	log.Info("Voting period updated", "seconds", seconds, "by", caller)
	return nil
}

// SetExecutionDelay updates the execution delay for future proposals. Admin only.
func (e *Engine) SetExecutionDelay(caller common.Address, seconds uint64) error {
	if !e.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	if seconds == 0 {
		return ErrNonPositiveValue
	}
	e.mu.Lock()
	e.config.ExecutionDelay = seconds
	e.mu.Unlock()
	log.Info("Execution delay updated", "seconds", seconds, "by", caller)
	return nil
}

// SetQuorum updates the quorum for future proposals. Admin only.
func (e *Engine) SetQuorum(caller common.Address, quorum *uint256.Int) error {
	if !e.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	if quorum == nil || quorum.IsZero() {
		return ErrNonPositiveValue
	}
	e.mu.Lock()
	e.config.Quorum = new(uint256.Int).Set(quorum)
	e.mu.Unlock()
	log.Info("Quorum updated", "quorum", quorum, "by", caller)
	return nil
}

// Proposal returns a copy of the proposal with the given id. The vote arena
// is not shared; use VoteStatus for per-principal choices.
func (e *Engine) Proposal(proposalID uint64) (Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if proposalID >= uint64(len(e.proposals)) {
		return Proposal{}, ErrProposalNotFound
	}
	return copyProposal(e.proposals[proposalID]), nil
}

// VoteStatus returns the recorded choice of a principal on a proposal.
// A principal that never voted yields VoteNone.
func (e *Engine) VoteStatus(proposalID uint64, principal common.Address) (VoteChoice, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if proposalID >= uint64(len(e.proposals)) {
		return VoteNone, ErrProposalNotFound
	}
	return e.proposals[proposalID].votes[principal], nil
}

// ProposalCount returns the number of proposals ever created.
func (e *Engine) ProposalCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint64(len(e.proposals))
}

// ProposalState derives the lifecycle state of a proposal from the clock.
func (e *Engine) ProposalState(proposalID uint64) (State, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if proposalID >= uint64(len(e.proposals)) {
		return StatePending, ErrProposalNotFound
	}
	p := e.proposals[proposalID]
	switch {
	case p.Executed:
		return StateExecuted, nil
	case e.now() > p.EndTime:
		return StateClosed, nil
	default:
		return StatePending, nil
	}
}

// ActiveProposals returns copies of all proposals whose voting window is
// still open, in creation order.
func (e *Engine) ActiveProposals() []Proposal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	out := make([]Proposal, 0)
	for _, p := range e.proposals {
		if !p.Executed && now <= p.EndTime {
			out = append(out, copyProposal(p))
		}
	}
	return out
}

// Config returns a copy of the current engine parameters.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Config{
		VotingPeriod:   e.config.VotingPeriod,
		ExecutionDelay: e.config.ExecutionDelay,
		Quorum:         new(uint256.Int).Set(e.config.Quorum),
	}
}

// SubscribeCreated subscribes to ProposalCreated events.
func (e *Engine) SubscribeCreated(ch chan<- ProposalCreated) event.Subscription {
	return e.createdFeed.Subscribe(ch)
}

// SubscribeVotes subscribes to VoteCast events.
func (e *Engine) SubscribeVotes(ch chan<- VoteCast) event.Subscription {
	return e.voteFeed.Subscribe(ch)
}

// SubscribeExecuted subscribes to ProposalExecuted events.
func (e *Engine) SubscribeExecuted(ch chan<- ProposalExecuted) event.Subscription {
	return e.executedFeed.Subscribe(ch)
}
