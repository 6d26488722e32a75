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

// Package pause implements the process-wide mutation switch. Every mutating
// operation of the moderation and governance ledgers consults the gate before
// touching state, so flipping it blocks all writes atomically.
package pause

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/civitasnet/civitas/errkind"
	"github.com/civitasnet/civitas/roles"
)

var (
	ErrSystemPaused  = errkind.New(errkind.SystemPaused, "system is paused")
	ErrAlreadyPaused = errkind.New(errkind.Lifecycle, "system is already paused")
	ErrNotPaused     = errkind.New(errkind.Lifecycle, "system is not paused")
)

// Changed is emitted once per successful pause state transition.
type Changed struct {
	Paused bool
	By     common.Address
	Time   uint64
}

// Clock returns the current unix time. Tests substitute a fixed clock.
type Clock func() uint64

// Gate is the global pause switch, admin-toggled and read-mostly.
type Gate struct {
	registry *roles.Registry
	now      Clock

	mu     sync.RWMutex
	paused bool

	feed event.FeedOf[Changed]
}

// NewGate creates an unpaused gate. A nil clock uses wall time.
func NewGate(registry *roles.Registry, now Clock) *Gate {
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Gate{registry: registry, now: now}
}

// Pause blocks all mutating ledger operations. Admin only; pausing an
// already-paused gate is a lifecycle error.
func (g *Gate) Pause(caller common.Address) error {
	if !g.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	g.mu.Lock()
	if g.paused {
		g.mu.Unlock()
		return ErrAlreadyPaused
	}
	g.paused = true
	g.mu.Unlock()

	log.Warn("System paused", "by", caller)
	g.feed.Send(Changed{Paused: true, By: caller, Time: g.now()})
	return nil
}

// Unpause re-enables mutating ledger operations. Admin only.
func (g *Gate) Unpause(caller common.Address) error {
	if !g.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	g.mu.Lock()
	if !g.paused {
		g.mu.Unlock()
		return ErrNotPaused
	}
	g.paused = false
	g.mu.Unlock()

	log.Info("System unpaused", "by", caller)
	g.feed.Send(Changed{Paused: false, By: caller, Time: g.now()})
	return nil
}

// Paused reports the current gate state.
func (g *Gate) Paused() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused
}

// Check returns ErrSystemPaused when the gate is active. Mutating operations
// call it before any other precondition.
func (g *Gate) Check() error {
	if g.Paused() {
		return ErrSystemPaused
	}
	return nil
}

// SubscribeChanged subscribes to pause state transitions.
func (g *Gate) SubscribeChanged(ch chan<- Changed) event.Subscription {
	return g.feed.Subscribe(ch)
}
