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

// Package roles implements the capability registry gating every mutating
// ledger operation. Capabilities are additive, grantable and revocable only
// by an Admin, and checked by an explicit set lookup rather than any
// inheritance scheme.
package roles

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/civitasnet/civitas/errkind"
)

// Capability is a named permission held by a principal.
type Capability uint8

const (
	Admin     Capability = 0x01 // grant/revoke roles, overrule, pause, config
	Moderator Capability = 0x02 // create moderation records
	Proposer  Capability = 0x03 // create governance proposals
)

// String implements fmt.Stringer.
func (c Capability) String() string {
	switch c {
	case Admin:
		return "admin"
	case Moderator:
		return "moderator"
	case Proposer:
		return "proposer"
	default:
		return "unknown"
	}
}

var (
	ErrUnauthorized      = errkind.New(errkind.Authorization, "caller lacks required capability")
	ErrUnknownCapability = errkind.New(errkind.Validation, "unknown capability")
)

// Registry maps each capability to the set of principals holding it. The
// per-capability sets are threadsafe and the capability universe is fixed at
// construction, so the registry needs no additional locking.
type Registry struct {
	holders map[Capability]mapset.Set[common.Address]
}

// NewRegistry creates a registry with deployer holding Admin and Proposer.
func NewRegistry(deployer common.Address) *Registry {
	r := &Registry{
		holders: map[Capability]mapset.Set[common.Address]{
			Admin:     mapset.NewSet[common.Address](),
			Moderator: mapset.NewSet[common.Address](),
			Proposer:  mapset.NewSet[common.Address](),
		},
	}
	r.holders[Admin].Add(deployer)
	r.holders[Proposer].Add(deployer)
	return r
}

// Grant gives principal the capability. Only an Admin may grant. Granting an
// already-held capability is a no-op.
func (r *Registry) Grant(caller common.Address, cap Capability, principal common.Address) error {
	set, ok := r.holders[cap]
	if !ok {
		return ErrUnknownCapability
	}
	if !r.Has(Admin, caller) {
		return ErrUnauthorized
	}
	if set.Add(principal) {
		log.Debug("Capability granted", "capability", cap, "principal", principal, "by", caller)
	}
	return nil
}

// Revoke removes the capability from principal. Only an Admin may revoke.
// Revoking a capability the principal does not hold is a no-op.
func (r *Registry) Revoke(caller common.Address, cap Capability, principal common.Address) error {
	set, ok := r.holders[cap]
	if !ok {
		return ErrUnknownCapability
	}
	if !r.Has(Admin, caller) {
		return ErrUnauthorized
	}
	if set.Contains(principal) {
		set.Remove(principal)
		log.Debug("Capability revoked", "capability", cap, "principal", principal, "by", caller)
	}
	return nil
}

// Has reports whether principal holds the capability. Pure query, never fails;
// an unknown capability is simply not held.
func (r *Registry) Has(cap Capability, principal common.Address) bool {
	set, ok := r.holders[cap]
	if !ok {
		return false
	}
	return set.Contains(principal)
}

// Holders returns a snapshot of the principals holding the capability.
func (r *Registry) Holders(cap Capability) []common.Address {
	set, ok := r.holders[cap]
	if !ok {
		return nil
	}
	return set.ToSlice()
}
