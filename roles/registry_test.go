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

package roles

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/civitasnet/civitas/errkind"
)

func TestNewRegistry_DeployerRoles(t *testing.T) {
	deployer := common.HexToAddress("0x1")
	r := NewRegistry(deployer)

	if !r.Has(Admin, deployer) {
		t.Error("deployer should hold admin")
	}
	if !r.Has(Proposer, deployer) {
		t.Error("deployer should hold proposer")
	}
	if r.Has(Moderator, deployer) {
		t.Error("deployer should not hold moderator by default")
	}
}

func TestGrantRevoke(t *testing.T) {
	deployer := common.HexToAddress("0x1")
	mod := common.HexToAddress("0x2")
	r := NewRegistry(deployer)

	if err := r.Grant(deployer, Moderator, mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Has(Moderator, mod) {
		t.Error("moderator capability not granted")
	}

	// Granting again is a no-op, not an error.
	if err := r.Grant(deployer, Moderator, mod); err != nil {
		t.Fatalf("idempotent grant failed: %v", err)
	}

	if err := r.Revoke(deployer, Moderator, mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Has(Moderator, mod) {
		t.Error("moderator capability not revoked")
	}

	// Revoking a capability not held is a no-op.
	if err := r.Revoke(deployer, Moderator, mod); err != nil {
		t.Fatalf("idempotent revoke failed: %v", err)
	}
}

func TestGrant_Unauthorized(t *testing.T) {
	deployer := common.HexToAddress("0x1")
	outsider := common.HexToAddress("0x9")
	r := NewRegistry(deployer)

	err := r.Grant(outsider, Moderator, outsider)
	if err != ErrUnauthorized {
		t.Errorf("expected error %v, got %v", ErrUnauthorized, err)
	}
	if errkind.Of(err) != errkind.Authorization {
		t.Errorf("expected authorization kind, got %v", errkind.Of(err))
	}
	if r.Has(Moderator, outsider) {
		t.Error("capability must not be granted on failure")
	}

	if err := r.Revoke(outsider, Proposer, deployer); err != ErrUnauthorized {
		t.Errorf("expected error %v, got %v", ErrUnauthorized, err)
	}
	if !r.Has(Proposer, deployer) {
		t.Error("capability must not be revoked on failure")
	}
}

func TestUnknownCapability(t *testing.T) {
	deployer := common.HexToAddress("0x1")
	r := NewRegistry(deployer)

	if err := r.Grant(deployer, Capability(0x7f), deployer); err != ErrUnknownCapability {
		t.Errorf("expected error %v, got %v", ErrUnknownCapability, err)
	}
	if r.Has(Capability(0x7f), deployer) {
		t.Error("unknown capability must never be held")
	}
	if r.Holders(Capability(0x7f)) != nil {
		t.Error("unknown capability has no holders")
	}
}

func TestHolders(t *testing.T) {
	deployer := common.HexToAddress("0x1")
	mod := common.HexToAddress("0x2")
	r := NewRegistry(deployer)

	if err := r.Grant(deployer, Moderator, mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	holders := r.Holders(Moderator)
	if len(holders) != 1 || holders[0] != mod {
		t.Errorf("expected [%v], got %v", mod, holders)
	}
}
