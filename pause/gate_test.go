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

package pause

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/civitasnet/civitas/errkind"
	"github.com/civitasnet/civitas/roles"
)

func newTestGate() (*Gate, common.Address) {
	admin := common.HexToAddress("0x1")
	registry := roles.NewRegistry(admin)
	return NewGate(registry, func() uint64 { return 1000 }), admin
}

func TestPauseUnpause(t *testing.T) {
	gate, admin := newTestGate()

	if gate.Paused() {
		t.Fatal("gate must start unpaused")
	}
	if err := gate.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := gate.Pause(admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gate.Paused() {
		t.Error("gate should be paused")
	}
	if err := gate.Check(); err != ErrSystemPaused {
		t.Errorf("expected error %v, got %v", ErrSystemPaused, err)
	}
	if errkind.Of(gate.Check()) != errkind.SystemPaused {
		t.Error("check error should classify as system paused")
	}

	if err := gate.Unpause(admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate.Paused() {
		t.Error("gate should be unpaused")
	}
}

func TestPause_Lifecycle(t *testing.T) {
	gate, admin := newTestGate()

	if err := gate.Unpause(admin); err != ErrNotPaused {
		t.Errorf("expected error %v, got %v", ErrNotPaused, err)
	}

	if err := gate.Pause(admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gate.Pause(admin); err != ErrAlreadyPaused {
		t.Errorf("expected error %v, got %v", ErrAlreadyPaused, err)
	}
}

func TestPause_Unauthorized(t *testing.T) {
	gate, _ := newTestGate()
	outsider := common.HexToAddress("0x9")

	if err := gate.Pause(outsider); err != roles.ErrUnauthorized {
		t.Errorf("expected error %v, got %v", roles.ErrUnauthorized, err)
	}
	if gate.Paused() {
		t.Error("gate must not be paused on failure")
	}
}

func TestSubscribeChanged(t *testing.T) {
	gate, admin := newTestGate()

	ch := make(chan Changed, 1)
	sub := gate.SubscribeChanged(ch)
	defer sub.Unsubscribe()

	if err := gate.Pause(admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := <-ch
	if !ev.Paused || ev.By != admin || ev.Time != 1000 {
		t.Errorf("unexpected event: %+v", ev)
	}
}
