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

package storage

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civitasnet/civitas/errkind"
	"github.com/civitasnet/civitas/governance"
	"github.com/civitasnet/civitas/moderation"
	"github.com/civitasnet/civitas/pause"
	"github.com/civitasnet/civitas/roles"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := moderation.Record{
		ID:          3,
		ContentID:   "post-77",
		ContentHash: "0xdeadbeef",
		Flagged:     true,
		Categories:  []string{"spam", "scam"},
		Confidence:  870,
		Moderator:   common.HexToAddress("0x2"),
		CreatedAt:   1700000000,
		Reason:      "bulk advertising",
	}
	require.NoError(t, store.AppendRecord(rec))

	got, err := store.Record(3)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// An overrule overwrites the same key.
	rec.Overruled = true
	rec.Reason = "appeal accepted"
	rec.OverruledBy = common.HexToAddress("0x1")
	rec.OverruledAt = 1700000100
	require.NoError(t, store.UpdateRecord(rec))

	got, err = store.Record(3)
	require.NoError(t, err)
	assert.True(t, got.Overruled)
	assert.Equal(t, "appeal accepted", got.Reason)
}

func TestStore_RecordsOrderedByID(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []uint64{2, 0, 300, 1} {
		require.NoError(t, store.AppendRecord(moderation.Record{ID: id, ContentID: "c", ContentHash: "h"}))
	}

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i, want := range []uint64{0, 1, 2, 300} {
		assert.Equal(t, want, records[i].ID)
	}
}

func TestStore_ProposalRoundTrip(t *testing.T) {
	store := newTestStore(t)

	p := governance.Proposal{
		ID:           1,
		Title:        "raise quorum",
		Description:  "details",
		Proposer:     common.HexToAddress("0x3"),
		StartTime:    100,
		EndTime:      200,
		ExecuteAfter: 260,
		Quorum:       uint256.NewInt(10),
		ForVotes:     uint256.NewInt(250),
		AgainstVotes: new(uint256.Int),
		Executed:     true,
		Passed:       true,
	}
	require.NoError(t, store.AppendProposal(p))

	got, err := store.Proposal(1)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.True(t, got.AgainstVotes.IsZero())

	proposals, err := store.Proposals()
	require.NoError(t, err)
	require.Len(t, proposals, 1)
}

func TestStore_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Record(9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, errkind.NotFound, errkind.Of(err))

	_, err = store.Proposal(9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.AppendRecord(moderation.Record{ID: 0, ContentID: "c", ContentHash: "h"}))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].ContentID)
}

// TestStore_AsLedgerJournal wires the store under a live ledger and checks
// committed transitions land on disk.
func TestStore_AsLedgerJournal(t *testing.T) {
	store := newTestStore(t)

	admin := common.HexToAddress("0x1")
	moderator := common.HexToAddress("0x2")
	registry := roles.NewRegistry(admin)
	require.NoError(t, registry.Grant(admin, roles.Moderator, moderator))

	clock := uint64(50)
	gate := pause.NewGate(registry, func() uint64 { return clock })
	ledger := moderation.NewLedger(registry, gate, func() uint64 { return clock })
	ledger.AttachJournal(store)

	id, err := ledger.AddRecord(moderator, "post-1", "0xabc", true, []string{"spam"}, 900, "spam wave")
	require.NoError(t, err)

	journaled, err := store.Record(id)
	require.NoError(t, err)
	assert.Equal(t, "post-1", journaled.ContentID)
	assert.False(t, journaled.Overruled)

	require.NoError(t, ledger.Overrule(admin, id, "appeal accepted"))

	journaled, err = store.Record(id)
	require.NoError(t, err)
	assert.True(t, journaled.Overruled)
	assert.Equal(t, admin, journaled.OverruledBy)
}
