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

// Package storage persists committed ledger state in a local leveldb
// database. The Store implements the moderation and governance journal
// interfaces; entries are written through after each committed transition and
// read back for inspection tooling and restarts.
package storage

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/civitasnet/civitas/errkind"
	"github.com/civitasnet/civitas/governance"
	"github.com/civitasnet/civitas/moderation"
)

var (
	// Key prefixes. Entry keys are prefix + 8-byte big-endian id, so
	// iteration within a prefix yields entries in id order.
	recordPrefix   = []byte("mr")
	proposalPrefix = []byte("gp")
	schemaKey      = []byte("meta:schema")
)

// schemaVersion guards the on-disk layout. A database written by an
// incompatible release is rejected at open rather than misread.
const schemaVersion = uint64(1)

var (
	ErrNotFound       = errkind.New(errkind.NotFound, "storage: entry not found")
	ErrSchemaMismatch = errkind.New(errkind.Internal, "storage: incompatible schema version")
)

// Store is a leveldb-backed journal for moderation records and governance
// proposals. All methods are safe for concurrent use; leveldb serializes
// writes internally.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database under dir. A corrupted manifest is
// recovered in place before giving up.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if errors.IsCorrupted(err) {
		log.Warn("Journal database corrupted, attempting recovery", "dir", dir)
		db, err = leveldb.RecoverFile(dir, nil)
	}
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewMemStore opens an in-memory store, used in tests and for ephemeral runs.
func NewMemStore() (*Store, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) checkSchema() error {
	raw, err := s.db.Get(schemaKey, nil)
	if err == leveldb.ErrNotFound {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, schemaVersion)
		return s.db.Put(schemaKey, buf, nil)
	}
	if err != nil {
		return err
	}
	if len(raw) != 8 || binary.BigEndian.Uint64(raw) != schemaVersion {
		return ErrSchemaMismatch
	}
	return nil
}

// AppendRecord implements moderation.Journal.
func (s *Store) AppendRecord(rec moderation.Record) error {
	return s.putRecord(rec)
}

// UpdateRecord implements moderation.Journal.
func (s *Store) UpdateRecord(rec moderation.Record) error {
	return s.putRecord(rec)
}

func (s *Store) putRecord(rec moderation.Record) error {
	encoded, err := rlp.EncodeToBytes(toStoredRecord(rec))
	if err != nil {
		return err
	}
	return s.db.Put(entryKey(recordPrefix, rec.ID), encoded, nil)
}

// Record loads one moderation record by id.
func (s *Store) Record(id uint64) (moderation.Record, error) {
	raw, err := s.db.Get(entryKey(recordPrefix, id), nil)
	if err == leveldb.ErrNotFound {
		return moderation.Record{}, ErrNotFound
	}
	if err != nil {
		return moderation.Record{}, err
	}
	var data storedRecord
	if err := rlp.DecodeBytes(raw, &data); err != nil {
		return moderation.Record{}, err
	}
	return data.toRecord(), nil
}

// Records loads all moderation records in id order.
func (s *Store) Records() ([]moderation.Record, error) {
	var out []moderation.Record
	iter := s.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	defer iter.Release()
	for iter.Next() {
		var data storedRecord
		if err := rlp.DecodeBytes(iter.Value(), &data); err != nil {
			return nil, err
		}
		out = append(out, data.toRecord())
	}
	return out, iter.Error()
}

// AppendProposal implements governance.Journal.
func (s *Store) AppendProposal(p governance.Proposal) error {
	return s.putProposal(p)
}

// UpdateProposal implements governance.Journal.
func (s *Store) UpdateProposal(p governance.Proposal) error {
	return s.putProposal(p)
}

func (s *Store) putProposal(p governance.Proposal) error {
	encoded, err := rlp.EncodeToBytes(toStoredProposal(p))
	if err != nil {
		return err
	}
	return s.db.Put(entryKey(proposalPrefix, p.ID), encoded, nil)
}

// Proposal loads one governance proposal by id.
func (s *Store) Proposal(id uint64) (governance.Proposal, error) {
	raw, err := s.db.Get(entryKey(proposalPrefix, id), nil)
	if err == leveldb.ErrNotFound {
		return governance.Proposal{}, ErrNotFound
	}
	if err != nil {
		return governance.Proposal{}, err
	}
	var data storedProposal
	if err := rlp.DecodeBytes(raw, &data); err != nil {
		return governance.Proposal{}, err
	}
	return data.toProposal(), nil
}

// Proposals loads all governance proposals in id order.
func (s *Store) Proposals() ([]governance.Proposal, error) {
	var out []governance.Proposal
	iter := s.db.NewIterator(util.BytesPrefix(proposalPrefix), nil)
	defer iter.Release()
	for iter.Next() {
		var data storedProposal
		if err := rlp.DecodeBytes(iter.Value(), &data); err != nil {
			return nil, err
		}
		out = append(out, data.toProposal())
	}
	return out, iter.Error()
}

func entryKey(prefix []byte, id uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], id)
	return key
}

// Storage data structures for RLP encoding.

type storedRecord struct {
	ID          uint64
	ContentID   string
	ContentHash string
	Flagged     bool
	Categories  []string
	Confidence  uint16
	Moderator   common.Address
	CreatedAt   uint64
	Overruled   bool
	Reason      string
	OverruledBy common.Address
	OverruledAt uint64
}

func toStoredRecord(rec moderation.Record) *storedRecord {
	return &storedRecord{
		ID:          rec.ID,
		ContentID:   rec.ContentID,
		ContentHash: rec.ContentHash,
		Flagged:     rec.Flagged,
		Categories:  rec.Categories,
		Confidence:  rec.Confidence,
		Moderator:   rec.Moderator,
		CreatedAt:   rec.CreatedAt,
		Overruled:   rec.Overruled,
		Reason:      rec.Reason,
		OverruledBy: rec.OverruledBy,
		OverruledAt: rec.OverruledAt,
	}
}

func (d *storedRecord) toRecord() moderation.Record {
	return moderation.Record{
		ID:          d.ID,
		ContentID:   d.ContentID,
		ContentHash: d.ContentHash,
		Flagged:     d.Flagged,
		Categories:  d.Categories,
		Confidence:  d.Confidence,
		Moderator:   d.Moderator,
		CreatedAt:   d.CreatedAt,
		Overruled:   d.Overruled,
		Reason:      d.Reason,
		OverruledBy: d.OverruledBy,
		OverruledAt: d.OverruledAt,
	}
}

type storedProposal struct {
	ID           uint64
	Title        string
	Description  string
	Proposer     common.Address
	StartTime    uint64
	EndTime      uint64
	ExecuteAfter uint64
	Quorum       []byte
	ForVotes     []byte
	AgainstVotes []byte
	Executed     bool
	Passed       bool
}

func toStoredProposal(p governance.Proposal) *storedProposal {
	return &storedProposal{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Proposer:     p.Proposer,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		ExecuteAfter: p.ExecuteAfter,
		Quorum:       p.Quorum.Bytes(),
		ForVotes:     p.ForVotes.Bytes(),
		AgainstVotes: p.AgainstVotes.Bytes(),
		Executed:     p.Executed,
		Passed:       p.Passed,
	}
}

func (d *storedProposal) toProposal() governance.Proposal {
	return governance.Proposal{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Proposer:     d.Proposer,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		ExecuteAfter: d.ExecuteAfter,
		Quorum:       new(uint256.Int).SetBytes(d.Quorum),
		ForVotes:     new(uint256.Int).SetBytes(d.ForVotes),
		AgainstVotes: new(uint256.Int).SetBytes(d.AgainstVotes),
		Executed:     d.Executed,
		Passed:       d.Passed,
	}
}
