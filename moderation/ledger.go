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

// Package moderation implements the append-only ledger of content moderation
// decisions. Records are created by moderators, indexed per content id, and
// never deleted; the single permitted mutation is a one-shot admin overrule.
package moderation

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/civitasnet/civitas/pause"
	"github.com/civitasnet/civitas/roles"
)

// Journal receives committed records for write-through persistence. Journal
// failures are logged, never surfaced: the in-memory ledger is the source of
// truth and a transition that committed must stay committed.
type Journal interface {
	AppendRecord(rec Record) error
	UpdateRecord(rec Record) error
}

// Ledger is the moderation decision log. Every mutating operation validates
// all preconditions before touching state, so a failed call leaves the ledger
// byte-for-byte unchanged and emits no event.
type Ledger struct {
	registry *roles.Registry
	gate     *pause.Gate
	now      func() uint64

	mu        sync.RWMutex
	records   []*Record
	byContent map[string][]uint64
	journal   Journal

	moderatedFeed event.FeedOf[ContentModerated]
	overruledFeed event.FeedOf[ModerationOverruled]
}

// NewLedger creates an empty ledger. A nil clock uses wall time.
func NewLedger(registry *roles.Registry, gate *pause.Gate, now func() uint64) *Ledger {
	if now == nil {
		now = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Ledger{
		registry:  registry,
		gate:      gate,
		now:       now,
		byContent: make(map[string][]uint64),
	}
}

// AttachJournal wires a persistence sink. Intended to be called once during
// setup, before the ledger starts taking writes.
func (l *Ledger) AttachJournal(j Journal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = j
}

// AddRecord appends a moderation decision and returns its sequential id.
// Requires the Moderator capability and an unpaused system. Duplicate
// categories are dropped, first occurrence wins.
func (l *Ledger) AddRecord(caller common.Address, contentID, contentHash string, flagged bool, categories []string, confidence uint16, reason string) (uint64, error) {
	if err := l.gate.Check(); err != nil {
		return 0, err
	}
	if !l.registry.Has(roles.Moderator, caller) {
		return 0, roles.ErrUnauthorized
	}
	if contentID == "" {
		return 0, ErrEmptyContentID
	}
	if contentHash == "" {
		return 0, ErrEmptyContentHash
	}
	if confidence > MaxConfidence {
		return 0, ErrConfidenceRange
	}

	l.mu.Lock()
	rec := &Record{
		ID:          uint64(len(l.records)),
		ContentID:   contentID,
		ContentHash: contentHash,
		Flagged:     flagged,
		Categories:  dedupeCategories(categories),
		Confidence:  confidence,
		Moderator:   caller,
		CreatedAt:   l.now(),
		Reason:      reason,
	}
	l.records = append(l.records, rec)
	l.byContent[contentID] = append(l.byContent[contentID], rec.ID)
	journal := l.journal
	committed := copyRecord(rec)
	l.mu.Unlock()

	if journal != nil {
		if err := journal.AppendRecord(committed); err != nil {
			log.Error("Failed to journal moderation record", "record", committed.ID, "err", err)
		}
	}
	log.Info("Content moderated", "record", committed.ID, "content", contentID, "flagged", flagged, "moderator", caller)
	l.moderatedFeed.Send(ContentModerated{
		RecordID:  committed.ID,
		ContentID: contentID,
		Flagged:   flagged,
		Moderator: caller,
		Time:      committed.CreatedAt,
	})
	return committed.ID, nil
}

// Overrule flips a record's overruled flag and replaces its reason. Admin
// only, strictly one-shot: a second overrule of the same record always fails.
func (l *Ledger) Overrule(caller common.Address, recordID uint64, reason string) error {
	if err := l.gate.Check(); err != nil {
		return err
	}
	if !l.registry.Has(roles.Admin, caller) {
		return roles.ErrUnauthorized
	}
	if reason == "" {
		return ErrEmptyReason
	}

	l.mu.Lock()
	if recordID >= uint64(len(l.records)) {
		l.mu.Unlock()
		return ErrRecordNotFound
	}
	rec := l.records[recordID]
	if rec.Overruled {
		l.mu.Unlock()
		return ErrAlreadyOverruled
	}
	rec.Overruled = true
	rec.Reason = reason
	rec.OverruledBy = caller
	rec.OverruledAt = l.now()
	journal := l.journal
	committed := copyRecord(rec)
	l.mu.Unlock()

	if journal != nil {
		if err := journal.UpdateRecord(committed); err != nil {
			log.Error("Failed to journal overrule", "record", committed.ID, "err", err)
		}
	}
	log.Info("Moderation overruled", "record", committed.ID, "admin", caller)
	l.overruledFeed.Send(ModerationOverruled{
		RecordID: committed.ID,
		Admin:    caller,
		Reason:   reason,
		Time:     committed.OverruledAt,
	})
	return nil
}

// Record returns a copy of the record with the given id.
func (l *Ledger) Record(recordID uint64) (Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if recordID >= uint64(len(l.records)) {
		return Record{}, ErrRecordNotFound
	}
	return copyRecord(l.records[recordID]), nil
}

// RecordsForContent returns copies of all records for a content id in
// insertion order. A content id with no history yields an empty slice.
func (l *Ledger) RecordsForContent(contentID string) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byContent[contentID]
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyRecord(l.records[id]))
	}
	return out
}

// TotalRecords returns the number of records ever created.
func (l *Ledger) TotalRecords() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.records))
}

// SubscribeModerated subscribes to ContentModerated events.
func (l *Ledger) SubscribeModerated(ch chan<- ContentModerated) event.Subscription {
	return l.moderatedFeed.Subscribe(ch)
}

// SubscribeOverruled subscribes to ModerationOverruled events.
func (l *Ledger) SubscribeOverruled(ch chan<- ModerationOverruled) event.Subscription {
	return l.overruledFeed.Subscribe(ch)
}

func dedupeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
