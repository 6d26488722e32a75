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

package moderation

import "github.com/ethereum/go-ethereum/common"

// MaxConfidence is the upper bound of the fixed-point confidence score.
// Scores are integers in [0, 1000] representing a 0.0-1.0 probability; the
// integer domain is kept deliberately so the ledger stays deterministic.
const MaxConfidence = 1000

// Record is a single immutable moderation decision. One content id may
// accumulate many records over time; each keeps its own flag, categories and
// score. The only mutation a record ever sees is a one-shot admin overrule.
type Record struct {
	ID          uint64         // sequential, assigned by the ledger
	ContentID   string         // external content identifier
	ContentHash string         // content-addressed hash of the moderated payload
	Flagged     bool           // classifier verdict
	Categories  []string       // violation categories, insertion order kept
	Confidence  uint16         // fixed-point score, 0..MaxConfidence
	Moderator   common.Address // principal that created the record
	CreatedAt   uint64         // unix time at creation
	Overruled   bool
	Reason      string         // moderation reason; replaced on overrule
	OverruledBy common.Address // zero until overruled
	OverruledAt uint64         // zero until overruled
}

// copyRecord returns a deep copy so callers never alias ledger state.
func copyRecord(r *Record) Record {
	out := *r
	out.Categories = append([]string(nil), r.Categories...)
	return out
}

// ContentModerated is emitted once per committed AddRecord.
type ContentModerated struct {
	RecordID  uint64
	ContentID string
	Flagged   bool
	Moderator common.Address
	Time      uint64
}

// ModerationOverruled is emitted once per committed Overrule.
type ModerationOverruled struct {
	RecordID uint64
	Admin    common.Address
	Reason   string
	Time     uint64
}
