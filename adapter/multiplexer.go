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
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// Multiplexer aggregates proposals across several bound adapters. Backend
// calls fan out concurrently and failures stay isolated per backend: one
// failing backend never drops the results of the others.
type Multiplexer struct {
	adapters []*Adapter
}

// NewMultiplexer aggregates the given adapters.
func NewMultiplexer(adapters ...*Adapter) *Multiplexer {
	return &Multiplexer{adapters: adapters}
}

// Proposals returns the union of proposals across all backends in adapter
// order, along with a map of per-backend errors for the backends that failed.
func (m *Multiplexer) Proposals(ctx context.Context) ([]CanonicalProposal, map[string]error) {
	results := make([][]CanonicalProposal, len(m.adapters))
	failures := make(map[string]error)
	var mu sync.Mutex

	var g errgroup.Group
	for i, a := range m.adapters {
		g.Go(func() error {
			proposals, err := a.Proposals(ctx)
			if err != nil {
				log.Warn("Backend proposal listing failed", "backend", a.Name(), "err", err)
				mu.Lock()
				failures[a.Name()] = err
				mu.Unlock()
				return nil // isolate the failure
			}
			results[i] = proposals
			return nil
		})
	}
	g.Wait()

	var out []CanonicalProposal
	for _, proposals := range results {
		out = append(out, proposals...)
	}
	return out, failures
}
