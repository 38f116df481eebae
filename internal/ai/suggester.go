package ai

import (
	"context"
	"errors"
	"sync"

	"gis-kpi-tracker/internal/models"
)

// ErrStale marks a suggestion response that arrived after a newer request
// for a different role selection was already issued. Callers drop it.
var ErrStale = errors.New("ai: stale suggestion response")

type SuggestFunc func(ctx context.Context, role models.Role) ([]string, error)

// Suggester serializes KPI-suggestion requests with last-request-wins
// semantics: every call takes a fresh sequence number, and a completion
// whose number is no longer the latest is discarded. This is the guard
// against the role-changed-mid-flight race.
//
// Sequences are tracked per owner: one user's intake form can never
// invalidate another's in-flight request.
type Suggester struct {
	mu      sync.Mutex
	seqs    map[uint]uint64
	suggest SuggestFunc
}

func NewSuggester(fn SuggestFunc) *Suggester {
	return &Suggester{
		seqs:    make(map[uint]uint64),
		suggest: fn,
	}
}

// Request fetches suggestions for role. Returns ErrStale if the same owner
// issued another Request while this one was in flight.
func (s *Suggester) Request(ctx context.Context, ownerID uint, role models.Role) ([]string, uint64, error) {
	s.mu.Lock()
	s.seqs[ownerID]++
	seq := s.seqs[ownerID]
	s.mu.Unlock()

	out, err := s.suggest(ctx, role)

	s.mu.Lock()
	latest := s.seqs[ownerID]
	s.mu.Unlock()

	if seq != latest {
		return nil, seq, ErrStale
	}
	if err != nil {
		return nil, seq, err
	}
	return out, seq, nil
}

// Latest reports the owner's most recently issued sequence number.
func (s *Suggester) Latest(ownerID uint) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[ownerID]
}
