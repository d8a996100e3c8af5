package view

import "sync"

// Phase is the lifecycle of one widget's dataset.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseLoaded   Phase = "loaded"
	PhaseFiltered Phase = "filtered"
	PhaseError    Phase = "error"
)

// Snapshot is a point-in-time copy of a widget's state, safe to render
// while the next fetch is in flight.
type Snapshot[T any] struct {
	Phase   Phase
	Records []T
	Err     error
}

// State tracks one widget's dataset across overlapping refreshes. Every
// fetch obtains a generation token from Begin; a completion carrying a
// stale token is discarded, so a slow old fetch can never overwrite the
// result of a newer one.
type State[T any] struct {
	mu      sync.Mutex
	gen     uint64
	phase   Phase
	records []T
	err     error
}

// NewState returns a state in the loading phase.
func NewState[T any]() *State[T] {
	return &State[T]{phase: PhaseLoading}
}

// Begin marks a new fetch and returns its generation token. Any fetch
// started earlier is implicitly abandoned.
func (s *State[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.phase = PhaseLoading
	return s.gen
}

// Complete installs a fetch's records. A stale generation is discarded
// and Complete reports whether the records were accepted.
func (s *State[T]) Complete(gen uint64, records []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.phase = PhaseLoaded
	s.records = records
	s.err = nil
	return true
}

// Fail records a fetch failure, keeping any previously loaded records
// so the page can show stale data alongside the error.
func (s *State[T]) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.phase = PhaseError
	s.err = err
	return true
}

// MarkFiltered notes that the loaded dataset has had view filters
// applied. It is a no-op unless the state is loaded.
func (s *State[T]) MarkFiltered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseLoaded || s.phase == PhaseFiltered {
		s.phase = PhaseFiltered
	}
}

// Snapshot returns a copy of the current phase, records and error.
func (s *State[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]T, len(s.records))
	copy(records, s.records)
	return Snapshot[T]{Phase: s.phase, Records: records, Err: s.err}
}
