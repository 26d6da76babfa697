package search

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
)

// Result is a filtered view of a catalog page
type Result struct {
	Query  string        `json:"query"`
	State  State         `json:"state"`
	Total  int           `json:"total"`
	View   View          `json:"view"`
	Blocks []types.Block `json:"blocks"`
}

// ResultFunc receives recomputed results
type ResultFunc func(Result)

// Session is the interactive state of one catalog page. The raw search text
// updates immediately; filtering runs once per quiet period.
type Session struct {
	mu        sync.Mutex
	blocks    []types.Block
	search    string
	debounced string
	view      View
	closed    bool
	gen       uint64 // bumped per computed result

	debouncer *Debouncer
	onResult  ResultFunc
	delivery  sync.Mutex // orders onResult calls
}

// NewSession creates a session over the blocks a route has already narrowed to
func NewSession(blocks []types.Block, debounce time.Duration, onResult ResultFunc) *Session {
	return &Session{
		blocks:    blocks,
		view:      DefaultView(),
		debouncer: NewDebouncer(debounce),
		onResult:  onResult,
	}
}

// SetSearch records the raw query and schedules a debounced recompute
func (s *Session) SetSearch(q string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.search = q
	s.mu.Unlock()

	s.debouncer.Trigger(s.apply)
}

// SetView updates the display toggles. No filtering happens.
func (s *Session) SetView(mode string, columns int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ParseView(mode, columns)
	return s.view
}

// Search returns the raw query
func (s *Session) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Debounced returns the query filtering is based on
func (s *Session) Debounced() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounced
}

// View returns the display toggles
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Results filters the blocks with the debounced query
func (s *Session) Results() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked()
}

// Refresh delivers the current results, as after a view change
func (s *Session) Refresh() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen, result := s.gen, s.resultLocked()
	s.mu.Unlock()

	s.deliver(gen, result)
}

// Close stops any pending recompute
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.debouncer.Stop()
}

func (s *Session) apply() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.debounced = utils.NormalizeQuery(s.search)
	s.gen++
	gen, result := s.gen, s.resultLocked()
	s.mu.Unlock()

	s.deliver(gen, result)
}

// deliver hands a result to onResult unless a newer one has been computed
// since. Deliveries never overlap, so the last result delivered is always
// the newest.
func (s *Session) deliver(gen uint64, result Result) {
	if s.onResult == nil {
		return
	}

	s.delivery.Lock()
	defer s.delivery.Unlock()

	s.mu.Lock()
	stale := s.closed || gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	s.onResult(result)
}

func (s *Session) resultLocked() Result {
	filtered := Filter(s.blocks, s.debounced)
	return Result{
		Query:  s.debounced,
		State:  Outcome(len(s.blocks), len(filtered)),
		Total:  len(s.blocks),
		View:   s.view,
		Blocks: filtered,
	}
}
