package domain

import "sync"

// ErrorInfo describes a failed lookup in user-facing terms.
type ErrorInfo struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	Resolution   string `json:"resolution"`
	SearchedWord string `json:"searchedWord,omitempty"`
}

// Ticket identifies one issued lookup. Tickets grow monotonically per State.
type Ticket uint64

// Snapshot is an immutable view of a State. Exactly one of Word and Error is
// non-nil when Status is success or error; both are nil otherwise.
type Snapshot struct {
	Status Status
	Word   *WordEntry
	Error  *ErrorInfo
}

// State is the lookup state owned by one controller (one visitor).
// The zero value is not usable; use NewState.
type State struct {
	mu     sync.Mutex
	status Status
	word   *WordEntry
	err    *ErrorInfo
	issued Ticket
}

// NewState returns a State in the idle status.
func NewState() *State {
	return &State{status: StatusIdle}
}

// SetLoading moves to loading and clears word and error.
func (s *State) SetLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLoadingLocked()
}

// SetSuccess stores the entry and clears any error.
func (s *State) SetSuccess(entry WordEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSuccessLocked(entry)
}

// SetError stores the error info and clears any word.
func (s *State) SetError(info ErrorInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErrorLocked(info)
}

// Begin moves to loading and issues a new ticket. Only the most recently
// issued ticket may settle the state.
func (s *State) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.setLoadingLocked()
	return s.issued
}

// SettleSuccess applies SetSuccess if t is still the latest ticket.
// It reports whether the state was updated.
func (s *State) SettleSuccess(t Ticket, entry WordEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	s.setSuccessLocked(entry)
	return true
}

// SettleError applies SetError if t is still the latest ticket.
// It reports whether the state was updated.
func (s *State) SettleError(t Ticket, info ErrorInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	s.setErrorLocked(info)
	return true
}

// Status returns the current status.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot returns a copy safe to hand to renderers.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Status: s.status}
	if s.word != nil {
		w := *s.word
		snap.Word = &w
	}
	if s.err != nil {
		e := *s.err
		snap.Error = &e
	}
	return snap
}

func (s *State) setLoadingLocked() {
	s.status = StatusLoading
	s.word = nil
	s.err = nil
}

func (s *State) setSuccessLocked(entry WordEntry) {
	s.status = StatusSuccess
	s.word = &entry
	s.err = nil
}

func (s *State) setErrorLocked(info ErrorInfo) {
	s.status = StatusError
	s.word = nil
	s.err = &info
}
