package conversation

import (
	"sync"

	"github.com/example/hours-bot/internal/payroll"
)

// ActionKind discriminates what a pending action will do once confirmed.
// Only time entries exist today; the field leaves room for more.
type ActionKind string

// ActionTimeEntry commits a parsed shift to the timesheet on confirmation.
const ActionTimeEntry ActionKind = "time_entry"

// PendingAction is an unconfirmed, parsed request awaiting an explicit
// YES/NO from its sender.
type PendingAction struct {
	Sender   string
	Kind     ActionKind
	Shift    payroll.ShiftRecord
	Original string
}

// PendingStore tracks at most one unconfirmed action per sender. A newer Put
// for the same sender silently replaces the previous action. Take removes
// and returns the action in one step so read-then-resolve is atomic per
// sender.
type PendingStore interface {
	Put(sender string, action PendingAction)
	Take(sender string) (PendingAction, bool)
	Len() int
	Clear()
}

type memoryPendingStore struct {
	mu      sync.Mutex
	actions map[string]PendingAction
}

// NewPendingStore returns an in-memory PendingStore. Pending actions are not
// persisted across restarts; losing them only requires the user to resend.
func NewPendingStore() PendingStore {
	return &memoryPendingStore{actions: make(map[string]PendingAction)}
}

func (s *memoryPendingStore) Put(sender string, action PendingAction) {
	s.mu.Lock()
	s.actions[sender] = action
	s.mu.Unlock()
}

func (s *memoryPendingStore) Take(sender string) (PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	action, ok := s.actions[sender]
	if ok {
		delete(s.actions, sender)
	}
	return action, ok
}

func (s *memoryPendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

func (s *memoryPendingStore) Clear() {
	s.mu.Lock()
	s.actions = make(map[string]PendingAction)
	s.mu.Unlock()
}
