package presence

import (
	"fmt"
	"sync"
	"time"
)

// Scope separates server presence from voice presence. Both are keyed by member ID.
type Scope int

const (
	ScopeServer Scope = iota
	ScopeVoice
)

func (s Scope) String() string {
	switch s {
	case ScopeServer:
		return "server"
	case ScopeVoice:
		return "voice"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// JoinRecord is the time a member entered a scope
type JoinRecord struct {
	MemberID string
	JoinedAt time.Time
}

// Elapsed is a stay duration as shown to users: whole hours plus the remaining minutes.
type Elapsed struct {
	Hours   int
	Minutes int
}

// ElapsedBetween computes hours = floor(ms/3600000) and minutes = floor(ms/60000) mod 60.
func ElapsedBetween(from, to time.Time) Elapsed {
	diff := to.Sub(from).Milliseconds()
	if diff < 0 {
		diff = 0
	}
	return Elapsed{
		Hours:   int(diff / 3_600_000),
		Minutes: int((diff / 60_000) % 60),
	}
}

// Tracker keeps join times in memory. Records are lost on restart.
type Tracker struct {
	mu      sync.Mutex
	records map[Scope]map[string]time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		records: map[Scope]map[string]time.Time{
			ScopeServer: {},
			ScopeVoice:  {},
		},
	}
}

// RecordJoin inserts or overwrites the join time for memberID in scope.
func (t *Tracker) RecordJoin(scope Scope, memberID string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scope(scope)[memberID] = at
}

// TakeLeave removes the record and returns the elapsed time. ok is false when
// there was no record, e.g. the member joined before the bot started.
func (t *Tracker) TakeLeave(scope Scope, memberID string, now time.Time) (Elapsed, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.scope(scope)
	joinedAt, ok := m[memberID]
	if !ok {
		return Elapsed{}, false
	}
	delete(m, memberID)
	return ElapsedBetween(joinedAt, now), true
}

// Peek is TakeLeave without removing the record.
func (t *Tracker) Peek(scope Scope, memberID string, now time.Time) (Elapsed, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	joinedAt, ok := t.scope(scope)[memberID]
	if !ok {
		return Elapsed{}, false
	}
	return ElapsedBetween(joinedAt, now), true
}

// Get returns the raw record.
func (t *Tracker) Get(scope Scope, memberID string) (JoinRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	joinedAt, ok := t.scope(scope)[memberID]
	if !ok {
		return JoinRecord{}, false
	}
	return JoinRecord{MemberID: memberID, JoinedAt: joinedAt}, true
}

func (t *Tracker) Len(scope Scope) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.scope(scope))
}

// Clear drops every record in every scope.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for s := range t.records {
		t.records[s] = map[string]time.Time{}
	}
}

// scope must be called with mu held.
func (t *Tracker) scope(s Scope) map[string]time.Time {
	m, ok := t.records[s]
	if !ok {
		m = map[string]time.Time{}
		t.records[s] = m
	}
	return m
}
