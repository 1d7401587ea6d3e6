package services

import "sync"

// SlotLocks serializes admissions per (date, time) inside this process. Entries are
// reference counted and dropped once nobody waits on them.
type SlotLocks struct {
	mu    sync.Mutex
	slots map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func NewSlotLocks() *SlotLocks {
	return &SlotLocks{slots: make(map[string]*slotLock)}
}

// Lock blocks until the (date, time) slot is free and returns its release func.
func (l *SlotLocks) Lock(date, clock string) func() {
	key := date + " " + clock

	l.mu.Lock()
	entry, ok := l.slots[key]
	if !ok {
		entry = &slotLock{}
		l.slots[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
	}
}

func (l *SlotLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
