package workday

import "sync"

// ownerLocks hands out one mutex per owner so mutations on different
// owners never contend. A lock is held only for the duration of a single
// load-mutate-save sequence; there are no external calls inside the
// critical section.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *ownerLocks) get(ownerID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[ownerID]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.locks[ownerID] = m
	return m
}
