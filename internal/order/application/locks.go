package application

import "sync"

// userLocks hands out one mutex per user id so the whole place-order
// workflow runs single-writer per user. Entries are kept for the
// process lifetime; the user population is small enough that reclaiming
// them is not worth the bookkeeping.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
