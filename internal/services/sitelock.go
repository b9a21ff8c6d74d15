package services

import "sync"

// SiteLocks serializes position-mutating work per site within this process.
// Entries are reference counted and dropped when the last holder unlocks.
type SiteLocks struct {
	mu    sync.Mutex
	locks map[uint64]*siteLock
}

type siteLock struct {
	mu   sync.Mutex
	refs int
}

// NewSiteLocks creates an empty lock table.
func NewSiteLocks() *SiteLocks {
	return &SiteLocks{locks: make(map[uint64]*siteLock)}
}

// Lock blocks until the site is free and returns the matching unlock func.
func (s *SiteLocks) Lock(siteID uint64) func() {
	s.mu.Lock()
	l, ok := s.locks[siteID]
	if !ok {
		l = &siteLock{}
		s.locks[siteID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, siteID)
		}
		s.mu.Unlock()
	}
}

// Len reports how many sites currently hold or wait on a lock.
func (s *SiteLocks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
