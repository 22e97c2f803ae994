package session

import "sync"

// Store holds one History per session ID for the life of the process.
type Store struct {
	mu        sync.Mutex
	histories map[string]*History
}

func NewStore() *Store {
	return &Store{histories: make(map[string]*History)}
}

// Get returns the history for id, creating it on first use.
func (s *Store) Get(id string) *History {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.histories[id]
	if !ok {
		h = NewHistory()
		s.histories[id] = h
	}
	return h
}

// Len reports the number of known sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.histories)
}
