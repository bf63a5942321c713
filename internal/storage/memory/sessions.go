package memory

import "sync"

// Sessions is a token→email map; keying by token lets concurrent users
// coexist.
type Sessions struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]string)}
}

func (s *Sessions) Put(token, email string) {
	s.mu.Lock()
	s.m[token] = email
	s.mu.Unlock()
}

func (s *Sessions) Resolve(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.m[token]
	return email, ok
}

// Delete is idempotent; removing an unknown token is a no-op.
func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
}
