package backend

import (
	"net/http"
	"sync"

	"resumeqa/web/internal/model"
)

// Session is the bearer credential of one client. It replaces a
// process-wide default Authorization header: every Client owns one.
type Session struct {
	mu    sync.RWMutex
	token string
}

// Configure arms the session with the credential's token.
func (s *Session) Configure(cred model.Credential) {
	s.mu.Lock()
	s.token = cred.Token
	s.mu.Unlock()
}

// Clear disarms the session.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) authorize(req *http.Request) {
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
