package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"resumeqa/web/internal/backend"
	"resumeqa/web/internal/repository"
)

// APIFactory builds the backend client for a new shell. Every shell gets its
// own client so bearer credentials are never shared between browsers.
type APIFactory func() backend.API

// Registry maps browser client ids to their shells.
type Registry struct {
	repo   repository.CredentialRepository
	auth   *AuthService
	newAPI APIFactory

	now    func() time.Time

	mu     sync.Mutex
	shells map[string]*entry
}

type entry struct {
	shell    *Shell
	lastSeen time.Time
}

func NewRegistry(repo repository.CredentialRepository, newAPI APIFactory) *Registry {
	return &Registry{
		repo:   repo,
		auth:   NewAuthService(repo),
		newAPI: newAPI,
		now:    time.Now,
		shells: make(map[string]*entry),
	}
}

// Shell returns the shell of clientID, creating it on first sight. A new
// shell is restored from the persisted credential trio when one is
// complete.
func (r *Registry) Shell(ctx context.Context, clientID string) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.shells[clientID]; ok {
		e.lastSeen = r.now()
		return e.shell
	}

	shell := NewShell(clientID, r.newAPI(), r.repo, r.auth)
	cred, err := r.repo.GetCredential(ctx, clientID)
	switch {
	case err == nil:
		shell.Restore(*cred)
	case errors.Is(err, repository.ErrNotFound):
	default:
		slog.Warn("Could not read persisted credential", "client_id", clientID, "error", err)
	}
	r.shells[clientID] = &entry{shell: shell, lastSeen: r.now()}
	return shell
}

// EvictIdle drops shells not seen since cutoff and with no backend call in
// flight. A dropped client is restored from storage on its next request.
func (r *Registry) EvictIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.shells {
		if e.lastSeen.Before(cutoff) && !e.shell.Busy() {
			delete(r.shells, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction evicts shells idle for longer than idle every interval until
// ctx is done.
func (r *Registry) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(r.now().Add(-idle)); n > 0 {
				slog.Debug("Evicted idle shells", "count", n, "remaining", r.Len())
			}
		}
	}
}

// Len returns the number of shells held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}
