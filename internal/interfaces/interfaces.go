package interfaces

import (
	"context"

	"resumeqa/web/internal/service"
)

// This file defines the interfaces the API layer depends on.
// Handlers resolve the caller's shell through ShellRegistry instead of a concrete
// registry, so tests can hand them a prepared shell.

// ShellRegistry resolves the per-browser shell of a client id, creating and
// restoring it on first sight.
type ShellRegistry interface {
	Shell(ctx context.Context, clientID string) *service.Shell
}
