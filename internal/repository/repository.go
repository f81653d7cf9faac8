package repository

import (
	"context"

	"resumeqa/web/internal/model"
)

// Storage keys of the credential trio.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyUserID   = "userId"
)

// CredentialRepository is the durable per-client key-value storage that
// holds the credential trio. Writes and removals of the trio are atomic.
type CredentialRepository interface {
	SaveCredential(ctx context.Context, clientID string, cred model.Credential) error
	GetCredential(ctx context.Context, clientID string) (*model.Credential, error)
	ClearCredential(ctx context.Context, clientID string) error
}
