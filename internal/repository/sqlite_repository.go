package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"resumeqa/web/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) CredentialRepository {
	return &sqliteRepository{db: db}
}

// SaveCredential writes the three keys in one transaction.
func (r *sqliteRepository) SaveCredential(ctx context.Context, clientID string, cred model.Credential) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO client_storage (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("could not prepare credential upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, kv := range [][2]string{
		{KeyToken, cred.Token},
		{KeyUsername, cred.Username},
		{KeyUserID, cred.UserID},
	} {
		if _, err := stmt.ExecContext(ctx, clientID, kv[0], kv[1], now); err != nil {
			return fmt.Errorf("could not store %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}

// GetCredential returns ErrNotFound unless all three keys are present.
func (r *sqliteRepository) GetCredential(ctx context.Context, clientID string) (*model.Credential, error) {
	query := "SELECT key, value FROM client_storage WHERE client_id = ? AND key IN (?, ?, ?)"
	rows, err := r.db.QueryContext(ctx, query, clientID, KeyToken, KeyUsername, KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("could not query credential: %w", err)
	}
	defer rows.Close()

	var cred model.Credential
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case KeyToken:
			cred.Token = value
		case KeyUsername:
			cred.Username = value
		case KeyUserID:
			cred.UserID = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !cred.Valid() {
		return nil, ErrNotFound
	}
	return &cred, nil
}

// ClearCredential removes the three keys in one statement.
func (r *sqliteRepository) ClearCredential(ctx context.Context, clientID string) error {
	query := "DELETE FROM client_storage WHERE client_id = ? AND key IN (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, query, clientID, KeyToken, KeyUsername, KeyUserID); err != nil {
		return fmt.Errorf("could not clear credential: %w", err)
	}
	return nil
}
