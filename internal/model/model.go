package model

import "time"

// Role values for transcript messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Credential identifies a logged-in user to this client. It is persisted as
// the trio token/username/userId in the client's durable storage.
type Credential struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// Valid reports whether all three parts are present.
func (c Credential) Valid() bool {
	return c.Token != "" && c.Username != "" && c.UserID != ""
}

// ChatSession is the server-side grouping of documents and Q&A history the
// shell is currently working in.
type ChatSession struct {
	SessionID     string    `json:"session_id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	DocumentCount int       `json:"document_count"`
}

// Message is a single transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
	RequestID uint64    `json:"request_id,omitempty"`
}

// UploadFile is one PDF picked by the user and held until upload.
type UploadFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// HistorySession is the summary of a past session as listed by the backend.
// Timestamps are kept as the backend sends them.
type HistorySession struct {
	SessionID     string `json:"session_id"`
	Title         string `json:"title"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	DocumentCount int    `json:"document_count"`
}

// HistoryEntry is one question/answer pair of a past session.
type HistoryEntry struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp"`
}
