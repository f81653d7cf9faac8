package backend

import "resumeqa/web/internal/model"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateSessionRequest struct {
	UserID      string `json:"user_id"`
	SessionName string `json:"session_name"`
}

type CreateSessionResponse struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name,omitempty"`
}

// SessionRef addresses one chat session of one user. Used by clear and the
// extraction endpoints.
type SessionRef struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type AskRequest struct {
	Question  string `json:"question"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type AskResponse struct {
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp,omitempty"`
}

type UserInfoResponse struct {
	ExtractedInfo string `json:"extracted_info"`
}

type TechStackResponse struct {
	TechStack string `json:"tech_stack"`
}

type GenerateQuestionsRequest struct {
	TechStack  string `json:"tech_stack"`
	Difficulty string `json:"difficulty"`
}

type GenerateQuestionsResponse struct {
	Questions string `json:"questions"`
}

type SessionsResponse struct {
	Sessions []model.HistorySession `json:"sessions"`
}

type HistoryResponse struct {
	History []model.HistoryEntry `json:"history"`
}

// ackResponse covers endpoints that only acknowledge.
type ackResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
