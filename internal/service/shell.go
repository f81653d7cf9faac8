package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"resumeqa/web/internal/backend"
	app_errors "resumeqa/web/internal/errors"
	"resumeqa/web/internal/model"
	"resumeqa/web/internal/repository"
)

// Notices and inline messages of the main application.
const (
	MsgSessionExpired   = "Session expired. Please login again."
	MsgOnlyPDF          = "Please select only PDF files"
	MsgSelectPDF        = "Please select PDF files to upload"
	MsgNoUserSession    = "User session not found. Please refresh the page."
	MsgUploaded         = "Documents uploaded successfully!"
	MsgUploadFailed     = "Upload failed"
	MsgUploadFirst      = "Please upload documents first"
	MsgAnswerFailed     = "Failed to get answer"
	MsgCleared          = "Session cleared successfully!"
	MsgClearFailed      = "Failed to clear session"
	MsgUserInfoFailed   = "Failed to extract user information from the uploaded documents."
	MsgNoTechSkills     = "No technical skills found in the uploaded documents. Please upload a resume with technical skills listed."
	MsgQuestionsFailed  = "Failed to generate technical questions. Please try again."
	userInfoHeading     = "**Extracted User Information:**\n\n"
	questionsTemplate   = "**Technical Questions (%s Level)**\n\n**Tech Stack Found:** %s\n\n%s"
	DefaultSessionName  = "New Chat Session"
	DefaultDifficulty   = "medium"
	maxQueuedNotices    = 16
)

// DifficultySuggestions are offered by the difficulty dialog.
var DifficultySuggestions = []string{"easy", "medium", "hard"}

// View selects what the main content area shows.
type View string

const (
	ViewChat    View = "chat"
	ViewHistory View = "history"
)

// AuthMode selects which form the gate shows.
type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)

// AuthGate is the form state of the gate. Password and email are never
// kept between renders.
type AuthGate struct {
	Mode     AuthMode `json:"mode"`
	Username string   `json:"username"`
	Error    string   `json:"error,omitempty"`
}

// DifficultyPrompt is an open difficulty dialog holding the tech stack
// resolved by the first stage of question generation.
type DifficultyPrompt struct {
	TechStack   string   `json:"tech_stack"`
	Default     string   `json:"default"`
	Suggestions []string `json:"suggestions"`
}

// State is a copy of a shell taken under its lock, safe to render.
type State struct {
	ClientID           string                 `json:"client_id"`
	Authenticated      bool                   `json:"authenticated"`
	Username           string                 `json:"username,omitempty"`
	UserID             string                 `json:"user_id,omitempty"`
	Gate               AuthGate               `json:"gate"`
	Session            *model.ChatSession     `json:"session,omitempty"`
	CreatingSession    bool                   `json:"creating_session"`
	DocumentsProcessed bool                   `json:"documents_processed"`
	Selection          []model.UploadFile     `json:"selection"`
	Messages           []model.Message        `json:"messages"`
	View               View                   `json:"view"`
	HistorySessions    []model.HistorySession `json:"history_sessions"`
	HistoryEntries     []model.HistoryEntry   `json:"history_entries"`
	HistorySelected    string                 `json:"history_selected,omitempty"`
	HistoryLoading     bool                   `json:"history_loading"`
	Loading            bool                   `json:"loading"`
	Prompt             *DifficultyPrompt      `json:"prompt,omitempty"`
}

// ticket identifies one dispatched backend call. Its reply is applied only
// while the shell is still in the epoch, and for session-scoped calls the
// session, it was dispatched in.
type ticket struct {
	id            uint64
	epoch         uint64
	sessionID     string
	userID        string
	sessionScoped bool
}

// Shell owns the state of one browser client: credential, active chat
// session, transcript, upload selection, history view and flash notices.
// Backend calls are made without holding the lock.
type Shell struct {
	clientID string
	api      backend.API
	repo     repository.CredentialRepository
	auth     *AuthService
	now      func() time.Time

	mu                 sync.Mutex
	cred               *model.Credential
	gate               AuthGate
	session            *model.ChatSession
	creatingID         uint64
	documentsProcessed bool
	selection          []model.UploadFile
	messages           []model.Message
	view               View
	historySessions    []model.HistorySession
	historyEntries     []model.HistoryEntry
	historySelected    string
	prompt             *DifficultyPrompt
	notices            []string

	epoch           uint64
	lastRequest     uint64
	inflight        int
	historyInflight int
	// Latest history fetches; an older reply is dropped.
	sessionsRequest uint64
	entriesRequest  uint64
}

// NewShell returns an unauthenticated shell for clientID.
func NewShell(clientID string, api backend.API, repo repository.CredentialRepository, auth *AuthService) *Shell {
	return &Shell{
		clientID: clientID,
		api:      api,
		repo:     repo,
		auth:     auth,
		now:      time.Now,
		gate:     AuthGate{Mode: AuthModeLogin},
		view:     ViewChat,
	}
}

// ClientID returns the browser client this shell belongs to.
func (s *Shell) ClientID() string { return s.clientID }

// Restore authenticates the shell from a persisted credential without a
// network call.
func (s *Shell) Restore(cred model.Credential) {
	if !cred.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticateLocked(cred)
	slog.Info("Restored persisted session", "client_id", s.clientID, "user_id", cred.UserID)
}

func (s *Shell) authenticateLocked(cred model.Credential) {
	s.cred = &cred
	s.api.Configure(cred)
	s.gate = AuthGate{Mode: AuthModeLogin}
}

// Authenticated reports whether a credential is held.
func (s *Shell) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred != nil
}

// --- Auth gate ---

// Login runs the login form. A failure is shown on the gate, never as a
// notice.
func (s *Shell) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.cred != nil {
		s.mu.Unlock()
		return nil
	}
	s.gate.Username = strings.TrimSpace(username)
	s.gate.Error = ""
	s.mu.Unlock()

	cred, err := s.auth.Login(ctx, s.api, s.clientID, LoginForm{Username: username, Password: password})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.gate.Error = AuthErrorMessage(err)
		slog.Warn("Login failed", "client_id", s.clientID, "error", err)
		return err
	}
	s.authenticateLocked(*cred)
	slog.Info("User logged in", "client_id", s.clientID, "user_id", cred.UserID)
	return nil
}

// Register runs the register form. Success switches the gate to login
// mode and flashes a notice; no session is issued.
func (s *Shell) Register(ctx context.Context, username, email, password string) error {
	s.mu.Lock()
	s.gate.Username = strings.TrimSpace(username)
	s.gate.Error = ""
	s.mu.Unlock()

	err := s.auth.Register(ctx, s.api, RegisterForm{Username: username, Email: email, Password: password})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.gate.Error = AuthErrorMessage(err)
		slog.Warn("Registration failed", "client_id", s.clientID, "error", err)
		return err
	}
	s.gate.Mode = AuthModeLogin
	s.notifyLocked(MsgRegistered)
	return nil
}

// SetAuthMode switches the gate form and clears its error.
func (s *Shell) SetAuthMode(mode AuthMode) {
	if mode != AuthModeRegister {
		mode = AuthModeLogin
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Mode = mode
	s.gate.Error = ""
}

// --- Session lifecycle ---

// Logout clears the persisted trio, the API session and all shell state.
func (s *Shell) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked(ctx)
}

func (s *Shell) logoutLocked(ctx context.Context) {
	if err := s.repo.ClearCredential(ctx, s.clientID); err != nil {
		slog.Error("Failed to clear persisted credential", "client_id", s.clientID, "error", err)
	}
	s.api.Clear()

	s.cred = nil
	s.gate = AuthGate{Mode: AuthModeLogin}
	s.session = nil
	s.creatingID = 0
	s.view = ViewChat
	s.historySessions = nil
	s.historyEntries = nil
	s.historySelected = ""
	s.resetWorkLocked()
}

// resetWorkLocked drops the transcript, upload state and open dialog and
// starts a new epoch so replies already in flight are discarded.
func (s *Shell) resetWorkLocked() {
	s.messages = nil
	s.documentsProcessed = false
	s.selection = nil
	s.prompt = nil
	s.epoch++
}

// expireLocked handles a 401 from any shell call.
func (s *Shell) expireLocked(ctx context.Context, op string) {
	slog.Warn("Backend rejected credential, logging out", "client_id", s.clientID, "op", op)
	s.logoutLocked(ctx)
	s.notifyLocked(MsgSessionExpired)
}

// NeedsSession reports whether an authenticated shell holds no session and
// none is being created.
func (s *Shell) NeedsSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred != nil && s.session == nil && s.creatingID == 0
}

// EnsureSession creates a chat session when authenticated without one. A
// 401 logs out; any other failure is only logged.
func (s *Shell) EnsureSession(ctx context.Context) error {
	s.mu.Lock()
	if s.cred == nil || s.session != nil || s.creatingID != 0 {
		s.mu.Unlock()
		return nil
	}
	t := s.beginLocked(false)
	s.creatingID = t.id
	s.mu.Unlock()

	resp, err := s.api.CreateSession(ctx, &backend.CreateSessionRequest{UserID: t.userID, SessionName: DefaultSessionName})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	// Only the latest creation may land; logout and new session cancel it.
	if s.creatingID != t.id {
		slog.Info("Dropping stale reply", "client_id", s.clientID, "op", "create_session", "request_id", t.id)
		return app_errors.ErrStale
	}
	s.creatingID = 0
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "create_session")
			return err
		}
		slog.Error("Failed to create session", "client_id", s.clientID, "error", err)
		return err
	}
	title := resp.SessionName
	if title == "" {
		title = DefaultSessionName
	}
	s.session = &model.ChatSession{SessionID: resp.SessionID, Title: title, CreatedAt: s.now()}
	slog.Info("Chat session created", "client_id", s.clientID, "session_id", resp.SessionID)
	return nil
}

// NewSession drops the transcript, upload state and open dialog, then
// requests a fresh session. Credentials are kept.
func (s *Shell) NewSession(ctx context.Context) error {
	s.mu.Lock()
	if s.cred == nil {
		s.mu.Unlock()
		return app_errors.ErrUnauthorized
	}
	s.resetWorkLocked()
	s.session = nil
	s.creatingID = 0
	s.mu.Unlock()

	return s.EnsureSession(ctx)
}

// --- Documents ---

// SelectFiles replaces the selection when every file is a PDF. A batch
// with any other type is rejected whole and the old selection kept.
func (s *Shell) SelectFiles(files []model.UploadFile) error {
	if len(files) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !AllPDF(files) {
		s.notifyLocked(MsgOnlyPDF)
		return fmt.Errorf("%w: selection contains non-PDF files", app_errors.ErrValidation)
	}
	s.selection = files
	return nil
}

// Upload sends the selection to the active session.
func (s *Shell) Upload(ctx context.Context) error {
	s.mu.Lock()
	if len(s.selection) == 0 {
		s.notifyLocked(MsgSelectPDF)
		s.mu.Unlock()
		return fmt.Errorf("%w: nothing selected", app_errors.ErrValidation)
	}
	if err := s.requireSessionLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	files := s.selection
	t := s.beginLocked(true)
	s.mu.Unlock()

	err := s.api.UploadDocuments(ctx, &backend.SessionRef{UserID: t.userID, SessionID: t.sessionID}, files)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "upload") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "upload")
			return err
		}
		slog.Error("Upload failed", "client_id", s.clientID, "error", err)
		s.notifyLocked(backend.ErrorMessage(err, MsgUploadFailed))
		return err
	}
	s.documentsProcessed = true
	if s.session != nil {
		s.session.DocumentCount += len(files)
	}
	s.selection = nil
	s.notifyLocked(MsgUploaded)
	return nil
}

// ClearDocuments wipes the session's documents on the backend and, on
// success, the local transcript and upload state.
func (s *Shell) ClearDocuments(ctx context.Context) error {
	s.mu.Lock()
	if err := s.requireSessionLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked(true)
	s.mu.Unlock()

	err := s.api.ClearDocuments(ctx, &backend.SessionRef{UserID: t.userID, SessionID: t.sessionID})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "clear_documents") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "clear_documents")
			return err
		}
		slog.Error("Failed to clear session", "client_id", s.clientID, "error", err)
		s.notifyLocked(backend.ErrorMessage(err, MsgClearFailed))
		return err
	}
	s.resetWorkLocked()
	if s.session != nil {
		s.session.DocumentCount = 0
	}
	s.notifyLocked(MsgCleared)
	return nil
}

// --- Chat and extraction ---

// Ask appends the question and then the answer, or an inline error.
// A blank question is ignored.
func (s *Shell) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	s.mu.Lock()
	if err := s.requireDocumentsLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked(true)
	s.appendLocked(model.RoleUser, question, s.now(), t)
	s.mu.Unlock()

	resp, err := s.api.Ask(ctx, &backend.AskRequest{Question: question, UserID: t.userID, SessionID: t.sessionID})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "ask") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "ask")
			return err
		}
		slog.Error("Failed to get answer", "client_id", s.clientID, "error", err)
		s.appendLocked(model.RoleAssistant, backend.ErrorMessage(err, MsgAnswerFailed), s.now(), t)
		return err
	}
	s.appendLocked(model.RoleAssistant, resp.Answer, parseTimestamp(resp.Timestamp, s.now()), t)
	return nil
}

// ExtractUserInfo appends the personal details the backend pulled from the
// uploaded documents.
func (s *Shell) ExtractUserInfo(ctx context.Context) error {
	s.mu.Lock()
	if err := s.requireDocumentsLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked(true)
	s.mu.Unlock()

	resp, err := s.api.ExtractUserInfo(ctx, &backend.SessionRef{UserID: t.userID, SessionID: t.sessionID})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "extract_user_info") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "extract_user_info")
			return err
		}
		slog.Error("Failed to extract user info", "client_id", s.clientID, "error", err)
		s.appendLocked(model.RoleAssistant, MsgUserInfoFailed, s.now(), t)
		return err
	}
	s.appendLocked(model.RoleAssistant, userInfoHeading+resp.ExtractedInfo, s.now(), t)
	return nil
}

// GenerateQuestions resolves the tech stack and, when one was found, opens
// the difficulty dialog prefilled with defaultDifficulty.
func (s *Shell) GenerateQuestions(ctx context.Context, defaultDifficulty string) error {
	defaultDifficulty = strings.TrimSpace(defaultDifficulty)
	if defaultDifficulty == "" {
		defaultDifficulty = DefaultDifficulty
	}

	s.mu.Lock()
	if err := s.requireDocumentsLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked(true)
	s.mu.Unlock()

	resp, err := s.api.ExtractTechStack(ctx, &backend.SessionRef{UserID: t.userID, SessionID: t.sessionID})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "extract_tech_stack") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "extract_tech_stack")
			return err
		}
		slog.Error("Failed to extract tech stack", "client_id", s.clientID, "error", err)
		s.appendLocked(model.RoleAssistant, MsgQuestionsFailed, s.now(), t)
		return err
	}
	if !HasTechStack(resp.TechStack) {
		s.appendLocked(model.RoleAssistant, MsgNoTechSkills, s.now(), t)
		return nil
	}
	s.prompt = &DifficultyPrompt{
		TechStack:   resp.TechStack,
		Default:     defaultDifficulty,
		Suggestions: DifficultySuggestions,
	}
	return nil
}

// ChooseDifficulty answers the open difficulty dialog. A blank answer
// keeps the dialog's default; any other value is sent as typed, lowercased.
func (s *Shell) ChooseDifficulty(ctx context.Context, answer string) error {
	s.mu.Lock()
	prompt := s.prompt
	if prompt == nil {
		s.mu.Unlock()
		return nil
	}
	s.prompt = nil
	if err := s.requireSessionLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	difficulty := strings.TrimSpace(answer)
	if difficulty == "" {
		difficulty = prompt.Default
	}
	t := s.beginLocked(true)
	s.mu.Unlock()

	resp, err := s.api.GenerateQuestions(ctx, &backend.GenerateQuestionsRequest{
		TechStack:  prompt.TechStack,
		Difficulty: strings.ToLower(difficulty),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finishLocked(t, "generate_questions") {
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "generate_questions")
			return err
		}
		slog.Error("Failed to generate questions", "client_id", s.clientID, "error", err)
		s.appendLocked(model.RoleAssistant, MsgQuestionsFailed, s.now(), t)
		return err
	}
	content := fmt.Sprintf(questionsTemplate, strings.ToUpper(difficulty), NormalizeTechStack(prompt.TechStack), resp.Questions)
	s.appendLocked(model.RoleAssistant, content, s.now(), t)
	return nil
}

// --- History ---

// ToggleHistory flips between chat and history view. Entering the history
// view re-fetches the session list.
func (s *Shell) ToggleHistory(ctx context.Context) error {
	s.mu.Lock()
	if s.cred == nil {
		s.mu.Unlock()
		return app_errors.ErrUnauthorized
	}
	if s.view == ViewHistory {
		s.view = ViewChat
		s.mu.Unlock()
		return nil
	}
	s.view = ViewHistory
	t := s.beginLocked(false)
	s.sessionsRequest = t.id
	s.historyInflight++
	s.mu.Unlock()

	sessions, err := s.api.ListSessions(ctx, t.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyInflight--
	if !s.finishLocked(t, "list_sessions") || t.id != s.sessionsRequest {
		if t.id != s.sessionsRequest {
			slog.Info("Dropping superseded reply", "client_id", s.clientID, "op", "list_sessions", "request_id", t.id)
		}
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "list_sessions")
			return err
		}
		slog.Error("Failed to fetch sessions", "client_id", s.clientID, "error", err)
		s.historySessions = nil
		return err
	}
	s.historySessions = sessions
	return nil
}

// SelectHistorySession loads the question/answer pairs of a past session.
func (s *Shell) SelectHistorySession(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	s.mu.Lock()
	if s.cred == nil {
		s.mu.Unlock()
		return app_errors.ErrUnauthorized
	}
	t := s.beginLocked(false)
	s.entriesRequest = t.id
	s.historyInflight++
	s.mu.Unlock()

	entries, err := s.api.ChatHistory(ctx, t.userID, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyInflight--
	if !s.finishLocked(t, "chat_history") || t.id != s.entriesRequest {
		if t.id != s.entriesRequest {
			slog.Info("Dropping superseded reply", "client_id", s.clientID, "op", "chat_history", "request_id", t.id)
		}
		return app_errors.ErrStale
	}
	if err != nil {
		if errors.Is(err, app_errors.ErrUnauthorized) {
			s.expireLocked(ctx, "chat_history")
			return err
		}
		slog.Error("Failed to fetch chat history", "client_id", s.clientID, "error", err)
		s.historyEntries = nil
		return err
	}
	s.historyEntries = entries
	if sessionID != "" {
		s.historySelected = sessionID
	}
	return nil
}

// --- Snapshot and notices ---

// Snapshot copies the shell state for rendering.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ClientID:           s.clientID,
		Authenticated:      s.cred != nil,
		Gate:               s.gate,
		CreatingSession:    s.creatingID != 0,
		DocumentsProcessed: s.documentsProcessed,
		View:               s.view,
		HistorySelected:    s.historySelected,
		HistoryLoading:     s.historyInflight > 0,
		Loading:            s.inflight > 0,
	}
	if s.cred != nil {
		st.Username = s.cred.Username
		st.UserID = s.cred.UserID
	}
	if s.session != nil {
		sess := *s.session
		st.Session = &sess
	}
	if s.prompt != nil {
		prompt := *s.prompt
		st.Prompt = &prompt
	}
	st.Selection = make([]model.UploadFile, len(s.selection))
	for i, f := range s.selection {
		st.Selection[i] = model.UploadFile{Name: f.Name, ContentType: f.ContentType}
	}
	st.Messages = append([]model.Message(nil), s.messages...)
	st.HistorySessions = append([]model.HistorySession(nil), s.historySessions...)
	st.HistoryEntries = append([]model.HistoryEntry(nil), s.historyEntries...)
	return st
}

// Busy reports whether a backend call is in flight.
func (s *Shell) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0 || s.historyInflight > 0
}

// TakeNotices returns the queued notices and empties the queue.
func (s *Shell) TakeNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	return notices
}

// Notify queues a notice for the next render.
func (s *Shell) Notify(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(msg)
}

func (s *Shell) notifyLocked(msg string) {
	if len(s.notices) >= maxQueuedNotices {
		s.notices = s.notices[1:]
	}
	s.notices = append(s.notices, msg)
}

// --- Reconciliation ---

func (s *Shell) beginLocked(sessionScoped bool) ticket {
	s.lastRequest++
	s.inflight++
	t := ticket{id: s.lastRequest, epoch: s.epoch, sessionScoped: sessionScoped}
	if s.cred != nil {
		t.userID = s.cred.UserID
	}
	if s.session != nil {
		t.sessionID = s.session.SessionID
	}
	return t
}

// finishLocked retires t and reports whether its reply may still be applied.
func (s *Shell) finishLocked(t ticket, op string) bool {
	s.inflight--
	current := t.epoch == s.epoch
	if current && t.sessionScoped {
		current = s.session != nil && s.session.SessionID == t.sessionID
	}
	if !current {
		slog.Info("Dropping stale reply", "client_id", s.clientID, "op", op, "request_id", t.id)
	}
	return current
}

func (s *Shell) requireSessionLocked() error {
	if s.cred == nil || s.session == nil {
		s.notifyLocked(MsgNoUserSession)
		return app_errors.ErrNoSession
	}
	return nil
}

func (s *Shell) requireDocumentsLocked() error {
	if !s.documentsProcessed {
		s.notifyLocked(MsgUploadFirst)
		return app_errors.ErrNoDocuments
	}
	return s.requireSessionLocked()
}

func (s *Shell) appendLocked(role, content string, ts time.Time, t ticket) {
	s.messages = append(s.messages, model.Message{
		Role:      role,
		Content:   content,
		Timestamp: ts,
		SessionID: t.sessionID,
		RequestID: t.id,
	})
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp reads a backend timestamp, falling back when it is
// missing or unreadable.
func parseTimestamp(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return fallback
}
