// Package backend is the HTTP client for the Resume Q&A backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	app_errors "resumeqa/web/internal/errors"
	"resumeqa/web/internal/model"
)

// API is the set of backend calls the shell and the auth gate make. Each
// implementation carries its own Session; Configure arms the bearer
// credential and Clear disarms it.
type API interface {
	Configure(cred model.Credential)
	Clear()
	Authorized() bool

	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req *RegisterRequest) error
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error)
	UploadDocuments(ctx context.Context, ref *SessionRef, files []model.UploadFile) error
	ClearDocuments(ctx context.Context, ref *SessionRef) error
	Ask(ctx context.Context, req *AskRequest) (*AskResponse, error)
	ExtractUserInfo(ctx context.Context, ref *SessionRef) (*UserInfoResponse, error)
	ExtractTechStack(ctx context.Context, ref *SessionRef) (*TechStackResponse, error)
	GenerateQuestions(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResponse, error)
	ListSessions(ctx context.Context, userID string) ([]model.HistorySession, error)
	ChatHistory(ctx context.Context, userID, sessionID string) ([]model.HistoryEntry, error)
}

// APIError is a non-2xx answer from the backend. Message is the backend's
// "error" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Unwrap lets callers test with errors.Is against ErrUnauthorized or ErrBackend.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return app_errors.ErrUnauthorized
	}
	return app_errors.ErrBackend
}

// ErrorMessage returns the backend-supplied message carried by err, or
// fallback when there is none.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	client  *http.Client
	baseURL string
	session *Session
}

// NewClient returns a client for the API rooted at baseURL (for example
// http://localhost:5000/api) with a fresh, unconfigured Session.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		session: &Session{},
	}
}

func (c *Client) Configure(cred model.Credential) { c.session.Configure(cred) }
func (c *Client) Clear()                          { c.session.Clear() }
func (c *Client) Authorized() bool                { return c.session.Token() != "" }

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.UserID == "" {
		return nil, fmt.Errorf("%w: login response carried no user_id", app_errors.ErrBackend)
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	var resp CreateSessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/sessions/create", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		return nil, fmt.Errorf("%w: session response carried no session_id", app_errors.ErrBackend)
	}
	return &resp, nil
}

// UploadDocuments posts the files as a multipart form: one "files" part per
// file plus the user_id and session_id fields.
func (c *Client) UploadDocuments(ctx context.Context, ref *SessionRef, files []model.UploadFile) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.Name)))
		h.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("could not create form part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("could not write form part: %w", err)
		}
	}
	if err := mw.WriteField("user_id", ref.UserID); err != nil {
		return fmt.Errorf("could not write user_id: %w", err)
	}
	if err := mw.WriteField("session_id", ref.SessionID); err != nil {
		return fmt.Errorf("could not write session_id: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("could not finish multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/upload", &body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(httpReq, &ackResponse{})
}

func (c *Client) ClearDocuments(ctx context.Context, ref *SessionRef) error {
	return c.doJSON(ctx, http.MethodPost, "/documents/clear", nil, ref, &ackResponse{})
}

func (c *Client) Ask(ctx context.Context, req *AskRequest) (*AskResponse, error) {
	var resp AskResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/ask", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ExtractUserInfo(ctx context.Context, ref *SessionRef) (*UserInfoResponse, error) {
	var resp UserInfoResponse
	if err := c.doJSON(ctx, http.MethodPost, "/extract/user-info", nil, ref, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ExtractTechStack(ctx context.Context, ref *SessionRef) (*TechStackResponse, error) {
	var resp TechStackResponse
	if err := c.doJSON(ctx, http.MethodPost, "/extract/tech-stack", nil, ref, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResponse, error) {
	var resp GenerateQuestionsResponse
	if err := c.doJSON(ctx, http.MethodPost, "/questions/generate", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSessions(ctx context.Context, userID string) ([]model.HistorySession, error) {
	var resp SessionsResponse
	q := url.Values{"user_id": {userID}}
	if err := c.doJSON(ctx, http.MethodGet, "/history/sessions", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// ChatHistory lists the pairs of one session, or of every session of the
// user when sessionID is empty.
func (c *Client) ChatHistory(ctx context.Context, userID, sessionID string) ([]model.HistoryEntry, error) {
	var resp HistoryResponse
	q := url.Values{"user_id": {userID}}
	if sessionID != "" {
		q.Set("session_id", sessionID)
	}
	if err := c.doJSON(ctx, http.MethodGet, "/history/chat", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return c.do(httpReq, out)
}

func (c *Client) do(httpReq *http.Request, out interface{}) error {
	httpReq.Header.Set("Accept", "application/json")
	c.session.authorize(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: http request failed: %w", app_errors.ErrBackend, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: could not read response body: %w", app_errors.ErrBackend, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody errorResponse
		if json.Unmarshal(bodyBytes, &errBody) == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%w: could not decode response: %s", app_errors.ErrBackend, string(bodyBytes))
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
