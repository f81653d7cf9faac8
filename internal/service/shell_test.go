package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resumeqa/web/internal/backend"
	mock_backend "resumeqa/web/internal/backend/mocks"
	app_errors "resumeqa/web/internal/errors"
	"resumeqa/web/internal/model"
	mock_repo "resumeqa/web/internal/repository/mocks"
	"resumeqa/web/internal/service"
)

const clientID = "client-1"

var (
	alice = model.Credential{Token: "u1", Username: "alice", UserID: "u1"}
	pdf   = model.UploadFile{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4\n")}
	docx  = model.UploadFile{
		Name:        "cv.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:        []byte("PK\x03\x04"),
	}
	ref = &backend.SessionRef{UserID: "u1", SessionID: "s1"}
)

type shellMocks struct {
	api  *mock_backend.MockAPI
	repo *mock_repo.MockCredentialRepository
}

func setupShell(t *testing.T) (*service.Shell, shellMocks) {
	mocks := shellMocks{
		api:  mock_backend.NewMockAPI(t),
		repo: mock_repo.NewMockCredentialRepository(t),
	}
	shell := service.NewShell(clientID, mocks.api, mocks.repo, service.NewAuthService(mocks.repo))
	return shell, mocks
}

// withSession returns a shell restored as alice holding session s1.
func withSession(t *testing.T) (*service.Shell, shellMocks) {
	shell, mocks := setupShell(t)
	mocks.api.On("Configure", alice).Once()
	shell.Restore(alice)

	mocks.api.On("CreateSession", mock.Anything, &backend.CreateSessionRequest{UserID: "u1", SessionName: "New Chat Session"}).
		Return(&backend.CreateSessionResponse{SessionID: "s1", SessionName: "New Chat Session"}, nil).Once()
	require.NoError(t, shell.EnsureSession(context.Background()))
	return shell, mocks
}

// withDocuments returns a shell with session s1 and one uploaded PDF.
func withDocuments(t *testing.T) (*service.Shell, shellMocks) {
	shell, mocks := withSession(t)
	require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
	mocks.api.On("UploadDocuments", mock.Anything, ref, []model.UploadFile{pdf}).Return(nil).Once()
	require.NoError(t, shell.Upload(context.Background()))
	shell.TakeNotices()
	return shell, mocks
}

// expectExpiry arms the mocks for a forced logout.
func expectExpiry(mocks shellMocks) {
	mocks.repo.On("ClearCredential", mock.Anything, clientID).Return(nil).Once()
	mocks.api.On("Clear").Once()
}

func assertLoggedOut(t *testing.T, shell *service.Shell) {
	t.Helper()
	st := shell.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.Session)
	assert.Empty(t, st.Messages)
	assert.False(t, st.DocumentsProcessed)
	assert.Empty(t, st.Selection)
	assert.Nil(t, st.Prompt)
	assert.Equal(t, service.ViewChat, st.View)
	assert.Equal(t, []string{"Session expired. Please login again."}, shell.TakeNotices())
}

func TestShell_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - trio persisted and API armed", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Login", mock.Anything, &backend.LoginRequest{Username: "alice", Password: "secret1"}).
			Return(&backend.LoginResponse{UserID: "u1", Username: "alice"}, nil).Once()
		mocks.repo.On("SaveCredential", mock.Anything, clientID, alice).Return(nil).Once()
		mocks.api.On("Configure", alice).Once()

		err := shell.Login(ctx, "  alice ", "secret1")
		require.NoError(t, err)

		st := shell.Snapshot()
		assert.True(t, st.Authenticated)
		assert.Equal(t, "alice", st.Username)
		assert.Equal(t, "u1", st.UserID)
		assert.Nil(t, st.Session)
		assert.True(t, shell.NeedsSession())
	})

	t.Run("Failure - invalid credentials shown on the gate", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Login", mock.Anything, mock.Anything).
			Return(nil, &backend.APIError{Status: 401, Message: "Invalid credentials"}).Once()

		err := shell.Login(ctx, "alice", "wrong00")
		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)

		st := shell.Snapshot()
		assert.False(t, st.Authenticated)
		assert.Equal(t, "Invalid credentials", st.Gate.Error)
		assert.Equal(t, "alice", st.Gate.Username)
		assert.Empty(t, shell.TakeNotices(), "login failures never raise a notice")
	})

	t.Run("Failure - validation makes no call", func(t *testing.T) {
		shell, _ := setupShell(t)

		err := shell.Login(ctx, "alice", "short")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Equal(t, "Password must be at least 6 characters", shell.Snapshot().Gate.Error)

		err = shell.Login(ctx, "   ", "secret1")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Equal(t, "Username and password are required", shell.Snapshot().Gate.Error)
	})

	t.Run("Failure - transport error uses generic message", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Login", mock.Anything, mock.Anything).Return(nil, app_errors.ErrBackend).Once()

		require.Error(t, shell.Login(ctx, "alice", "secret1"))
		assert.Equal(t, "An error occurred", shell.Snapshot().Gate.Error)
	})
}

func TestShell_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - back to login mode with a notice", func(t *testing.T) {
		shell, mocks := setupShell(t)
		shell.SetAuthMode(service.AuthModeRegister)
		mocks.api.On("Register", mock.Anything, &backend.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "secret1"}).
			Return(nil).Once()

		require.NoError(t, shell.Register(ctx, "bob", "bob@example.com", "secret1"))

		st := shell.Snapshot()
		assert.False(t, st.Authenticated)
		assert.Equal(t, service.AuthModeLogin, st.Gate.Mode)
		assert.Equal(t, []string{"Registration successful! Please login now."}, shell.TakeNotices())
	})

	t.Run("Failure - backend message surfaced", func(t *testing.T) {
		shell, mocks := setupShell(t)
		shell.SetAuthMode(service.AuthModeRegister)
		mocks.api.On("Register", mock.Anything, mock.Anything).
			Return(&backend.APIError{Status: 409, Message: "Username already exists"}).Once()

		require.Error(t, shell.Register(ctx, "bob", "bob@example.com", "secret1"))

		st := shell.Snapshot()
		assert.Equal(t, service.AuthModeRegister, st.Gate.Mode)
		assert.Equal(t, "Username already exists", st.Gate.Error)
	})

	t.Run("Toggle clears the error", func(t *testing.T) {
		shell, _ := setupShell(t)
		shell.SetAuthMode(service.AuthModeRegister)
		require.Error(t, shell.Register(ctx, "bob", "", "secret1"))
		assert.Equal(t, "Email is required for registration", shell.Snapshot().Gate.Error)

		shell.SetAuthMode(service.AuthModeLogin)
		assert.Empty(t, shell.Snapshot().Gate.Error)
	})
}

func TestShell_EnsureSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - created once", func(t *testing.T) {
		shell, _ := withSession(t)
		require.NoError(t, shell.EnsureSession(ctx), "a held session needs no call")

		st := shell.Snapshot()
		require.NotNil(t, st.Session)
		assert.Equal(t, "s1", st.Session.SessionID)
		assert.Equal(t, "New Chat Session", st.Session.Title)
		assert.False(t, shell.NeedsSession())
	})

	t.Run("Failure - 401 forces logout", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Configure", alice).Once()
		shell.Restore(alice)
		mocks.api.On("CreateSession", mock.Anything, mock.Anything).Return(nil, &backend.APIError{Status: 401}).Once()
		expectExpiry(mocks)

		err := shell.EnsureSession(ctx)
		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
		assertLoggedOut(t, shell)
	})

	t.Run("Failure - other errors are only logged", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Configure", alice).Once()
		shell.Restore(alice)
		mocks.api.On("CreateSession", mock.Anything, mock.Anything).Return(nil, &backend.APIError{Status: 500, Message: "db down"}).Once()

		require.Error(t, shell.EnsureSession(ctx))

		st := shell.Snapshot()
		assert.True(t, st.Authenticated)
		assert.Nil(t, st.Session)
		assert.Empty(t, shell.TakeNotices())
		assert.True(t, shell.NeedsSession(), "the manual create button stays available")
	})

	t.Run("Unauthenticated shell makes no call", func(t *testing.T) {
		shell, _ := setupShell(t)
		require.NoError(t, shell.EnsureSession(ctx))
		assert.False(t, shell.NeedsSession())
	})
}

func TestShell_Logout(t *testing.T) {
	shell, mocks := withDocuments(t)
	mocks.repo.On("ClearCredential", mock.Anything, clientID).Return(nil).Once()
	mocks.api.On("Clear").Once()

	shell.Logout(context.Background())

	st := shell.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.Session)
	assert.False(t, st.DocumentsProcessed)
	assert.Empty(t, shell.TakeNotices())
}

func TestShell_SelectFiles(t *testing.T) {
	t.Run("Failure - mixed batch rejected whole", func(t *testing.T) {
		shell, _ := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))

		err := shell.SelectFiles([]model.UploadFile{pdf, docx})
		assert.ErrorIs(t, err, app_errors.ErrValidation)

		assert.Equal(t, []string{"Please select only PDF files"}, shell.TakeNotices())
		st := shell.Snapshot()
		require.Len(t, st.Selection, 1, "prior selection left untouched")
		assert.Equal(t, "cv.pdf", st.Selection[0].Name)
		assert.Nil(t, st.Selection[0].Data, "snapshots never carry file bytes")
	})

	t.Run("Empty selection is a no-op", func(t *testing.T) {
		shell, _ := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
		require.NoError(t, shell.SelectFiles(nil))

		assert.Len(t, shell.Snapshot().Selection, 1)
		assert.Empty(t, shell.TakeNotices())
	})
}

func TestShell_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		shell, mocks := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
		mocks.api.On("UploadDocuments", mock.Anything, ref, []model.UploadFile{pdf}).Return(nil).Once()

		require.NoError(t, shell.Upload(ctx))

		st := shell.Snapshot()
		assert.True(t, st.DocumentsProcessed)
		assert.Empty(t, st.Selection)
		assert.Equal(t, 1, st.Session.DocumentCount)
		assert.False(t, st.Loading)
		assert.Equal(t, []string{"Documents uploaded successfully!"}, shell.TakeNotices())
	})

	t.Run("Failure - nothing selected", func(t *testing.T) {
		shell, _ := withSession(t)
		assert.ErrorIs(t, shell.Upload(ctx), app_errors.ErrValidation)
		assert.Equal(t, []string{"Please select PDF files to upload"}, shell.TakeNotices())
	})

	t.Run("Failure - no session makes no call", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Configure", alice).Once()
		shell.Restore(alice)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))

		assert.ErrorIs(t, shell.Upload(ctx), app_errors.ErrNoSession)
		assert.Equal(t, []string{"User session not found. Please refresh the page."}, shell.TakeNotices())
	})

	t.Run("Failure - backend message kept with selection", func(t *testing.T) {
		shell, mocks := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
		mocks.api.On("UploadDocuments", mock.Anything, ref, mock.Anything).
			Return(&backend.APIError{Status: 400, Message: "No valid PDF files"}).Once()

		require.Error(t, shell.Upload(ctx))

		st := shell.Snapshot()
		assert.False(t, st.DocumentsProcessed)
		assert.Len(t, st.Selection, 1)
		assert.Equal(t, []string{"No valid PDF files"}, shell.TakeNotices())
	})

	t.Run("Failure - fallback message", func(t *testing.T) {
		shell, mocks := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
		mocks.api.On("UploadDocuments", mock.Anything, ref, mock.Anything).Return(app_errors.ErrBackend).Once()

		require.Error(t, shell.Upload(ctx))
		assert.Equal(t, []string{"Upload failed"}, shell.TakeNotices())
	})

	t.Run("Failure - 401 forces logout", func(t *testing.T) {
		shell, mocks := withSession(t)
		require.NoError(t, shell.SelectFiles([]model.UploadFile{pdf}))
		mocks.api.On("UploadDocuments", mock.Anything, ref, mock.Anything).Return(&backend.APIError{Status: 401}).Once()
		expectExpiry(mocks)

		assert.ErrorIs(t, shell.Upload(ctx), app_errors.ErrUnauthorized)
		assertLoggedOut(t, shell)
	})
}

func TestShell_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - question then answer", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("Ask", mock.Anything, &backend.AskRequest{Question: "What stack?", UserID: "u1", SessionID: "s1"}).
			Return(&backend.AskResponse{Answer: "**Go**", Timestamp: "2024-05-01T10:00:00Z"}, nil).Once()

		require.NoError(t, shell.Ask(ctx, "  What stack?  "))

		msgs := shell.Snapshot().Messages
		require.Len(t, msgs, 2)
		assert.Equal(t, model.RoleUser, msgs[0].Role)
		assert.Equal(t, "What stack?", msgs[0].Content)
		assert.Equal(t, model.RoleAssistant, msgs[1].Role)
		assert.Equal(t, "**Go**", msgs[1].Content)
		assert.True(t, msgs[1].Timestamp.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
		assert.Equal(t, "s1", msgs[1].SessionID)
		assert.Equal(t, msgs[0].RequestID, msgs[1].RequestID)
	})

	t.Run("Blank question ignored", func(t *testing.T) {
		shell, _ := withDocuments(t)
		require.NoError(t, shell.Ask(ctx, " \n\t "))
		assert.Empty(t, shell.Snapshot().Messages)
		assert.Empty(t, shell.TakeNotices())
	})

	t.Run("Failure - no documents makes no call", func(t *testing.T) {
		shell, _ := withSession(t)

		err := shell.Ask(ctx, "What stack?")
		assert.ErrorIs(t, err, app_errors.ErrNoDocuments)
		assert.Equal(t, []string{"Please upload documents first"}, shell.TakeNotices())
		assert.Empty(t, shell.Snapshot().Messages)
	})

	t.Run("Failure - inline assistant error", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("Ask", mock.Anything, mock.Anything).Return(nil, app_errors.ErrBackend).Once()
		mocks.api.On("Ask", mock.Anything, mock.Anything).
			Return(nil, &backend.APIError{Status: 500, Message: "model offline"}).Once()

		require.Error(t, shell.Ask(ctx, "one"))
		require.Error(t, shell.Ask(ctx, "two"))

		msgs := shell.Snapshot().Messages
		require.Len(t, msgs, 4)
		assert.Equal(t, "Failed to get answer", msgs[1].Content)
		assert.Equal(t, "model offline", msgs[3].Content)
		assert.Empty(t, shell.TakeNotices())
	})

	t.Run("Failure - 401 forces logout and clears storage", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("Ask", mock.Anything, mock.Anything).Return(nil, &backend.APIError{Status: 401}).Once()
		expectExpiry(mocks)

		assert.ErrorIs(t, shell.Ask(ctx, "q"), app_errors.ErrUnauthorized)
		assertLoggedOut(t, shell)
	})

	t.Run("Stale - reply after new session is dropped", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("Ask", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				assert.True(t, shell.Snapshot().Loading)
				require.NoError(t, shell.NewSession(ctx))
			}).
			Return(&backend.AskResponse{Answer: "late"}, nil).Once()
		mocks.api.On("CreateSession", mock.Anything, mock.Anything).
			Return(&backend.CreateSessionResponse{SessionID: "s2"}, nil).Once()

		err := shell.Ask(ctx, "q")
		assert.ErrorIs(t, err, app_errors.ErrStale)

		st := shell.Snapshot()
		assert.Empty(t, st.Messages)
		assert.Equal(t, "s2", st.Session.SessionID)
		assert.False(t, st.DocumentsProcessed)
		assert.False(t, st.Loading)
	})
}

func TestShell_ClearDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("Ask", mock.Anything, mock.Anything).Return(&backend.AskResponse{Answer: "a"}, nil).Once()
		require.NoError(t, shell.Ask(ctx, "q"))
		mocks.api.On("ClearDocuments", mock.Anything, ref).Return(nil).Once()

		require.NoError(t, shell.ClearDocuments(ctx))

		st := shell.Snapshot()
		assert.Empty(t, st.Messages)
		assert.False(t, st.DocumentsProcessed)
		assert.Equal(t, "s1", st.Session.SessionID, "the session itself is kept")
		assert.Equal(t, []string{"Session cleared successfully!"}, shell.TakeNotices())
	})

	t.Run("Failure - message shown", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ClearDocuments", mock.Anything, ref).Return(app_errors.ErrBackend).Once()

		require.Error(t, shell.ClearDocuments(ctx))
		assert.True(t, shell.Snapshot().DocumentsProcessed)
		assert.Equal(t, []string{"Failed to clear session"}, shell.TakeNotices())
	})

	t.Run("Failure - no session makes no call", func(t *testing.T) {
		shell, mocks := setupShell(t)
		mocks.api.On("Configure", alice).Once()
		shell.Restore(alice)

		err := shell.ClearDocuments(ctx)

		assert.ErrorIs(t, err, app_errors.ErrNoSession)
		assert.Equal(t, []string{"User session not found. Please refresh the page."}, shell.TakeNotices())
		mocks.api.AssertNotCalled(t, "ClearDocuments", mock.Anything, mock.Anything)
	})
}

func TestShell_ExtractUserInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractUserInfo", mock.Anything, ref).
			Return(&backend.UserInfoResponse{ExtractedInfo: "Name: Alice"}, nil).Once()

		require.NoError(t, shell.ExtractUserInfo(ctx))

		msgs := shell.Snapshot().Messages
		require.Len(t, msgs, 1)
		assert.Equal(t, "**Extracted User Information:**\n\nName: Alice", msgs[0].Content)
	})

	t.Run("Failure - inline message", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractUserInfo", mock.Anything, ref).Return(nil, &backend.APIError{Status: 500, Message: "x"}).Once()

		require.Error(t, shell.ExtractUserInfo(ctx))
		assert.Equal(t, "Failed to extract user information from the uploaded documents.", shell.Snapshot().Messages[0].Content)
	})

	t.Run("Failure - no documents", func(t *testing.T) {
		shell, _ := withSession(t)
		assert.ErrorIs(t, shell.ExtractUserInfo(ctx), app_errors.ErrNoDocuments)
		assert.Equal(t, []string{"Please upload documents first"}, shell.TakeNotices())
	})
}

func TestShell_GenerateQuestions(t *testing.T) {
	ctx := context.Background()
	rawStack := "- Go\n- Docker; * PostgreSQL\nNot mentioned: Kubernetes"

	t.Run("Success - dialog then questions", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(&backend.TechStackResponse{TechStack: rawStack}, nil).Once()
		mocks.api.On("GenerateQuestions", mock.Anything, &backend.GenerateQuestionsRequest{TechStack: rawStack, Difficulty: "hard"}).
			Return(&backend.GenerateQuestionsResponse{Questions: "1. What is a goroutine?"}, nil).Once()

		require.NoError(t, shell.GenerateQuestions(ctx, "medium"))

		st := shell.Snapshot()
		require.NotNil(t, st.Prompt)
		assert.Equal(t, "medium", st.Prompt.Default)
		assert.Equal(t, []string{"easy", "medium", "hard"}, st.Prompt.Suggestions)
		assert.Empty(t, st.Messages)

		require.NoError(t, shell.ChooseDifficulty(ctx, "HARD"))

		st = shell.Snapshot()
		assert.Nil(t, st.Prompt)
		require.Len(t, st.Messages, 1)
		assert.Equal(t,
			"**Technical Questions (HARD Level)**\n\n**Tech Stack Found:** Go, Docker, PostgreSQL\n\n1. What is a goroutine?",
			st.Messages[0].Content)
	})

	t.Run("Blank answer keeps the default", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(&backend.TechStackResponse{TechStack: "Go"}, nil).Once()
		mocks.api.On("GenerateQuestions", mock.Anything, &backend.GenerateQuestionsRequest{TechStack: "Go", Difficulty: "medium"}).
			Return(&backend.GenerateQuestionsResponse{Questions: "Q"}, nil).Once()

		require.NoError(t, shell.GenerateQuestions(ctx, ""))
		require.NoError(t, shell.ChooseDifficulty(ctx, "   "))

		assert.Contains(t, shell.Snapshot().Messages[0].Content, "(MEDIUM Level)")
	})

	t.Run("No tech stack found", func(t *testing.T) {
		for _, stack := range []string{"", "No tech stack found in documents"} {
			shell, mocks := withDocuments(t)
			mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(&backend.TechStackResponse{TechStack: stack}, nil).Once()

			require.NoError(t, shell.GenerateQuestions(ctx, "medium"))

			st := shell.Snapshot()
			assert.Nil(t, st.Prompt)
			require.Len(t, st.Messages, 1)
			assert.Equal(t, service.MsgNoTechSkills, st.Messages[0].Content)
		}
	})

	t.Run("Failure - generation error inline", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(&backend.TechStackResponse{TechStack: "Go"}, nil).Once()
		mocks.api.On("GenerateQuestions", mock.Anything, mock.Anything).Return(nil, app_errors.ErrBackend).Once()

		require.NoError(t, shell.GenerateQuestions(ctx, "medium"))
		require.Error(t, shell.ChooseDifficulty(ctx, "easy"))

		assert.Equal(t, "Failed to generate technical questions. Please try again.", shell.Snapshot().Messages[0].Content)
	})

	t.Run("Failure - 401 on extraction forces logout", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(nil, &backend.APIError{Status: 401}).Once()
		expectExpiry(mocks)

		assert.ErrorIs(t, shell.GenerateQuestions(ctx, "medium"), app_errors.ErrUnauthorized)
		assertLoggedOut(t, shell)
	})

	t.Run("New session closes the dialog", func(t *testing.T) {
		shell, mocks := withDocuments(t)
		mocks.api.On("ExtractTechStack", mock.Anything, ref).Return(&backend.TechStackResponse{TechStack: "Go"}, nil).Once()
		mocks.api.On("CreateSession", mock.Anything, mock.Anything).Return(&backend.CreateSessionResponse{SessionID: "s2"}, nil).Once()

		require.NoError(t, shell.GenerateQuestions(ctx, "medium"))
		require.NoError(t, shell.NewSession(ctx))
		require.NoError(t, shell.ChooseDifficulty(ctx, "easy"), "no dialog, nothing to answer")

		assert.Nil(t, shell.Snapshot().Prompt)
	})
}

func TestShell_History(t *testing.T) {
	ctx := context.Background()
	sessions := []model.HistorySession{{SessionID: "s0", Title: "Old", DocumentCount: 1}}

	t.Run("Toggle fetches on entry only", func(t *testing.T) {
		shell, mocks := withSession(t)
		mocks.api.On("ListSessions", mock.Anything, "u1").Return(sessions, nil).Once()

		require.NoError(t, shell.ToggleHistory(ctx))
		st := shell.Snapshot()
		assert.Equal(t, service.ViewHistory, st.View)
		assert.Equal(t, sessions, st.HistorySessions)
		assert.False(t, st.HistoryLoading)

		require.NoError(t, shell.ToggleHistory(ctx))
		st = shell.Snapshot()
		assert.Equal(t, service.ViewChat, st.View)
		assert.Equal(t, sessions, st.HistorySessions, "data kept until the next toggle-in")
	})

	t.Run("Select loads pairs", func(t *testing.T) {
		shell, mocks := withSession(t)
		entries := []model.HistoryEntry{{Question: "q", Answer: "**a**", Timestamp: "2024-05-01T10:00:00"}}
		mocks.api.On("ChatHistory", mock.Anything, "u1", "s0").Return(entries, nil).Once()

		require.NoError(t, shell.SelectHistorySession(ctx, "s0"))

		st := shell.Snapshot()
		assert.Equal(t, "s0", st.HistorySelected)
		assert.Equal(t, entries, st.HistoryEntries)
	})

	t.Run("Failure - lists reset silently", func(t *testing.T) {
		shell, mocks := withSession(t)
		mocks.api.On("ListSessions", mock.Anything, "u1").Return(nil, app_errors.ErrBackend).Once()
		mocks.api.On("ChatHistory", mock.Anything, "u1", "s0").Return(nil, app_errors.ErrBackend).Once()

		require.Error(t, shell.ToggleHistory(ctx))
		require.Error(t, shell.SelectHistorySession(ctx, "s0"))

		st := shell.Snapshot()
		assert.Empty(t, st.HistorySessions)
		assert.Empty(t, st.HistoryEntries)
		assert.Empty(t, shell.TakeNotices())
		assert.Equal(t, service.ViewHistory, st.View)
	})

	t.Run("Stale - older session list never overwrites a newer one", func(t *testing.T) {
		shell, mocks := withSession(t)
		older := []model.HistorySession{{SessionID: "old"}}
		newer := []model.HistorySession{{SessionID: "new"}}
		mocks.api.On("ListSessions", mock.Anything, "u1").
			Run(func(args mock.Arguments) {
				// Toggle out and back in while the first fetch is pending.
				require.NoError(t, shell.ToggleHistory(ctx))
				require.NoError(t, shell.ToggleHistory(ctx))
			}).
			Return(older, nil).Once()
		mocks.api.On("ListSessions", mock.Anything, "u1").Return(newer, nil).Once()

		err := shell.ToggleHistory(ctx)

		assert.ErrorIs(t, err, app_errors.ErrStale)
		st := shell.Snapshot()
		assert.Equal(t, service.ViewHistory, st.View)
		assert.Equal(t, newer, st.HistorySessions)
		assert.False(t, st.HistoryLoading)
	})

	t.Run("Stale - older pairs never overwrite a newer selection", func(t *testing.T) {
		shell, mocks := withSession(t)
		first := []model.HistoryEntry{{Question: "from s0"}}
		second := []model.HistoryEntry{{Question: "from s2"}}
		mocks.api.On("ChatHistory", mock.Anything, "u1", "s0").
			Run(func(args mock.Arguments) {
				require.NoError(t, shell.SelectHistorySession(ctx, "s2"))
			}).
			Return(first, nil).Once()
		mocks.api.On("ChatHistory", mock.Anything, "u1", "s2").Return(second, nil).Once()

		assert.ErrorIs(t, shell.SelectHistorySession(ctx, "s0"), app_errors.ErrStale)

		st := shell.Snapshot()
		assert.Equal(t, "s2", st.HistorySelected)
		assert.Equal(t, second, st.HistoryEntries)
	})

	t.Run("Failure - 401 forces logout", func(t *testing.T) {
		shell, mocks := withSession(t)
		mocks.api.On("ListSessions", mock.Anything, "u1").Return(nil, &backend.APIError{Status: 401}).Once()
		expectExpiry(mocks)

		assert.ErrorIs(t, shell.ToggleHistory(ctx), app_errors.ErrUnauthorized)
		assertLoggedOut(t, shell)
	})
}
