package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"resumeqa/web/internal/interfaces"
	"resumeqa/web/internal/model"
	"resumeqa/web/internal/service"
)

// MsgSelectionUnreadable is flashed when a file selection cannot be read.
const MsgSelectionUnreadable = "Selected files could not be read. Please select smaller PDF files."

// PageHandler serves the server-rendered gate and application pages and
// the form actions that post to them.
type PageHandler struct {
	registry       interfaces.ShellRegistry
	pages          *Pages
	maxUploadBytes int64
}

func NewPageHandler(registry interfaces.ShellRegistry, pages *Pages, maxUploadBytes int64) *PageHandler {
	return &PageHandler{registry: registry, pages: pages, maxUploadBytes: maxUploadBytes}
}

func (h *PageHandler) shell(r *http.Request) *service.Shell {
	return h.registry.Shell(detached(r), ClientIDFromContext(r.Context()))
}

// detached keeps the request's values but drops its cancellation. A
// dispatched backend call runs to completion even if the browser leaves.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// Index renders the gate or the application. An authenticated shell
// without a session asks the backend for one first.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	shell := h.shell(r)
	if shell.NeedsSession() {
		_ = shell.EnsureSession(detached(r))
	}
	notices := shell.TakeNotices()
	h.pages.render(w, pageData{State: shell.Snapshot(), Notices: notices})
}

// action adapts a shell operation to a form POST that redirects back to
// the page. Failures were already turned into notices or inline messages
// by the shell.
func (h *PageHandler) action(op string, fn func(ctx context.Context, shell *service.Shell, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shell := h.shell(r)
		if err := fn(detached(r), shell, r); err != nil {
			slog.Debug("Action finished with error", "op", op, "client_id", shell.ClientID(), "error", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *PageHandler) Login() http.HandlerFunc {
	return h.action("login", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	})
}

func (h *PageHandler) Register() http.HandlerFunc {
	return h.action("register", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.Register(ctx, r.PostFormValue("username"), r.PostFormValue("email"), r.PostFormValue("password"))
	})
}

func (h *PageHandler) AuthMode() http.HandlerFunc {
	return h.action("auth_mode", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		shell.SetAuthMode(service.AuthMode(r.PostFormValue("mode")))
		return nil
	})
}

func (h *PageHandler) Logout() http.HandlerFunc {
	return h.action("logout", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		shell.Logout(ctx)
		return nil
	})
}

func (h *PageHandler) NewSession() http.HandlerFunc {
	return h.action("new_session", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.NewSession(ctx)
	})
}

func (h *PageHandler) CreateSession() http.HandlerFunc {
	return h.action("create_session", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.EnsureSession(ctx)
	})
}

// SelectFiles reads the multipart "files" parts into the shell's selection.
func (h *PageHandler) SelectFiles(w http.ResponseWriter, r *http.Request) {
	shell := h.shell(r)
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	files, err := readFiles(r, h.maxUploadBytes)
	if err != nil {
		slog.Warn("Could not read file selection", "client_id", shell.ClientID(), "error", err)
		shell.Notify(MsgSelectionUnreadable)
	} else if err := shell.SelectFiles(files); err != nil {
		slog.Debug("Action finished with error", "op", "select_files", "client_id", shell.ClientID(), "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) Upload() http.HandlerFunc {
	return h.action("upload", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.Upload(ctx)
	})
}

func (h *PageHandler) ClearDocuments() http.HandlerFunc {
	return h.action("clear_documents", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.ClearDocuments(ctx)
	})
}

func (h *PageHandler) Ask() http.HandlerFunc {
	return h.action("ask", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.Ask(ctx, r.PostFormValue("question"))
	})
}

func (h *PageHandler) ExtractUserInfo() http.HandlerFunc {
	return h.action("extract_user_info", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.ExtractUserInfo(ctx)
	})
}

func (h *PageHandler) GenerateQuestions() http.HandlerFunc {
	return h.action("generate_questions", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.GenerateQuestions(ctx, r.PostFormValue("difficulty"))
	})
}

func (h *PageHandler) ChooseDifficulty() http.HandlerFunc {
	return h.action("choose_difficulty", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.ChooseDifficulty(ctx, r.PostFormValue("difficulty"))
	})
}

func (h *PageHandler) ToggleHistory() http.HandlerFunc {
	return h.action("toggle_history", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.ToggleHistory(ctx)
	})
}

func (h *PageHandler) SelectHistorySession() http.HandlerFunc {
	return h.action("select_history_session", func(ctx context.Context, shell *service.Shell, r *http.Request) error {
		return shell.SelectHistorySession(ctx, r.PostFormValue("session_id"))
	})
}

func readFiles(r *http.Request, maxMemory int64) ([]model.UploadFile, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not parse selection: %w", err)
	}

	headers := r.MultipartForm.File["files"]
	files := make([]model.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", fh.Filename, err)
		}
		// A file input with nothing chosen still posts one empty part.
		if fh.Filename == "" && len(data) == 0 {
			continue
		}
		files = append(files, model.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
