package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"resumeqa/web/internal/format"
	"resumeqa/web/internal/model"
	"resumeqa/web/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is what the page templates render.
type pageData struct {
	State   service.State
	Notices []string
}

// Pages holds the parsed page templates.
type Pages struct {
	auth *template.Template
	app  *template.Template
}

var templateFuncs = template.FuncMap{
	// Only assistant text reaches formatMessage; user text stays escaped.
	"formatMessage": func(text string) template.HTML { return template.HTML(format.HTML(text)) },
	"shortID":       shortID,
	"clock":         func(t time.Time) string { return t.Local().Format("15:04:05") },
	"date":          func(raw string) string { return formatBackendTime(raw, "Jan 2, 2006", "Unknown") },
	"datetime":      func(raw string) string { return formatBackendTime(raw, "Jan 2, 2006 15:04:05", "Unknown time") },
	"historical":    historical,
	"inc":           func(i int) int { return i + 1 },
}

// LoadPages parses the embedded templates.
func LoadPages() (*Pages, error) {
	auth, err := template.New("auth.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/auth.html")
	if err != nil {
		return nil, err
	}
	app, err := template.New("app.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/app.html")
	if err != nil {
		return nil, err
	}
	return &Pages{auth: auth, app: app}, nil
}

// render writes the gate or the application page for the snapshot.
func (p *Pages) render(w http.ResponseWriter, data pageData) {
	tmpl := p.auth
	if data.State.Authenticated {
		tmpl = p.app
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Failed to render page", "template", tmpl.Name(), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to write page", "error", err)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// historical reports whether a message belongs to a session other than the
// active one.
func historical(msg model.Message, active *model.ChatSession) bool {
	if msg.SessionID == "" {
		return false
	}
	return active == nil || msg.SessionID != active.SessionID
}

var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

func formatBackendTime(raw, layout, fallback string) string {
	for _, l := range backendTimeLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.Format(layout)
		}
	}
	return fallback
}
