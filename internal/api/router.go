package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "resumeqa/web/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the settings the router needs from the app config.
type RouterConfig struct {
	CookieSecure   bool
	AllowedOrigins []string
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(pages *PageHandler, state *StateHandler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- Browser Routes ---
	// Everything below is keyed by the browser's client id cookie.
	r.Group(func(r chi.Router) {
		r.Use(ClientID(cfg.CookieSecure))

		r.Get("/", pages.Index)

		// Auth gate
		r.Post("/auth/login", pages.Login())
		r.Post("/auth/register", pages.Register())
		r.Post("/auth/mode", pages.AuthMode())

		// Session lifecycle
		r.Post("/logout", pages.Logout())
		r.Post("/session/new", pages.NewSession())
		r.Post("/session/create", pages.CreateSession())

		// Documents
		r.Post("/documents/select", pages.SelectFiles)
		r.Post("/documents/upload", pages.Upload())
		r.Post("/documents/clear", pages.ClearDocuments())

		// Chat and extraction
		r.Post("/chat/ask", pages.Ask())
		r.Post("/extract/user-info", pages.ExtractUserInfo())
		r.Post("/questions/generate", pages.GenerateQuestions())
		r.Post("/questions/difficulty", pages.ChooseDifficulty())

		// History browser
		r.Post("/history/toggle", pages.ToggleHistory())
		r.Post("/history/select", pages.SelectHistorySession())

		// --- API Version 1 Routes ---
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(cors.New(cors.Options{
				AllowedOrigins:   cfg.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
			}).Handler)
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/state", state.HandleGetState)
			r.Post("/format", state.HandleFormat)
		})
	})

	return r
}
