package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/folio/api"
	"github.com/example/folio/internal/config"
	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/mailer"
	"github.com/example/folio/internal/media"
	"github.com/example/folio/internal/store"
	"github.com/example/folio/internal/swaggerui"
)

// Deps are the collaborators a Server needs. Store and Media are required;
// the rest fall back to inert defaults.
type Deps struct {
	Store    *store.Store
	Media    *media.Manager
	Mailer   mailer.Sender
	Events   events.Publisher
	Bus      *events.Bus
	APIKeys  *APIKeyStore
	Sessions *SessionStore
	Logger   *slog.Logger
}

type Server struct {
	cfg        *config.Config
	store      *store.Store
	media      *media.Manager
	mailer     mailer.Sender
	events     events.Publisher
	bus        *events.Bus
	apiKeys    *APIKeyStore
	sessions   *SessionStore
	validate   *validator.Validate
	logger     *slog.Logger
	bcryptCost int
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		cfg:        cfg,
		store:      deps.Store,
		media:      deps.Media,
		mailer:     deps.Mailer,
		events:     deps.Events,
		bus:        deps.Bus,
		apiKeys:    deps.APIKeys,
		sessions:   deps.Sessions,
		logger:     deps.Logger,
		validate:   newValidator(),
		bcryptCost: bcrypt.DefaultCost,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	if s.mailer == nil {
		s.mailer = mailer.Disabled{}
	}
	if s.events == nil {
		if s.bus != nil {
			s.events = s.bus
		} else {
			s.events = events.Nop{}
		}
	}
	if s.sessions == nil {
		s.sessions = NewSessionStore(cfg.SessionTTL)
	}
	return s
}

func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	return NewServer(cfg, deps).Routes()
}

func (s *Server) Routes() http.Handler {
	cfg := s.cfg
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))

	if len(cfg.CORSAllowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", "X-Api-Key"},
			AllowCredentials: true,
		})
		r.Use(c.Handler)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/healthz", s.GetHealthz)
		r.Get("/readyz", s.GetReadyz)
		r.Get(cfg.OpenAPIPath, s.serveOpenAPI)
		r.Mount(cfg.SwaggerUIPath, swaggerui.Handler(cfg.OpenAPIPath, cfg.SwaggerUIPath))
		r.Get("/uploads/{name}", s.ServeUpload)
	})

	r.Route("/api", func(r chi.Router) {
		// Long-lived stream; kept outside the request timeout.
		r.Get("/events", s.StreamEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/personal-info", s.GetPersonalInfo)
			r.Get("/skills", s.ListSkills)
			r.Get("/projects", s.ListProjects)
			r.Get("/experiences", s.ListExperiences)
			r.Get("/education", s.ListEducation)
			r.Get("/blog/posts", s.ListPublishedPosts)
			r.Get("/blog/posts/{slug}", s.GetPublishedPost)
			r.Post("/contact", s.SendContact)
			r.Post("/auth/login", s.Login)

			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware())

				r.Post("/auth/logout", s.Logout)
				r.Get("/auth/me", s.Me)
				r.With(s.requirePermissions(PermAdminsManage)).Post("/auth/register", s.Register)

				r.Group(func(r chi.Router) {
					r.Use(s.requirePermissions(PermContentWrite))
					r.Put("/personal-info", s.UpdatePersonalInfo)
					r.Post("/personal-info", s.UpdatePersonalInfo)

					r.Post("/skills", s.CreateSkill)
					r.Post("/skills/reorder", s.ReorderSkills)
					r.Put("/skills/{id}", s.UpdateSkill)

					r.Post("/projects", s.CreateProject)
					r.Post("/projects/reorder", s.ReorderProjects)
					r.Put("/projects/{id}", s.UpdateProject)

					r.Post("/experiences", s.CreateExperience)
					r.Post("/experiences/reorder", s.ReorderExperiences)
					r.Put("/experiences/{id}", s.UpdateExperience)

					r.Post("/education", s.CreateEducation)
					r.Post("/education/reorder", s.ReorderEducation)
					r.Put("/education/{id}", s.UpdateEducation)

					r.Get("/admin/blog/posts", s.ListAllPosts)
					r.Post("/admin/blog/posts", s.CreatePost)
					r.Put("/admin/blog/posts/{id}", s.UpdatePost)
				})

				r.Group(func(r chi.Router) {
					r.Use(s.requirePermissions(PermContentDelete))
					r.Delete("/skills/{id}", s.DeleteSkill)
					r.Delete("/projects/{id}", s.DeleteProject)
					r.Delete("/experiences/{id}", s.DeleteExperience)
					r.Delete("/education/{id}", s.DeleteEducation)
					r.Delete("/admin/blog/posts/{id}", s.DeletePost)
				})

				r.With(s.requirePermissions(PermMediaUpload)).Post("/upload", s.Upload)
			})
		})

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		})
	})

	if cfg.StaticDir != "" {
		r.NotFound(s.serveStatic)
	}

	return r
}

func (s *Server) serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.Spec)
}

func (s *Server) GetHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

func (s *Server) GetReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", map[string]any{"error": err.Error()})
		return
	}
	if err := s.media.IsWritable(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "storage not writable", map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Health{Status: Ok})
}

// publish signals a content change. Delivery failures never fail the
// request that caused them.
func (s *Server) publish(ctx context.Context, t events.Type, resource string, id int64) {
	if err := s.events.Publish(ctx, events.New(t, resource, id)); err != nil {
		s.logger.Warn("publish event", "type", t, "resource", resource, "id", id, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	writeJSON(w, status, Error{Code: code, Message: message, Details: details})
}

// writeStoreError maps store sentinels onto HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", what+" not found", nil)
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "conflict", what+" already exists", nil)
	default:
		s.logger.Error("store", "what", what, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error", map[string]any{"error": err.Error()})
	}
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start).String(),
			)
		})
	}
}
