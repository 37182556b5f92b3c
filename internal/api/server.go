package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/donor/internal/donation"
)

// FlowFactory starts a new donation session per request.
type FlowFactory func() *donation.Flow

type Server struct {
	router        *chi.Mux
	httpServer    *http.Server
	newFlow       FlowFactory
	schemaVersion string
	maxUpload     int64
}

func NewServer(port int, newFlow FlowFactory, schemaVersion string, maxUploadBytes int64) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:        router,
		httpServer:    &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router},
		newFlow:       newFlow,
		schemaVersion: schemaVersion,
		maxUpload:     maxUploadBytes,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/donor/status", s.status)
		r.Post("/extract", s.extract)
		r.Post("/sample", s.sample)
	})

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown is called, then returns http.ErrServerClosed.
func (s *Server) Start() error {
	slog.Info("API server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":         "donor",
		"questionnaire": s.schemaVersion,
	})
}

// extract handles POST /api/v1/extract with the export zip in the "file"
// multipart field.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, "archive too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "archive too large")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	result := s.newFlow().Extract(bytes.NewReader(data), int64(len(data)))
	writeJSON(w, http.StatusOK, result)
}

// sample handles POST /api/v1/sample with the donated records as a JSON
// array of objects.
func (s *Server) sample(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var donated []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&donated); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, s.newFlow().Questionnaires(donated))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
