package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/example/murojaahbot/internal/progress"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// maxEntries bounds the sessions of POST /totals
	maxEntries = 100
	// maxBodyBytes bounds every request body; 100 sessions fit well below it
	maxBodyBytes = 32 << 10
)

// Server exposes the progress calculator over HTTP
type Server struct {
	http *http.Server
}

// New creates a server listening on addr
func New(addr string) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter builds the route table
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(maxBodyBytes))
		r.Post("/preview", preview)
		r.Post("/totals", totals)
	})
	return r
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// sessionInput is one session as sent by clients
type sessionInput struct {
	Target     progress.Range    `json:"target"`
	SelesaiEnd progress.Position `json:"selesai_end"`
}

func (in sessionInput) validate() error {
	if err := progress.ValidateRange(in.Target); err != nil {
		return err
	}
	return progress.ValidateCompleted(in.Target, in.SelesaiEnd)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func preview(w http.ResponseWriter, r *http.Request) {
	var req sessionInput
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.validate(); err != nil {
		respondValidation(w, err)
		return
	}

	respondJSON(w, progress.Evaluate(req.Target, req.SelesaiEnd), http.StatusOK)
}

func totals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sessions []sessionInput `json:"sessions"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Sessions) > maxEntries {
		respondError(w, "too many sessions", http.StatusRequestEntityTooLarge)
		return
	}

	entries := make([]progress.Entry, len(req.Sessions))
	for i, s := range req.Sessions {
		if err := s.validate(); err != nil {
			respondValidation(w, err)
			return
		}
		entries[i] = progress.Entry{Target: s.Target, CompletedEnd: s.SelesaiEnd}
	}

	t := progress.DailyTotals(entries)
	respondJSON(w, struct {
		progress.Totals
		Persentase float64 `json:"persentase"`
	}{t, t.Percent()}, http.StatusOK)
}

// decodeBody reads the JSON body into v and answers the request on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	respondError(w, "invalid request body", http.StatusBadRequest)
	return false
}

func respondValidation(w http.ResponseWriter, err error) {
	var verr *progress.ValidationError
	if !errors.As(err, &verr) {
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, map[string]string{
		"error": verr.Message(),
		"kind":  verr.Kind.String(),
		"field": verr.Field,
	}, http.StatusUnprocessableEntity)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
