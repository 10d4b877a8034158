package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/memetics"
	"github.com/nidhogg/ideoscope/internal/semantics"
	"github.com/nidhogg/ideoscope/internal/session"
	"github.com/nidhogg/ideoscope/internal/source"
	"github.com/nidhogg/ideoscope/internal/textstat"
	"github.com/nidhogg/ideoscope/internal/thought"
	"github.com/nidhogg/ideoscope/internal/vecmath"
)

// Options tunes the expensive semantic panels.
type Options struct {
	Volume     semantics.VolumeOptions
	Projection semantics.TSNEOptions
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	sessions *session.Manager
	opts     Options
	logger   *zap.Logger

	// volumes memoizes the Monte-Carlo estimate of each session's
	// current snapshot.
	volumes  map[string]volumeEntry
	volumeMu sync.Mutex
}

type volumeEntry struct {
	fetched time.Time
	volume  semantics.Volume
}

// NewHandler creates a new API handler.
func NewHandler(sessions *session.Manager, opts Options, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		volumes:  make(map[string]volumeEntry),
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Post("/sessions", h.createSession)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/refresh", h.refreshSession)
			r.Delete("/", h.deleteSession)

			// Memetics
			r.Get("/memetics/birth-rate", h.birthRate)
			r.Get("/memetics/population", h.population)
			r.Get("/memetics/calendar", h.calendar)
			r.Get("/memetics/fittest", h.fittest)
			r.Get("/memetics/pyramid", h.pyramid)
			r.Get("/memetics/variability", h.variability)
			r.Get("/memetics/drift", h.drift)
			r.Get("/memetics/fitness", h.fitness)

			// Linguistics
			r.Get("/linguistics/interests", h.interests)
			r.Get("/linguistics/{metric}", h.linguistic)

			// Semantics
			r.Get("/semantics/projection", h.projection)
			r.Get("/semantics/spectrum", h.spectrum)
			r.Get("/semantics/volume", h.volume)
		})
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "ideoscope"})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Summary())
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Summary())
}

func (h *Handler) refreshSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.forgetVolume(s.ID)
	writeJSON(w, http.StatusOK, s.Summary())
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.forgetVolume(id)
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} path parameter, writing the error response
// itself when it fails.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return s, true
}

// granularity reads ?granularity=, defaulting to week.
func granularity(r *http.Request) (bucket.Granularity, error) {
	v := r.URL.Query().Get("granularity")
	if v == "" {
		return bucket.Week, nil
	}
	g, ok := bucket.ParseGranularity(v)
	if !ok {
		return 0, badRequest(fmt.Errorf("unknown granularity %q", v))
	}
	return g, nil
}

// intParam reads a positive integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, badRequest(fmt.Errorf("%s must be a positive integer", name))
	}
	return n, nil
}

type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return requestError{err} }

// statusFor maps engine and glue errors to HTTP status codes.
func statusFor(err error) int {
	var reqErr requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, source.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, thought.ErrNoData),
		errors.Is(err, textstat.ErrInsufficientText),
		errors.Is(err, memetics.ErrDegenerateFitness),
		errors.Is(err, semantics.ErrNoVariance),
		errors.Is(err, semantics.ErrNothingExplored),
		errors.Is(err, thought.ErrFutureThought),
		errors.Is(err, thought.ErrDimensionMismatch),
		errors.Is(err, thought.ErrUnknownModality),
		errors.Is(err, vecmath.ErrDegenerateVector),
		errors.Is(err, vecmath.ErrDimensionMismatch),
		errors.Is(err, vecmath.ErrNoVectors):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
