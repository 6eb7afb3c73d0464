// Package server exposes a content store and progress service over
// HTTP/JSON for remote tango clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/tango/internal/api"
	"github.com/abhisek/tango/internal/auth"
	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/vocab"
)

// Deps are the services the HTTP API fronts.
type Deps struct {
	Content  content.Store
	Progress progress.Service
	History  progress.History
	Signer   *auth.Signer
	Logger   *slog.Logger
}

// NewRouter builds the chi router for the API.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handler{content: d.Content, progress: d.Progress, history: d.History}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(tracing)

	r.Get(api.PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate(d.Signer))

		r.Get("/topics", h.listTopics)
		r.Get("/topics/{id}/items", h.topicItems)
		r.Get("/review", h.review)
		r.Post("/tests", h.generateTest)

		r.Get("/sessions", h.listSessions)
		r.Post("/sessions", h.startSession)
		r.Post("/sessions/{id}/answers", h.submitAnswer)
		r.Post("/sessions/{id}/end", h.endSession)
	})
	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type handler struct {
	content  content.Store
	progress progress.Service
	history  progress.History
}

func (h *handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.content.Topics(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if topics == nil {
		topics = []vocab.Topic{}
	}
	respondJSON(w, http.StatusOK, api.TopicsResponse{Topics: topics})
}

func (h *handler) topicItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ItemsByTopic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondItems(w, items)
}

func (h *handler) review(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.DueForReview(r.Context(), userID(r.Context()))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondItems(w, items)
}

func (h *handler) generateTest(w http.ResponseWriter, r *http.Request) {
	var req content.TestRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request", err)
		return
	}
	items, err := h.content.GenerateTest(r.Context(), req)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondItems(w, items)
}

func (h *handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req progress.StartRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request", err)
		return
	}
	// The token decides whose session this is.
	req.UserID = userID(r.Context())

	id, err := h.progress.StartSession(r.Context(), req)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, api.StartSessionResponse{SessionID: id})
}

func (h *handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var a progress.Answer
	if err := decodeAndValidate(w, r, &a); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := h.progress.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), a); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) endSession(w http.ResponseWriter, r *http.Request) {
	var e progress.End
	if err := decodeAndValidate(w, r, &e); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := h.progress.EndSession(r.Context(), chi.URLParam(r, "id"), e); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, r, http.StatusNotImplemented, "history not available", nil)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, r, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}
	recs, err := h.history.RecentSessions(r.Context(), userID(r.Context()), limit)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if recs == nil {
		recs = []progress.SessionRecord{}
	}
	respondJSON(w, http.StatusOK, api.SessionsResponse{Sessions: recs})
}

func respondItems(w http.ResponseWriter, items []vocab.StudyItem) {
	if items == nil {
		items = []vocab.StudyItem{}
	}
	respondJSON(w, http.StatusOK, api.ItemsResponse{Items: items})
}
