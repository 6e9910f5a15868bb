package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashbots/otpring/protocol"
	"github.com/flashbots/otpring/services"
)

// RunsHandler exposes the simulation runner over HTTP.
type RunsHandler struct {
	runner *services.Runner
	store  services.ResultStore
	log    *slog.Logger
}

// NewRunsHandler creates a handler executing requests with the given runner
// and reading history from the given store.
func NewRunsHandler(runner *services.Runner, store services.ResultStore, log *slog.Logger) *RunsHandler {
	return &RunsHandler{runner: runner, store: store, log: log}
}

// RegisterRoutes registers the run endpoints with the router.
func (h *RunsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/runs", h.handleCreateRun)
	r.Get("/api/runs", h.handleListRuns)
	r.Get("/api/runs/{id}", h.handleGetRun)
}

// handleCreateRun executes a simulation request and returns its record.
func (h *RunsHandler) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req services.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.runner.Execute(r.Context(), &req)
	if err != nil {
		var cfgErr *protocol.ConfigError
		if errors.As(err, &cfgErr) {
			h.writeError(w, http.StatusBadRequest, cfgErr.Error())
			return
		}
		h.log.Error("run execution failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "run execution failed")
		return
	}

	h.writeJSON(w, http.StatusCreated, record)
}

// handleListRuns returns all persisted runs, newest first.
func (h *RunsHandler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListRuns()
	if err != nil {
		h.log.Error("listing runs failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "listing runs failed")
		return
	}
	// The list endpoint returns summaries only; per-trial results stay on
	// the single-run endpoint.
	out := make([]*services.RunRecord, len(records))
	for i, record := range records {
		trimmed := *record
		trimmed.Results = nil
		out[i] = &trimmed
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleGetRun returns one run with its per-trial results.
func (h *RunsHandler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	record, err := h.store.GetRun(id)
	if errors.Is(err, services.ErrRunNotFound) {
		h.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		h.log.Error("loading run failed", "id", id.String(), "err", err)
		h.writeError(w, http.StatusInternalServerError, "loading run failed")
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

func (h *RunsHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encoding response failed", "err", err)
	}
}

func (h *RunsHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
