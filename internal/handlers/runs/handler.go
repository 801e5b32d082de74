package runs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/services/results"
	"gitlab.com/markorv.net/isaharness/internal/handlers/response"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// RunHandler handles run API requests
type RunHandler struct {
	resultService results.IResultService
	logger        primary.Logger
}

func NewRunHandler(resultService results.IResultService, logger primary.Logger) *RunHandler {
	return &RunHandler{
		resultService: resultService,
		logger:        logger,
	}
}

// RegisterRoutes registers the run routes behind the given middleware
func (h *RunHandler) RegisterRoutes(router *mux.Router, middleware mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/runs").Subrouter()
	api.Use(middleware)
	api.HandleFunc("", h.ListRuns).Methods("GET")
	api.HandleFunc("/{runId}", h.GetRun).Methods("GET")
	api.HandleFunc("/{runId}/cases", h.GetOutcomes).Methods("GET")
	api.HandleFunc("/{runId}/progress", h.GetProgress).Methods("GET")
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.resultService.ListRuns(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteSuccess(w, runs)
}

func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFrom(w, r)
	if !ok {
		return
	}
	run, err := h.resultService.GetRun(r.Context(), runID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteSuccess(w, run)
}

func (h *RunHandler) GetOutcomes(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFrom(w, r)
	if !ok {
		return
	}
	outcomes, err := h.resultService.GetOutcomes(r.Context(), runID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteSuccess(w, outcomes)
}

func (h *RunHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFrom(w, r)
	if !ok {
		return
	}
	progress, err := h.resultService.GetProgress(r.Context(), runID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteSuccess(w, progress)
}

func runIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	runID, err := uuid.Parse(mux.Vars(r)["runId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid run ID")
		return uuid.Nil, false
	}
	return runID, true
}

func (h *RunHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrRunNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, results.ErrProgressUnavailable):
		response.Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("Failed to serve run request", "error", err)
		response.Error(w, http.StatusInternalServerError, errs.InternalError.Error())
	}
}
