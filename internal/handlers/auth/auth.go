package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/services/auth"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/handlers/response"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

type Handler struct {
	authService auth.IAuthService
	logger      primary.Logger
}

func NewHandler(authService auth.IAuthService, logger primary.Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/token", h.Token).Methods("POST")
}

// Token exchanges the API account credentials for a bearer token
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, errs.UsernameMissing):
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, errs.InvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
		return
	default:
		h.logger.Error("Failed to issue token", "error", err)
		response.Error(w, http.StatusInternalServerError, errs.InternalError.Error())
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: token})
}
