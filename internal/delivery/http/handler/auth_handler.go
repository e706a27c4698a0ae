package handler

import (
	"net/http"

	"beedical/internal/usecase"
	"beedical/pkg/response"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		log:         log,
	}
}

// SyncUser is called by the front end right after sign-in with the provider
func (h *AuthHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.authUsecase.SyncUser(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	status := http.StatusOK
	if result.FirstLogin {
		status = http.StatusCreated
	}
	response.Success(w, status, "User synchronized successfully", result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUsecase.Logout(r.Context()); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}
