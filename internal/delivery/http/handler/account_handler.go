package handler

import (
	"net/http"

	"beedical/internal/delivery/dto"
	"beedical/internal/usecase"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/sirupsen/logrus"
)

// AccountHandler serves the account settings pages: preferences and the
// activity journal
type AccountHandler struct {
	preferenceUsecase usecase.PreferenceUsecase
	activityUsecase   usecase.ActivityUsecase
	validator         *validator.CustomValidator
	log               *logrus.Logger
}

func NewAccountHandler(
	preferenceUsecase usecase.PreferenceUsecase,
	activityUsecase usecase.ActivityUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *AccountHandler {
	return &AccountHandler{
		preferenceUsecase: preferenceUsecase,
		activityUsecase:   activityUsecase,
		validator:         validator,
		log:               log,
	}
}

func (h *AccountHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferenceUsecase.GetPreferences(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Preferences retrieved successfully", prefs)
}

func (h *AccountHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePreferencesRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	prefs, err := h.preferenceUsecase.UpdatePreferences(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Preferences updated successfully", prefs)
}

func (h *AccountHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activityUsecase.ListMyActivity(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Activity retrieved successfully", activity)
}
