package handler

import (
	"net/http"

	"beedical/internal/delivery/dto"
	"beedical/internal/usecase"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetMyProfile(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *ProfileHandler) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertProfileRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	profile, err := h.profileUsecase.UpsertMyProfile(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", profile)
}
