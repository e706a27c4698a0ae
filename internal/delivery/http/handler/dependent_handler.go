package handler

import (
	"net/http"

	"beedical/internal/delivery/dto"
	"beedical/internal/usecase"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DependentHandler struct {
	dependentUsecase usecase.DependentUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewDependentHandler(dependentUsecase usecase.DependentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *DependentHandler {
	return &DependentHandler{
		dependentUsecase: dependentUsecase,
		validator:        validator,
		log:              log,
	}
}

func (h *DependentHandler) AddDependent(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDependentRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	dependent, err := h.dependentUsecase.AddDependent(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Dependent added successfully", dependent)
}

func (h *DependentHandler) ListDependents(w http.ResponseWriter, r *http.Request) {
	dependents, err := h.dependentUsecase.ListDependents(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Dependents retrieved successfully", dependents)
}

func (h *DependentHandler) GetDependent(w http.ResponseWriter, r *http.Request) {
	dependentID, ok := pathID(w, r, "id", "dependent")
	if !ok {
		return
	}

	dependent, err := h.dependentUsecase.GetDependent(r.Context(), dependentID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Dependent retrieved successfully", dependent)
}

func (h *DependentHandler) UpdateDependent(w http.ResponseWriter, r *http.Request) {
	dependentID, ok := pathID(w, r, "id", "dependent")
	if !ok {
		return
	}

	var req dto.UpdateDependentRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	dependent, err := h.dependentUsecase.UpdateDependentProfile(r.Context(), dependentID, &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Dependent updated successfully", dependent)
}

func (h *DependentHandler) RemoveDependent(w http.ResponseWriter, r *http.Request) {
	dependentID, ok := pathID(w, r, "id", "dependent")
	if !ok {
		return
	}

	if err := h.dependentUsecase.RemoveDependent(r.Context(), dependentID); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Dependent removed successfully", nil)
}
