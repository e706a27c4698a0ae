package handler

import (
	"net/http"

	"beedical/internal/delivery/dto"
	"beedical/internal/usecase"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
	log           *logrus.Logger
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator, log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
		log:           log,
	}
}

// SearchDoctors filters on ?query= (name or specialty) and ?location=
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	req := dto.SearchDoctorsRequest{
		Query:    r.URL.Query().Get("query"),
		Location: r.URL.Query().Get("location"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctors, err := h.doctorUsecase.SearchDoctors(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.doctorUsecase.ListCities(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Cities retrieved successfully", cities)
}

func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.doctorUsecase.ListSpecialties(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}
