package handler

import (
	"net/http"

	"beedical/internal/delivery/dto"
	"beedical/internal/usecase"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/sirupsen/logrus"
)

type VerificationHandler struct {
	verificationUsecase usecase.VerificationUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewVerificationHandler(verificationUsecase usecase.VerificationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *VerificationHandler {
	return &VerificationHandler{
		verificationUsecase: verificationUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req dto.SendVerificationCodeRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	result, err := h.verificationUsecase.SendCode(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Verification code sent", result)
}

func (h *VerificationHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckVerificationCodeRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	result, err := h.verificationUsecase.CheckCode(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Verification code accepted", result)
}
