package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"beedical/pkg/apperror"
	"beedical/pkg/response"
	"beedical/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps a usecase error to its HTTP status. Unclassified errors
// become a generic 500; the cause only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Errorf("Request failed: %+v", err)
		response.InternalServerError(w, "")
		return
	}

	switch appErr.Kind {
	case apperror.KindUnauthorized:
		response.Unauthorized(w, appErr.Message)
	case apperror.KindForbidden:
		response.Forbidden(w, appErr.Message)
	case apperror.KindNotFound:
		response.NotFound(w, appErr.Message)
	case apperror.KindInvalidInput:
		response.BadRequest(w, appErr.Message)
	case apperror.KindConflict:
		response.Conflict(w, appErr.Message)
	default:
		log.WithField("path", r.URL.Path).Errorf("Request failed: %+v", err)
		response.InternalServerError(w, "")
	}
}

// decodeBody decodes and validates a JSON body. It writes the 400 itself and
// reports false when the request must stop.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
