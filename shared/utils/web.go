package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode maps err to a status code and writes it as plain text.
// Anything not recognised is an internal error; its text is not leaked.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var withStatus *errors.ErrorWithStatusCode
	var validation *errors.ValidationError
	var notFound *errors.NotFoundError
	switch {
	case errors.As(err, &withStatus):
		http.Error(w, withStatus.Message, withStatus.StatusCode)
	case errors.As(err, &validation):
		http.Error(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Error(), http.StatusNotFound)
	default:
		logger.Log.Error("internal error", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &errors.ErrorWithStatusCode{Message: fmt.Sprintf("Body is larger than %d bytes", tooLarge.Limit), StatusCode: http.StatusRequestEntityTooLarge}
		}
		logger.Log.Debug("decoding body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("validating body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}
