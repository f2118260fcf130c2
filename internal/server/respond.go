package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/chunkgraph/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeDependencyOrder, errors.ErrCodeDuplicateModule,
		errors.ErrCodeMissingModule, errors.ErrCodeMissingProvide,
		errors.ErrCodeUnassignedInput, errors.ErrCodeNoCommonModule:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, StatusFor(code), errorResponse{Code: code, Error: err.Error()})
}
