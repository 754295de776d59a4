// Package response writes JSON responses.
//
// Success payloads are written raw (no envelope): the marketplace frontend
// consumes store results and acknowledgment objects directly, so wrapping
// them would break existing callers. Errors always carry a {message} body.
package response

import (
	"encoding/json"
	"net/http"
)

type errBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 with v as the raw body.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created sends a 201 with v as the raw body.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Error sends a JSON error response: {"message": ...}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errBody{Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, validationBody{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message ...string) {
	msg := "Forbidden"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusForbidden, msg)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusNotFound, msg)
}
