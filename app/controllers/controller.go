// Package controllers maps HTTP requests onto the services. Controllers
// bind and validate input, translate typed service errors to status codes,
// and never touch the store directly.
package controllers

import (
	"errors"
	"net/http"

	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/pkg/logger"
	"github.com/hometech/server/pkg/response"
)

// storeError translates a repository error to a response. Failures are
// always surfaced to the caller, never swallowed into an empty 200.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Error("store operation failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Internal server error")
}

// bindError responds to a body that failed to decode or validate.
func bindError(w http.ResponseWriter, errs map[string]string, err error) {
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.ValidationError(w, errs)
}
