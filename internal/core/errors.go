package core

import (
	"errors"
	"net/http"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/grading"
)

// StatusCode maps a service error to an HTTP status. selectionStatus is used
// for unknown selections: 404 when the id came from the path, 400 otherwise.
func StatusCode(err error, selectionStatus int) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrUnknownSelection):
		return selectionStatus
	case errors.Is(err, grading.ErrInvalidMeasurement):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrImageDecode), errors.Is(err, grading.ErrNotMeasurable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
