// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/recipelog/pkg/httpx"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
)

// Writer writes JSON error responses. In production the text of 5xx errors
// is replaced by the status text so transport details stay in the logs.
type Writer struct {
	Production bool
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Validation errors also carry their ordered messages.
// Defaults to 500 Internal Server Error for unrecognized errors.
func (wr Writer) WriteError(w http.ResponseWriter, err error) {
	status := Status(err)
	if msgs := recipedomain.ValidationMessages(err); len(msgs) > 0 {
		httpx.JSON(w, status, map[string]any{
			"error":    "Validation failed",
			"messages": msgs,
		})
		return
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, wr.Production))
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, recipedomain.ErrRecipeNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, recipedomain.ErrSubmitInProgress):
		return http.StatusConflict // 409
	case errors.Is(err, recipedomain.ErrInvalidRecipe):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, recipedomain.ErrStoreUnavailable):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
