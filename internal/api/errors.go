package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nchouhan/ogni-scan/internal/db"
	"github.com/nchouhan/ogni-scan/internal/llm"
)

// Error categories let the client suggest a concrete remedy instead of
// showing a generic failure string.
const (
	CategoryBadRequest   = "bad_request"
	CategoryUnauthorized = "unauthorized"
	CategoryNotFound     = "not_found"
	CategoryUpstream     = "upstream_unavailable"
	CategoryInternal     = "internal"
)

type APIError struct {
	Status   int    `json:"-"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func BadRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Category: CategoryBadRequest, Message: msg}
}

func Unauthorized(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Category: CategoryUnauthorized, Message: msg}
}

func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Category: CategoryNotFound, Message: msg}
}

func Upstream(msg string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Category: CategoryUpstream, Message: msg}
}

func Internal(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Category: CategoryInternal, Message: msg}
}

// toAPIError folds pipeline errors into category-distinguishable ones.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, db.ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, llm.ErrUpstreamUnavailable), errors.Is(err, context.DeadlineExceeded):
		return Upstream("the model service did not respond in time; retry later")
	default:
		return Internal(err.Error())
	}
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
