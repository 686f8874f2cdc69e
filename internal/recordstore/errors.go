package recordstore

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the record store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("record store: status %d: %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a 401/403 rejection, which callers
// may retry as a raw unauthenticated request.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// IsNotFound reports whether err is a 404 for a missing record.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}
