package api

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"claimsview/internal/records"
	"claimsview/internal/screens"
)

// errInvalidParam marks malformed query parameters
var errInvalidParam = errors.New("invalid parameter")

var resourceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// validateResourceName checks a resource name before it is looked up
func validateResourceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("resource cannot be empty: %w", errInvalidParam)
	}
	if !resourceNamePattern.MatchString(name) {
		return fmt.Errorf("resource %q must be lowercase letters, digits, '-' or '_': %w", name, errInvalidParam)
	}
	return nil
}

// handleError converts service errors to HTTP status codes and messages
func handleError(err error) (statusCode int, message string) {
	switch {
	case errors.Is(err, errInvalidParam), errors.Is(err, screens.ErrInvalidChange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, records.ErrUnknownResource):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, screens.ErrScreenNotFound):
		return http.StatusNotFound, "Screen not found"
	case errors.Is(err, records.ErrRecordNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.Is(err, records.ErrStaleResponse):
		return http.StatusConflict, "Snapshot changed since it was read, reload and retry"
	}

	// Default to internal server error
	return http.StatusInternalServerError, "Internal server error"
}
