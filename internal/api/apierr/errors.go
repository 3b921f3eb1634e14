package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/waymarkd/waymark/internal/model"
)

// ErrorResponse is the JSON body returned for every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidName            = "INVALID_NAME"
	CodeInvalidCoordinates     = "INVALID_COORDINATES"
	CodeSessionRequired        = "SESSION_REQUIRED"
	CodeNotPointOwner          = "NOT_POINT_OWNER"
	CodeAdminRequired          = "ADMIN_REQUIRED"
	CodeOwnerRequired          = "OWNER_REQUIRED"
	CodePointNotFound          = "POINT_NOT_FOUND"
	CodeAlreadyPending         = "ALREADY_PENDING"
	CodeAlreadyPublic          = "ALREADY_PUBLIC"
	CodeNotPending             = "NOT_PENDING"
	CodeSessionNotAllowed      = "SESSION_NOT_ALLOWED"
	CodeInvalidAdminCode       = "INVALID_ADMIN_CODE"
	CodeAlreadyAllowed         = "ALREADY_ALLOWED"
	CodeAllowedSessionNotFound = "ALLOWED_SESSION_NOT_FOUND"
	CodeNotOnAllowedList       = "NOT_ON_ALLOWED_LIST"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an error body
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPointNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{CodePointNotFound, "Point not found."}}
	case errors.Is(err, model.ErrPointNameRequired):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidName, "Point name is required."}}
	case errors.Is(err, model.ErrPointNameTooLong):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidName, "Point name must be at most 100 characters."}}
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidCoordinates, "Coordinates must be integers."}}
	case errors.Is(err, model.ErrPointAlreadyPending):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeAlreadyPending, "Point is already pending approval."}}
	case errors.Is(err, model.ErrPointAlreadyPublic):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeAlreadyPublic, "Point is already public."}}
	case errors.Is(err, model.ErrPointNotPending):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeNotPending, "Point is not awaiting approval."}}
	case errors.Is(err, model.ErrSessionRequired):
		return &httpError{http.StatusUnauthorized, ErrorResponse{CodeSessionRequired, "Missing session code."}}
	case errors.Is(err, model.ErrSessionCodeRequired):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidRequest, "Session code is required."}}
	case errors.Is(err, model.ErrNotPointOwner):
		return &httpError{http.StatusForbidden, ErrorResponse{CodeNotPointOwner, "No permission for this point."}}
	case errors.Is(err, model.ErrAdminRequired):
		return &httpError{http.StatusForbidden, ErrorResponse{CodeAdminRequired, "Admin permissions required."}}
	case errors.Is(err, model.ErrOwnerRequired):
		return &httpError{http.StatusForbidden, ErrorResponse{CodeOwnerRequired, "Owner permissions required."}}
	case errors.Is(err, model.ErrSessionNotAllowed):
		return &httpError{http.StatusForbidden, ErrorResponse{CodeSessionNotAllowed, "Your session code is not authorized for admin login."}}
	case errors.Is(err, model.ErrInvalidAdminCode):
		return &httpError{http.StatusUnauthorized, ErrorResponse{CodeInvalidAdminCode, "Invalid admin code."}}
	case errors.Is(err, model.ErrSessionAlreadyAllowed):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeAlreadyAllowed, "This session code is already on the allowed list."}}
	case errors.Is(err, model.ErrAllowedSessionNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{CodeAllowedSessionNotFound, "Session code not found on the list."}}
	case errors.Is(err, model.ErrSessionNotOnAllowedList):
		return &httpError{http.StatusBadRequest, ErrorResponse{CodeNotOnAllowedList, "This session code is not on the allowed list. Add it to allowed sessions first."}}

	default:
		// Storage and other unexpected failures stay generic to the caller
		return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error."}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates a missing-session error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, ErrorResponse{CodeSessionRequired, "Missing session code."}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{CodeInternalError, "Internal server error."}}
}
