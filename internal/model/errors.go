package model

import "errors"

// Common errors used across the application
var (
	// Point errors
	ErrPointNotFound     = errors.New("point not found")
	ErrPointNameRequired = errors.New("point name is required")
	ErrPointNameTooLong  = errors.New("point name is too long")
	ErrInvalidCoordinate = errors.New("coordinates must be integers")

	// Lifecycle errors
	ErrPointAlreadyPending = errors.New("point is already pending approval")
	ErrPointAlreadyPublic  = errors.New("point is already public")
	ErrPointNotPending     = errors.New("point is not awaiting approval")

	// Permission errors
	ErrSessionRequired     = errors.New("missing session code")
	ErrSessionCodeRequired = errors.New("session code is required")
	ErrNotPointOwner       = errors.New("no permission for this point")
	ErrAdminRequired       = errors.New("admin permissions required")
	ErrOwnerRequired       = errors.New("owner permissions required")

	// Registry errors
	ErrSessionNotAllowed       = errors.New("session code is not authorized for admin login")
	ErrInvalidAdminCode        = errors.New("invalid admin code")
	ErrSessionAlreadyAllowed   = errors.New("session code is already on the allowed list")
	ErrAllowedSessionNotFound  = errors.New("session code not found on the allowed list")
	ErrSessionNotOnAllowedList = errors.New("session code is not on the allowed list")
)
