package entity

import "errors"

// Domain errors
var (
	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidProject  = errors.New("invalid project data")

	// Store errors
	ErrKeyNotFound = errors.New("key not found")

	// Generation errors
	ErrGenerationFailed = errors.New("generation failed, please retry")
	ErrNoSummary        = errors.New("project summary not available")
	ErrNoDevGuide       = errors.New("project dev guide not available")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
