package domain

import "errors"

// Domain-specific errors for lookup and ingest validation.
var (
	// Lookup errors
	ErrIndexNotReady = errors.New("index not loaded yet")
	ErrNoTractFound  = errors.New("point not inside any tract")
	ErrTractNotFound = errors.New("tract not found")

	// Validation errors
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidPointPair  = errors.New("point must be a [lat, lon] pair")
	ErrTooManyPoints     = errors.New("too many points in bulk request")
	ErrInvalidGeometry   = errors.New("invalid tract geometry")
	ErrInvalidIngest     = errors.New("invalid ingest feed")
	ErrInvalidScores     = errors.New("invalid score map")
	ErrEmptyIngest       = errors.New("ingest contains no tracts")

	// Auth errors
	ErrInvalidToken  = errors.New("invalid admin token")
	ErrAdminDisabled = errors.New("admin endpoints disabled")
)
