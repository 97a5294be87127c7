package service

import "errors"

var (
	// ErrReportNotFound is returned when analysis targets a report that does not exist
	ErrReportNotFound = errors.New("report not found")

	// ErrAnalysisInProgress is returned when a report is already being analyzed
	ErrAnalysisInProgress = errors.New("report analysis already in progress")

	// ErrInvalidMetric is returned when a logged metric is outside its range
	ErrInvalidMetric = errors.New("invalid metric value")

	// ErrInvalidInput is returned when a new record is missing required fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailRequired is returned when the digest is requested without a user email
	ErrEmailRequired = errors.New("user email is required")
)
