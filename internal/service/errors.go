package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidCredentials is returned when a password check fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotApproved is returned when an unapproved account tries to log in
	ErrNotApproved = errors.New("account is pending admin approval")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrEventNotActive is returned when enrolling in an event that is not
	// approved or has already been conducted
	ErrEventNotActive = errors.New("event is not open for enrollment")

	// ErrNoSheetLink is returned when an event has no linked workbook yet
	ErrNoSheetLink = errors.New("event has no project sheet linked")

	// ErrNoReportLink is returned when a project has no report to question
	ErrNoReportLink = errors.New("project has no report link")

	// ErrCandidateNotFound is returned when evaluating a student who has
	// not enrolled in the event
	ErrCandidateNotFound = errors.New("candidate has no submission in this event")

	// ErrQADisabled is returned when no Gemini API key is configured
	ErrQADisabled = errors.New("report question answering is not configured")
)
