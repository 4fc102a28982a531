package domain

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"url":      "Must be a valid URL",
	"oneof":    "Must be one of the allowed values",
	"numeric":  "Must be a numeric value",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "https://demotrack.pragyanai.dev/errors/validation"
	ErrorTypeBadRequest   = "https://demotrack.pragyanai.dev/errors/bad-request"
	ErrorTypeUnauthorized = "https://demotrack.pragyanai.dev/errors/unauthorized"
	ErrorTypeForbidden    = "https://demotrack.pragyanai.dev/errors/forbidden"
	ErrorTypeNotFound     = "https://demotrack.pragyanai.dev/errors/not-found"
	ErrorTypeConflict     = "https://demotrack.pragyanai.dev/errors/conflict"
	ErrorTypeInternal     = "https://demotrack.pragyanai.dev/errors/internal"
)
