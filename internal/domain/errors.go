package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Core pipeline failures. They are terminal for the current request and are
// never retried internally.
var (
	// ErrDecode is returned when the input bytes cannot be decoded as an image.
	ErrDecode = errors.New("image could not be decoded")
	// ErrEmptyForeground is returned when thresholding leaves no ink pixels.
	ErrEmptyForeground = errors.New("no foreground pixels found")
	// ErrInsufficientContent is returned when not a single question could be produced.
	ErrInsufficientContent = errors.New("text has insufficient usable content")
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeDecode              ErrorCode = "DECODE_ERROR"
	CodeEmptyForeground     ErrorCode = "EMPTY_FOREGROUND"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeOCRFailed           ErrorCode = "OCR_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is works against the core sentinels.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a detail entry that is returned to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewOCRFailedError(err error) *DomainError {
	return NewError(CodeOCRFailed, "OCR failed to extract text. Ensure the image contains readable text.", err)
}

// FromPipelineError translates the core sentinels into coded errors. Anything
// unrecognised becomes an internal error.
func FromPipelineError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	switch {
	case errors.Is(err, ErrDecode):
		return NewError(CodeDecode, "Failed to load the image. Ensure it is a valid image file.", err)
	case errors.Is(err, ErrEmptyForeground):
		return NewError(CodeEmptyForeground, "No text was detected in the image.", err)
	case errors.Is(err, ErrInsufficientContent):
		return NewError(CodeInsufficientContent,
			"Failed to generate quiz questions. The text might be too short or not contain enough meaningful content.", err)
	default:
		return NewInternalError("Unexpected pipeline failure", err)
	}
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors; it is returned as a single error.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + v[0].Error()
	default:
		return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Error(), len(v)-1)
	}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Code: CodeMissingField, Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Code: CodeInvalidFormat, Field: field, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("value must be between %d and %d", min, max),
		Value:   value,
	}
}
