package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Document acquisition errors
	CodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
	CodeCorruptedDocument   ErrorCode = "CORRUPTED_DOCUMENT"
	CodePasswordProtected   ErrorCode = "PASSWORD_PROTECTED"
	CodeEncodingError       ErrorCode = "ENCODING_ERROR"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeAllStrategiesFailed ErrorCode = "ALL_EXTRACTION_STRATEGIES_FAILED"

	// Quiz generation errors
	CodeInvalidQuizRequest ErrorCode = "INVALID_QUIZ_REQUEST"
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

func (e *DomainError) Unwrap() error {
	return e.Cause
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

// WithContext attaches a detail entry that the HTTP layer forwards to clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err (or anything it wraps) is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

func NewUnsupportedFileTypeError(contentType string) *DomainError {
	return NewError(CodeUnsupportedFileType, fmt.Sprintf("Unsupported file type: %s", contentType), nil).
		WithContext("hint", "upload a PDF, Word document, markdown or plain text file")
}

func NewFileTooLargeError(size, limit int) *DomainError {
	return NewError(CodeFileTooLarge, fmt.Sprintf("File is %d bytes, the limit is %d bytes", size, limit), nil).
		WithContext("limit_bytes", limit)
}

func NewCorruptedDocumentError(cause error) *DomainError {
	return NewError(CodeCorruptedDocument, "The document is corrupted or could not be decoded", cause).
		WithContext("hint", "re-save the document or try converting it to plain text")
}

func NewPasswordProtectedError() *DomainError {
	return NewError(CodePasswordProtected, "The document is password protected or encrypted", nil).
		WithContext("hint", "remove the password protection and upload again")
}

func NewEncodingError(cause error) *DomainError {
	return NewError(CodeEncodingError, "The text could not be decoded as UTF-8 or Windows-1252", cause).
		WithContext("hint", "save the file with UTF-8 encoding")
}

func NewInsufficientContentError(characters, words int) *DomainError {
	return NewError(CodeInsufficientContent,
		fmt.Sprintf("Extracted text is too short (%d characters, %d words); at least 50 characters and 10 words are required", characters, words), nil).
		WithContext("hint", "provide a longer document or paste more text")
}

func NewAllStrategiesFailedError(attempts []string) *DomainError {
	return NewError(CodeAllStrategiesFailed, "No extraction strategy could read text from the PDF", nil).
		WithContext("attempts", attempts).
		WithContext("hint", "the PDF may be scanned images; try converting it to plain text")
}

func NewInvalidQuizRequestError(errs ValidationErrors) *DomainError {
	return NewError(CodeInvalidQuizRequest, "Invalid quiz generation request", errs).
		WithContext("errors", []ValidationError(errs))
}
