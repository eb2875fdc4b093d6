package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeStorage       = "STORAGE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuery   = NewDomainError(ErrCodeValidation, "query cannot be empty")
	ErrEmptyInsight = NewDomainError(ErrCodeValidation, "insight cannot be empty")
	ErrInvalidURL   = NewDomainError(ErrCodeValidation, "URL must start with http:// or https:// and include a host")
	ErrMissingField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrKnowledgeItemNotFound = NewDomainError(ErrCodeNotFound, "knowledge item not found")
	ErrDocumentNotFound      = NewDomainError(ErrCodeNotFound, "document not found")
)

// Upstream errors
var (
	ErrFetchFailed  = NewDomainError(ErrCodeUpstream, "failed to fetch URL")
	ErrSearchFailed = NewDomainError(ErrCodeUpstream, "web search failed")
)

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	domainErr, ok := err.(*DomainError)
	return ok && domainErr.Code == ErrCodeNotFound
}
