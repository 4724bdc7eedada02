package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeCategoryInUse     = "CATEGORY_IN_USE"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeStore             = "STORE_ERROR"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeSnapshotsDisabled = "SNAPSHOTS_DISABLED"
)

// SQLSTATE reported by the store when a foreign key constraint is violated.
const sqlStateForeignKeyViolation = "23503"

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code and message, so wrapped
// copies produced by NewValidationError compare by value.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for a rejected input field.
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrCategoryNameRequired = NewValidationError("category name is required")
	ErrProductNameRequired  = NewValidationError("product name is required")
	ErrCategoryInUse        = NewDomainError(ErrCodeCategoryInUse, "category is still assigned to products")
	ErrCategoryNotFound     = NewDomainError(ErrCodeCategoryNotFound, "category not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrSnapshotsDisabled    = NewDomainError(ErrCodeSnapshotsDisabled, "snapshot export is not configured")
)

// StoreError wraps a transport or constraint failure returned by the store.
type StoreError struct {
	Op    string // "list", "insert" or "delete"
	Table string
	Code  string // SQLSTATE when the store reported one
	Err   error
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store %s on %s failed (sqlstate %s): %v", e.Op, e.Table, e.Code, e.Err)
	}
	return fmt.Sprintf("store %s on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ForeignKeyViolation reports whether the store rejected the operation
// because of a foreign key constraint.
func (e *StoreError) ForeignKeyViolation() bool {
	return e.Code == sqlStateForeignKeyViolation
}
