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
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeItemNotFound    = "ITEM_NOT_FOUND"
	ErrCodeCouponRejected  = "COUPON_REJECTED"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule rejection with a stable code. It is
// produced locally (caller contract violations) or decoded from the
// remote authority's error body (e.g. a rejected coupon).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrItemNotFound    = NewDomainError(ErrCodeItemNotFound, "Cart item not found")
	ErrCouponRejected  = NewDomainError(ErrCodeCouponRejected, "Coupon code was rejected")
)

// TransportError means the remote cart service could not be reached or
// answered outside the 2xx range: the call never produced an
// authoritative cart state. The engine treats it as the trigger for
// the local fallback path.
type TransportError struct {
	Op     string // gateway operation that failed, e.g. "addItem"
	Status int    // HTTP status, 0 when the request never completed
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote cart %s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("remote cart %s failed: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a transport error for a failed gateway call.
func NewTransportError(op string, status int, cause error) *TransportError {
	return &TransportError{Op: op, Status: status, Cause: cause}
}
