package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypePrecondition ErrorType = "PRECONDITION_FAILED"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"
	ErrCodeDuplicateID      ErrorCode = "DUPLICATE_ID"

	ErrCodeUserNotFound            ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmployeeNotFound        ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeProductNotFound         ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeSupplierNotFound        ErrorCode = "SUPPLIER_NOT_FOUND"
	ErrCodeWorkshopNotFound        ErrorCode = "WORKSHOP_NOT_FOUND"
	ErrCodeOrderNotFound           ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeQuoteNotFound           ErrorCode = "QUOTE_NOT_FOUND"
	ErrCodeReturnNotFound          ErrorCode = "RETURN_NOT_FOUND"
	ErrCodeBlogPostNotFound        ErrorCode = "BLOG_POST_NOT_FOUND"
	ErrCodeNotificationNotFound    ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeWorkshopFull            ErrorCode = "WORKSHOP_FULL"
	ErrCodeWorkshopCompleted       ErrorCode = "WORKSHOP_COMPLETED"
	ErrCodeCapacityBelowEnrollment ErrorCode = "CAPACITY_BELOW_ENROLLMENT"
	ErrCodeAdminRoleReserved       ErrorCode = "ADMIN_ROLE_RESERVED"
	ErrCodeUnknownRole             ErrorCode = "UNKNOWN_ROLE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewPreconditionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypePrecondition,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound     = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrEmployeeNotFound = NewNotFoundError("employee not found", ErrCodeEmployeeNotFound)
	ErrProductNotFound  = NewNotFoundError("product not found", ErrCodeProductNotFound)
	ErrSupplierNotFound = NewNotFoundError("supplier not found", ErrCodeSupplierNotFound)
	ErrWorkshopNotFound = NewNotFoundError("workshop not found", ErrCodeWorkshopNotFound)
	ErrOrderNotFound    = NewNotFoundError("order not found", ErrCodeOrderNotFound)
	ErrQuoteNotFound    = NewNotFoundError("quote not found", ErrCodeQuoteNotFound)
	ErrReturnNotFound   = NewNotFoundError("return not found", ErrCodeReturnNotFound)
	ErrBlogPostNotFound = NewNotFoundError("blog post not found", ErrCodeBlogPostNotFound)

	ErrWorkshopFull            = NewPreconditionError("workshop is at full capacity", ErrCodeWorkshopFull)
	ErrWorkshopCompleted       = NewPreconditionError("workshop is already completed", ErrCodeWorkshopCompleted)
	ErrCapacityBelowEnrollment = NewPreconditionError("maxCapacity cannot drop below current enrollment", ErrCodeCapacityBelowEnrollment)
	ErrAdminRoleReserved       = NewPreconditionError("admin permissions are fixed and cannot be edited", ErrCodeAdminRoleReserved)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
