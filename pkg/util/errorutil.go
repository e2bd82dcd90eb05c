package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic and sentinel errors to a DomainError.
//
// The auth sentinels map to distinct outcomes: a failed credential check is
// 401, inactive/not-set/unverified accounts are 403 with their own codes so
// clients can tell the user what to do, and role rejection is plain 403.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return NewDomainError("UNAUTHORIZED", "invalid credentials", http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewDomainError("ACCOUNT_NOT_FOUND", "invalid credentials - email not found", http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrAccountInactive):
		return NewDomainError("ACCOUNT_INACTIVE", "account is inactive", http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrCredentialsNotSet):
		return NewDomainError("CREDENTIALS_NOT_SET",
			"account exists but password not set, please contact an administrator to reset your password",
			http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrAccountNotVerified):
		return NewDomainError("ACCOUNT_NOT_VERIFIED",
			"account not verified, please verify your account using the OTP code sent to your email",
			http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrForbidden):
		return NewDomainError("FORBIDDEN", "insufficient permissions", http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrInvalidOrExpiredCode):
		return NewDomainError("INVALID_OTP", "invalid or expired OTP code", http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrDuplicateAccount):
		return NewDomainError("DUPLICATE_ACCOUNT", "email already registered", http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrRoleNotFound):
		return NewDomainError("ROLE_NOT_FOUND", "role not found", http.StatusNotFound, nil)
	case errors.Is(err, domain.ErrRoleInactive):
		return NewDomainError("ROLE_INACTIVE", "role is not active", http.StatusBadRequest, nil)
	case errors.Is(err, pgx.ErrNoRows):
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}

	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
