package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so
// errors.Is(err, apperror.ErrBankMismatch()) works across fresh instances.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Code extracts the error code from err, or "" when err is not an AppError.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Ledger instructions (LED) ----

func ErrAddressMismatch(role string) *AppError {
	return New("LED_001", fmt.Sprintf("%s address does not match its derived address", role), http.StatusBadRequest)
}

func ErrAlreadyInitialized(role string) *AppError {
	return New("LED_002", fmt.Sprintf("%s is already initialized", role), http.StatusConflict)
}

func ErrNotInitialized(role string) *AppError {
	return New("LED_003", fmt.Sprintf("%s is not initialized", role), http.StatusNotFound)
}

func ErrUnauthorizedSigner() *AppError {
	return New("LED_004", "Signer is not the store bank", http.StatusForbidden)
}

func ErrBankMismatch() *AppError {
	return New("LED_005", "Bank does not match the store bank", http.StatusUnprocessableEntity)
}

func ErrDestinationMismatch() *AppError {
	return New("LED_006", "Destination is not the store owner", http.StatusUnprocessableEntity)
}

func ErrInsufficientFunds() *AppError {
	return New("LED_007", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("LED_008", "Invalid amount", http.StatusBadRequest)
}

// ---- Security & Authentication (SEC) ----

func ErrMissingSigner() *AppError {
	return New("SEC_001", "Missing or malformed signer headers", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

// ---- Operator (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrFaucetDisabled() *AppError {
	return New("AUTH_005", "Faucet is disabled", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrUnavailable(feature string) *AppError {
	return New("SYS_002", fmt.Sprintf("%s is not available on this deployment", feature), http.StatusServiceUnavailable)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
