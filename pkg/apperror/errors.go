package apperror

import (
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

// ---- Payment Protocol (X402) ----
//
// Every proof rejection is definitive for the submitted proof; nothing in
// this family is retryable with the same bytes.

func ErrPaymentRequired() *AppError {
	return New("X402_000", "Payment required", http.StatusPaymentRequired)
}

func ErrMalformedEncoding(err error) *AppError {
	return Wrap("X402_001", "Payment header is not valid base64", http.StatusPaymentRequired, err)
}

func ErrMalformedPayload(err error) *AppError {
	return Wrap("X402_002", "Payment payload is not valid JSON", http.StatusPaymentRequired, err)
}

func ErrUnsupportedVersion(got int) *AppError {
	return New("X402_003", fmt.Sprintf("Unsupported x402 version: %d", got), http.StatusPaymentRequired)
}

func ErrUnsupportedScheme(got string) *AppError {
	return New("X402_004", fmt.Sprintf("Unsupported payment scheme: %q", got), http.StatusPaymentRequired)
}

func ErrUnsupportedNetwork(got string) *AppError {
	return New("X402_005", fmt.Sprintf("Unsupported payment network: %q", got), http.StatusPaymentRequired)
}

func ErrReplayedProof() *AppError {
	return New("X402_006", "Payment proof has already been used", http.StatusPaymentRequired)
}

func ErrMissingSettlementRef() *AppError {
	return New("X402_007", "Payment payload carries no settlement transaction hash", http.StatusPaymentRequired)
}

func ErrSettlementRejected(err error) *AppError {
	return Wrap("X402_008", "Settlement verification failed", http.StatusPaymentRequired, err)
}

func ErrPriceNotConfigured() *AppError {
	return New("X402_009", "No price is configured for this resource", http.StatusForbidden)
}

// ---- Catalog (CAT) ----

func ErrStrategyNotFound() *AppError {
	return New("CAT_001", "Strategy not found", http.StatusNotFound)
}

// ---- Wallet (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("SYS_002", "Replay ledger unavailable", http.StatusServiceUnavailable, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
