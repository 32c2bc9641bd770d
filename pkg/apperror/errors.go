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

// ---- Ledger Business Logic (LED) ----

// ErrInsufficientFunds reports a transfer or burn exceeding the caller's
// spendable balance. Both figures are included so callers can see the gap.
func ErrInsufficientFunds(spendable, requested int64) *AppError {
	return New("LED_001",
		fmt.Sprintf("Insufficient spendable funds: have %d, need %d", spendable, requested),
		http.StatusPaymentRequired)
}

// ErrInvalidAmount covers freeze/unfreeze/decrement/spend requests that
// exceed the available headroom, and non-positive amounts.
func ErrInvalidAmount(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}

// ErrRecordNotFound reports a suspension referencing a record that is
// absent or already fully consumed. Never transient: the caller must
// re-read current record state before retrying.
func ErrRecordNotFound() *AppError {
	return New("LED_003", "Record not found or already fully consumed", http.StatusNotFound)
}

// ErrAlreadySettled reports a freeze attempted on a record past its
// settlement window; only still-unsettled funds may be frozen.
func ErrAlreadySettled() *AppError {
	return New("LED_004", "Record has already settled", http.StatusConflict)
}

func ErrInvalidDestination() *AppError {
	return New("LED_005", "Transfer destination is the zero account", http.StatusBadRequest)
}

func ErrSelfTransfer() *AppError {
	return New("LED_006", "Cannot transfer to the sending account", http.StatusBadRequest)
}

func ErrAccountNotFound() *AppError {
	return New("LED_007", "Account not found", http.StatusNotFound)
}

func ErrEmptyRecordQueue() *AppError {
	return New("LED_008", "Record queue is empty", http.StatusConflict)
}

// ---- Custody / Authority (CUS) ----

// ErrUnauthorized reports a freeze or close-case call by a caller that is
// not the designated recovery authority.
func ErrUnauthorized() *AppError {
	return New("CUS_001", "Caller is not the recovery authority", http.StatusForbidden)
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidAccessKey() *AppError {
	return New("SEC_001", "Invalid access key", http.StatusUnauthorized)
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

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrOperatorSuspended() *AppError {
	return New("AUTH_004", "Operator account is suspended", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a LED_002-style validation error.
func Validation(message string) *AppError {
	return New("LED_002", message, http.StatusBadRequest)
}
