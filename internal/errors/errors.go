package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	TransactionNotFound ErrorCode = "transaction_not_found"
	CustomerNotFound    ErrorCode = "customer_not_found"
	MerchantNotFound    ErrorCode = "merchant_not_found"
	UserNotFound        ErrorCode = "user_not_found"
	InvalidState        ErrorCode = "invalid_state"
	CustomerInvalid     ErrorCode = "customer_invalid"
	MerchantInvalid     ErrorCode = "merchant_invalid"
	InvalidCard         ErrorCode = "invalid_card"
	InvalidInput        ErrorCode = "invalid_input"
	InvalidAmount       ErrorCode = "invalid_amount"
	DuplicateEmail      ErrorCode = "duplicate_email"
	DuplicateUser       ErrorCode = "duplicate_user"
	Unauthorized        ErrorCode = "unauthorized"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// HTTPStatus maps an error code to the status the handler layer writes.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case TransactionNotFound, CustomerNotFound, MerchantNotFound, UserNotFound:
		return http.StatusNotFound
	case InvalidState:
		return http.StatusConflict
	case DuplicateEmail, DuplicateUser:
		return http.StatusConflict
	case CustomerInvalid, MerchantInvalid, InvalidCard, InvalidInput, InvalidAmount:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrTransactionNotFound = NewAppError(TransactionNotFound, "transaction not found")
	ErrCustomerNotFound    = NewAppError(CustomerNotFound, "customer not found")
	ErrMerchantNotFound    = NewAppError(MerchantNotFound, "merchant not found")
	ErrUserNotFound        = NewAppError(UserNotFound, "user not found")
	ErrInvalidState        = NewAppError(InvalidState, "transaction is not in a processable state")
	ErrCustomerInvalid     = NewAppError(CustomerInvalid, "customer is missing, inactive or has no credit card")
	ErrMerchantInvalid     = NewAppError(MerchantInvalid, "merchant is missing or inactive")
	ErrInvalidCard         = NewAppError(InvalidCard, "credit card hash does not match")
	ErrInvalidAmount       = NewAppError(InvalidAmount, "amount must be a positive value with at most two decimals")
	ErrDuplicateEmail      = NewAppError(DuplicateEmail, "email already registered")
	ErrDuplicateUser       = NewAppError(DuplicateUser, "username already registered")
	ErrUnauthorized        = NewAppError(Unauthorized, "could not validate credentials")
)
