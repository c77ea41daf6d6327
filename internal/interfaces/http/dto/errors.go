package dto

import "net/http"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. It covers both
// the generic ERR_ codes and the domain codes raised by the ledger and
// billing packages; domain codes pass through to clients unchanged.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeConflict:   http.StatusConflict,

	// Lookup failures and duplicates
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Invalid input -> 400 Bad Request
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_TITLE":      http.StatusBadRequest,
	"INVALID_AMOUNT":     http.StatusBadRequest,
	"INVALID_UNIT_COST":  http.StatusBadRequest,
	"INVALID_DIMENSIONS": http.StatusBadRequest,
	"INVALID_PAYMENT":    http.StatusBadRequest,
	"INVALID_DATE_RANGE": http.StatusBadRequest,
	"BILLEE_AMBIGUOUS":   http.StatusBadRequest,
	"BILLEE_MISSING":     http.StatusBadRequest,
	"PHONE_MISMATCH":     http.StatusBadRequest,

	// Business rule violations -> 422 Unprocessable Entity
	"OVERPAYMENT":        http.StatusUnprocessableEntity,
	"COMPANY_HAS_ORDERS": http.StatusUnprocessableEntity,
	"INVOICE_TOO_LARGE":  http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,

	// Invoice rendering is not configured on this deployment
	"INVOICE_DISABLED": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
