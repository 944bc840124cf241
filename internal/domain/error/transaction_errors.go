// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionMissingFields is returned when required fields are missing.
	ErrTransactionMissingFields = errors.New("missing required fields")

	// ErrInvalidDirection is returned when the transaction direction is not credit or debit.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrEmptyImport is returned when a bulk import contains no rows.
	ErrEmptyImport = errors.New("import contains no transactions")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010001"
	ErrCodeTransactionMissingFields TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidDirection         TransactionErrorCode = "TXN-010003"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyImport              TransactionErrorCode = "TXN-010005"

	// Infrastructure errors (02XXXX)
	ErrCodeTransactionInternalError TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
