// internal/domain/token/errors.go
package token

// ------------------------------------------------------
// Failure taxonomy
// ------------------------------------------------------

// FailureKind is the closed set of failure classifications surfaced to
// callers. Every failed creation maps to exactly one kind.
type FailureKind string

const (
	FailureValidation          FailureKind = "validation_failed"
	FailureInsufficientFunds   FailureKind = "insufficient_funds"
	FailureTransactionTooLarge FailureKind = "transaction_too_large"
	FailureBlockhashExpired    FailureKind = "blockhash_expired"
	FailureNetwork             FailureKind = "network_error"
	FailureUnclassified        FailureKind = "unclassified"
)

// Retryable reports whether a caller may retry the whole request as-is.
// Validation and size failures need changed input; insufficient funds
// needs operator action.
func (k FailureKind) Retryable() bool {
	return k == FailureBlockhashExpired || k == FailureNetwork
}

// CreationError is a classified creation failure. Message is user-facing;
// the underlying cause stays reachable through Unwrap for logging.
type CreationError struct {
	Kind    FailureKind
	Message string

	cause error
}

func NewError(kind FailureKind, message string, cause error) *CreationError {
	return &CreationError{Kind: kind, Message: message, cause: cause}
}

func (e *CreationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CreationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}
