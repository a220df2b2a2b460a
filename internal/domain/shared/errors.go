package shared

// DomainError is an error with a stable machine-readable code. The HTTP
// layer maps codes to status lines; handlers never match on message text.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel errors shared across aggregates. Aggregate-specific rule
// violations use NewDomainError with their own codes instead.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrAccountLocked       = NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
	ErrDuplicateSubmission = NewDomainError("DUPLICATE_SUBMISSION", "This request was already processed")
)
