package apperrors

import "errors"

// Data-integrity errors. They mean stored data or the writing code broke an
// invariant and are never retried.
var (
	ErrCorruptCredentialState = errors.New("corrupt credential state")
	ErrSerialization          = errors.New("structured value is not serializable")
	ErrDeserialization        = errors.New("stored structured value is not valid JSON")
	ErrValueTooLarge          = errors.New("encoded value exceeds column width")
)

// Resource errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidationFailed   = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSocialIDTaken      = errors.New("social id already linked")
)

// Rating and comment errors
var (
	ErrRatingTargetNotFound = errors.New("rating target not found")
	ErrParentCommentInvalid = errors.New("parent comment not found in this course")
)

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsIntegrity reports whether err is one of the data-integrity errors.
func IsIntegrity(err error) bool {
	return Is(err, ErrCorruptCredentialState, ErrSerialization, ErrDeserialization, ErrValueTooLarge)
}

// CustomError carries an application error with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}
