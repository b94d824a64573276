package profiles

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_PROFILE_DOES_NOT_EXIST          ErrorReason = "PROFILE_DOES_NOT_EXIST"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_WRITE_CONFLICT                  ErrorReason = "WRITE_CONFLICT"
	REASON_TIMEOUT                         ErrorReason = "TIMEOUT"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newProfileError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newProfileError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newProfileError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewProfileDoesNotExistError(message string, cause error) *Error {
	return newProfileError(REASON_PROFILE_DOES_NOT_EXIST, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newProfileError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewWriteConflictError(message string, cause error) *Error {
	return newProfileError(REASON_WRITE_CONFLICT, message, cause)
}

func NewTimeoutError(message string) *Error {
	return newProfileError(REASON_TIMEOUT, message, nil)
}
