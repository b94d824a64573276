package sessions

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_SESSION_DOES_NOT_EXIST          ErrorReason = "SESSION_DOES_NOT_EXIST"
	REASON_SESSION_ALREADY_EXISTS          ErrorReason = "SESSION_ALREADY_EXISTS"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_NAME_REQUIRED                   ErrorReason = "NAME_REQUIRED"
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

func newSessionError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newSessionError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newSessionError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewSessionDoesNotExistError(message string, cause error) *Error {
	return newSessionError(REASON_SESSION_DOES_NOT_EXIST, message, cause)
}

func NewSessionAlreadyExistsError(message string, cause error) *Error {
	return newSessionError(REASON_SESSION_ALREADY_EXISTS, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newSessionError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewNameRequiredError(message string) *Error {
	return newSessionError(REASON_NAME_REQUIRED, message, nil)
}

func NewTimeoutError(message string) *Error {
	return newSessionError(REASON_TIMEOUT, message, nil)
}
