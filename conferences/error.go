package conferences

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_CONFERENCE_DOES_NOT_EXIST       ErrorReason = "CONFERENCE_DOES_NOT_EXIST"
	REASON_CONFERENCE_ALREADY_EXISTS       ErrorReason = "CONFERENCE_ALREADY_EXISTS"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_INVALID_CURSOR                  ErrorReason = "INVALID_CURSOR"
	REASON_INVALID_FILTER                  ErrorReason = "INVALID_FILTER"
	REASON_NAME_REQUIRED                   ErrorReason = "NAME_REQUIRED"
	REASON_NOT_ORGANIZER                   ErrorReason = "NOT_ORGANIZER"
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

func newConferenceError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newConferenceError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newConferenceError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewConferenceAlreadyExistsError(message string, cause error) *Error {
	return newConferenceError(REASON_CONFERENCE_ALREADY_EXISTS, message, cause)
}

func NewConferenceDoesNotExistError(message string, cause error) *Error {
	return newConferenceError(REASON_CONFERENCE_DOES_NOT_EXIST, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newConferenceError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewInvalidCursorError(message string, cause error) *Error {
	return newConferenceError(REASON_INVALID_CURSOR, message, cause)
}

func NewInvalidFilterError(message string, cause error) *Error {
	return newConferenceError(REASON_INVALID_FILTER, message, cause)
}

func NewNameRequiredError(message string) *Error {
	return newConferenceError(REASON_NAME_REQUIRED, message, nil)
}

func NewNotOrganizerError(message string) *Error {
	return newConferenceError(REASON_NOT_ORGANIZER, message, nil)
}

func NewWriteConflictError(message string, cause error) *Error {
	return newConferenceError(REASON_WRITE_CONFLICT, message, cause)
}

func NewTimeoutError(message string) *Error {
	return newConferenceError(REASON_TIMEOUT, message, nil)
}
