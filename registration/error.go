package registration

import "fmt"

type ErrorReason string

const (
	REASON_FAILED_TO_FETCH             ErrorReason = "FAILED_TO_FETCH"
	REASON_FAILED_TO_WRITE             ErrorReason = "FAILED_TO_WRITE"
	REASON_CONFERENCE_DOES_NOT_EXIST   ErrorReason = "CONFERENCE_DOES_NOT_EXIST"
	REASON_SESSION_DOES_NOT_EXIST      ErrorReason = "SESSION_DOES_NOT_EXIST"
	REASON_ALREADY_REGISTERED          ErrorReason = "ALREADY_REGISTERED"
	REASON_NO_SEATS_AVAILABLE          ErrorReason = "NO_SEATS_AVAILABLE"
	REASON_SESSION_ALREADY_IN_WISHLIST ErrorReason = "SESSION_ALREADY_IN_WISHLIST"
	REASON_WRITE_CONFLICT              ErrorReason = "WRITE_CONFLICT"
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

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewConferenceDoesNotExistError(message string, cause error) *Error {
	return newRegistrationError(REASON_CONFERENCE_DOES_NOT_EXIST, message, cause)
}

func NewSessionDoesNotExistError(message string, cause error) *Error {
	return newRegistrationError(REASON_SESSION_DOES_NOT_EXIST, message, cause)
}

func NewAlreadyRegisteredError(message string) *Error {
	return newRegistrationError(REASON_ALREADY_REGISTERED, message, nil)
}

func NewNoSeatsAvailableError(message string) *Error {
	return newRegistrationError(REASON_NO_SEATS_AVAILABLE, message, nil)
}

func NewSessionAlreadyInWishlistError(message string) *Error {
	return newRegistrationError(REASON_SESSION_ALREADY_IN_WISHLIST, message, nil)
}

func NewWriteConflictError(message string, cause error) *Error {
	return newRegistrationError(REASON_WRITE_CONFLICT, message, cause)
}
