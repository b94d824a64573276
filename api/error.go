package api

import (
	"encoding/json"
	"net/http"
)

type ErrorCode string

const (
	AlreadyExists    ErrorCode = "AlreadyExists"
	AuthError        ErrorCode = "AuthError"
	EmptyBody        ErrorCode = "EmptyBody"
	Forbidden        ErrorCode = "Forbidden"
	InternalError    ErrorCode = "InternalError"
	InvalidBody      ErrorCode = "InvalidBody"
	InvalidCursor    ErrorCode = "InvalidCursor"
	InvalidFilter    ErrorCode = "InvalidFilter"
	InvalidID        ErrorCode = "InvalidId"
	LimitOutOfBounds ErrorCode = "LimitOutOfBounds"
	NameRequired     ErrorCode = "NameRequired"
	NotFound         ErrorCode = "NotFound"
)

type Error struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
}

func (a *API) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		a.logger.Error("failed to marshal response body", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "internal server error", "code": "InternalError"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBody)
}

func (a *API) writeError(w http.ResponseWriter, statusCode int, code ErrorCode, message string) {
	a.writeJSON(w, statusCode, Error{Message: message, Code: code})
}
