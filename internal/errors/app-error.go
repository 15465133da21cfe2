package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// RoomNotFound is a client error: unknown room number, no retry.
func RoomNotFound() *AppError {
	return NewAppError(http.StatusNotFound, "room not found", "room-number")
}

// UserNotFound is propagated from the account collaborator.
func UserNotFound() *AppError {
	return NewAppError(http.StatusNotFound, "cannot find user", "user-id")
}
