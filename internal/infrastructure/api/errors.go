package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx API response. Message carries whatever the server put in
// the "message" or "error" field of the JSON body, so the UI can surface the
// server's own wording.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// newError extracts the server's message from an error response body
func newError(status int, raw []byte) *Error {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Err != "" {
			msg = body.Err
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{Status: status, Message: msg}
}

// IsStatus reports whether err is an API error with the given status
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
