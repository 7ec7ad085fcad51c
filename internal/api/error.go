package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a backend failure carrying the message from the response body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 backend error.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody mirrors the backend error envelope. Detail is usually a string,
// but validation failures send a structured list, so it is kept raw.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseError builds an *Error from a non-2xx response body.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			e.Detail = s
		} else {
			e.Detail = strings.TrimSpace(string(eb.Detail))
		}
	}
	return e
}
