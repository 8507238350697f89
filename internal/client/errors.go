package client

import (
	"fmt"
	"net/http"

	"github.com/neexbeast/quest-generator/internal/quest"
)

const (
	msgNetwork = "Unable to connect to the quest server. Please check that the backend is running."
	msgTimeout = "The request timed out while waiting for the quest server. Please try again."
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your quest settings and try again.",
	http.StatusTooManyRequests:     "Too many requests. Please wait a moment and try again.",
	http.StatusInternalServerError: "The AI service encountered an error while generating your quest. Please try again.",
	http.StatusServiceUnavailable:  "The AI service is temporarily unavailable. Please try again later.",
}

// APIError is every failure returned by Client. IsNetworkError is true when
// the server could not be reached (or did not answer in time); StatusCode is
// set when it answered with a non-2xx status.
type APIError struct {
	Message        string
	StatusCode     int
	IsNetworkError bool
	// ServerMessage is the "error" field of the server's envelope, if any.
	ServerMessage string
	// Details are per-field issues from a 400 response.
	Details []quest.Issue
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Title is a short heading for an error panel.
func (e *APIError) Title() string {
	switch {
	case e.IsNetworkError:
		return "Connection Error"
	case e.StatusCode == http.StatusBadRequest:
		return "Invalid Input"
	default:
		return "Generation Failed"
	}
}

// Retryable reports whether sending the same request again could succeed.
// Bad input must be fixed first.
func (e *APIError) Retryable() bool {
	return e.StatusCode != http.StatusBadRequest
}

func statusError(code int, serverMsg string, details []quest.Issue) *APIError {
	msg, ok := statusMessages[code]
	if !ok {
		msg = fmt.Sprintf("Request failed with status %d. Please try again.", code)
	}
	return &APIError{Message: msg, StatusCode: code, ServerMessage: serverMsg, Details: details}
}
