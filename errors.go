package main

import (
	"errors"
	"fmt"
)

// Upstream failure categories. Handlers map each one to a distinguishable
// user-visible message; all of them are recoverable at the tool-call boundary.
var (
	ErrMissingAPIKey    = errors.New("OpenWeatherMap API key is not configured")
	ErrLocationNotFound = errors.New("location not found")
	ErrAuthFailed       = errors.New("weather API rejected the credential")
	ErrUpstream         = errors.New("weather API request failed")
	ErrBadPayload       = errors.New("unexpected weather API response")
)

// ArgumentError reports a tool argument that failed validation. It is raised
// before any upstream request is made.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}
