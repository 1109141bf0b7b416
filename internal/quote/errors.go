package quote

import (
	"errors"
	"fmt"
)

// ExternalServiceError reports a failed call to a price provider: non-success
// status, missing credential, or a response missing an expected field.
// Message may contain raw provider text; it is meant for internal logs and
// must never be shown to end users.
type ExternalServiceError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("quote: %s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("quote: %s: %s", e.Provider, e.Message)
}

// Code identifies the error class for structured log lines.
func (e *ExternalServiceError) Code() string { return "EXTERNAL_SERVICE" }

// IsExternal reports whether err is a provider failure.
func IsExternal(err error) bool {
	var ese *ExternalServiceError
	return errors.As(err, &ese)
}
