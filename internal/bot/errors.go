package bot

import "fmt"

// UsageError reports malformed command arguments. The user already received
// a localized usage hint; the error carries the detail for handler logs.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("bot: %s: %s", e.Command, e.Reason)
}

func (e *UsageError) Code() string { return "USER_INPUT" }

// NoSessionError reports a wallet command from a user who never ran /start.
type NoSessionError struct {
	UserID int64
}

func (e *NoSessionError) Error() string {
	return fmt.Sprintf("bot: no session for user %d", e.UserID)
}

func (e *NoSessionError) Code() string { return "SESSION_NOT_FOUND" }
