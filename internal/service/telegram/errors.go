package telegram

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a Bot API reply with ok=false.
type APIError struct {
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.ErrorCode, e.Description)
}

// IsAPIError reports whether the Bot API answered but rejected the call.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// redactedError hides the bot token, which transport errors carry inside the request URL.
type redactedError struct {
	err    error
	secret string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.secret, "<redacted>")
}

func (e *redactedError) Unwrap() error {
	return e.err
}
