package models

import (
	"errors"
	"fmt"
)

var (
	// ErrJarNotFound means the jar list had no entry with the requested sendId.
	ErrJarNotFound = errors.New("jar not found for sendId")
	// ErrNotConfigured means a required secret is missing on the server.
	ErrNotConfigured = errors.New("server is not configured")
	// ErrHistoryDisabled means no queryable snapshot backend is configured.
	ErrHistoryDisabled = errors.New("history is not enabled")
	// ErrMissingSendID means the request did not name a jar.
	ErrMissingSendID = errors.New("missing sendId")
	// ErrMissingFields means a contact message lacks a required field.
	ErrMissingFields = errors.New("all fields are required")
	// ErrUnknownSource means no jar source is registered under the given name.
	ErrUnknownSource = errors.New("unknown jar source")
)

// ConfigError names the missing setting.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("server is not configured (%s)", e.Setting)
}

// Is matches ErrNotConfigured.
func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}

// UpstreamError reports a failed call to a third-party service. Status is the
// HTTP status returned by the service, or 0 when the call never completed.
type UpstreamError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Service, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Service, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return e.Service + ": upstream failure"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is an *UpstreamError and returns it.
func IsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
