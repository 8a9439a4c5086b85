package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ConfigurationError reports a resource the caller asked for that is not available,
// such as a stopword list for an unsupported language.
type ConfigurationError struct {
	Resource string
	Err      error // optional underlying cause
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "configuration: missing resource " + e.Resource + ": " + e.Err.Error()
	}
	return "configuration: missing resource " + e.Resource
}

// Unwrap lets errors.Is match ErrInvalidConfig as well as the underlying cause.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

// Missing builds a ConfigurationError for the named resource; it matches
// ErrNotFound.
func Missing(resource string) error {
	return &ConfigurationError{Resource: resource, Err: ErrNotFound}
}
