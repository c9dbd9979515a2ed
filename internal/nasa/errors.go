package nasa

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure so the HTTP layer can pick a status.
type Kind string

const (
	KindNetwork        Kind = "network"
	KindTimeout        Kind = "timeout"
	KindRateLimited    Kind = "rate_limited"
	KindUpstreamStatus Kind = "upstream_status"
	KindMalformed      Kind = "malformed"
	KindCircuitOpen    Kind = "circuit_open"
)

// FetchError is returned by every Client method. It is never retried by
// callers; the client already retried what was retryable.
type FetchError struct {
	Kind       Kind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %v", e.Endpoint, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err carries a *FetchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

func malformed(endpoint string, format string, args ...any) *FetchError {
	return &FetchError{Kind: KindMalformed, Endpoint: endpoint, Err: fmt.Errorf(format, args...)}
}
