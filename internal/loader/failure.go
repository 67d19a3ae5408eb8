package loader

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureDecode    FailureKind = "decode"
)

var (
	errNullDocument  = errors.New("response document is null")
	errTrailingData  = errors.New("unexpected data after response document")
	errUnexpectedEnd = errors.New("empty response body")
)

// LoadFailure is the only error class of a load attempt. It never leaves
// Load as an error value; it rides along the fallback Result instead.
type LoadFailure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (f *LoadFailure) Error() string {
	switch f.Kind {
	case FailureStatus:
		return fmt.Sprintf("unexpected status code: %d", f.StatusCode)
	case FailureDecode:
		return fmt.Sprintf("failed to decode response: %v", f.Err)
	default:
		return fmt.Sprintf("failed to send request: %v", f.Err)
	}
}

func (f *LoadFailure) Unwrap() error {
	return f.Err
}
