package domain

import "github.com/pkg/errors"

// TransportError marks a remote source failure (network, timeout, bad status,
// parse). It is the only failure kind the remote source can signal; the
// orchestrator answers it with the fallback policy. Store failures are plain
// wrapped errors and are never masked by fallback.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure for operation op.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
