package ping

import (
	"context"
	"errors"
	"fmt"
	"mcstatus/internal/models"
	"net"
	"os"
	"strings"
)

var (
	// ErrDNSLookup means the address could not be resolved; retrying will not help.
	ErrDNSLookup = errors.New("dns lookup failed")
	// ErrIO is a connection level failure such as a refused or reset connection.
	ErrIO = errors.New("i/o failure")
	// ErrTimeout means the server did not answer within the probe budget.
	ErrTimeout = errors.New("connection timed out")
	// ErrMalformed means the server answered with something that is not a status response.
	ErrMalformed = errors.New("malformed response")
)

// ProbeError is returned by every ProbeInterface implementation. Kind is one
// of the Err* sentinels and is matched by errors.Is.
type ProbeError struct {
	Protocol models.ProtocolType
	Kind     error
	Err      error
}

func (e *ProbeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Protocol, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Protocol, e.Kind, e.Err)
}

func (e *ProbeError) Is(target error) bool {
	return target == e.Kind
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

func malformed(protocol models.ProtocolType, format string, args ...interface{}) *ProbeError {
	return &ProbeError{Protocol: protocol, Kind: ErrMalformed, Err: fmt.Errorf(format, args...)}
}

// classify turns a network error into a ProbeError of the matching kind.
func classify(protocol models.ProtocolType, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe
	}

	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &dnsErr) && !dnsErr.IsTimeout:
		return &ProbeError{Protocol: protocol, Kind: ErrDNSLookup, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return &ProbeError{Protocol: protocol, Kind: ErrTimeout, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &ProbeError{Protocol: protocol, Kind: ErrTimeout, Err: err}
	default:
		return &ProbeError{Protocol: protocol, Kind: ErrIO, Err: err}
	}
}

// RaceError aggregates the failures of every protocol tried in an auto race.
type RaceError struct {
	Errs []error
}

func (e *RaceError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "no protocol returned a valid response: " + strings.Join(msgs, "; ")
}

func (e *RaceError) Unwrap() []error {
	return e.Errs
}
