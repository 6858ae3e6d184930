package wundahub

import (
	"errors"
	"fmt"
)

// ErrNoRoomAssociation is returned by RoomIdForDevice for a TRV that has not
// been assigned to a room yet. Distinct from an invalid-operation error.
var ErrNoRoomAssociation = errors.New("wundahub: device has no room association")

// TransportError wraps connection-level failures (refused, timeout, DNS).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wundahub: transport error on %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a non-200 status on an otherwise successful connection.
type ProtocolError struct {
	Op         string
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wundahub: %s returned status %d", e.Op, e.StatusCode)
}

// FormatError is a syncvalues payload that cannot be decoded: a line that
// cannot be minimally split, or no hub serial number on any line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("wundahub: bad syncvalues payload at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("wundahub: bad syncvalues payload: %s", e.Reason)
}

// CommandError is a command whose retries are exhausted, or a 200 response
// whose body is not the expected JSON envelope.
type CommandError struct {
	Attempts int
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("wundahub: command failed after %d attempt(s): %s", e.Attempts, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
