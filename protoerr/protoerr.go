// Package protoerr defines the error types the protocol layer raises when
// a client violates the wire format, as distinct from ordinary I/O errors
// (connection reset, EOF) that the transport layer already reports via the
// standard error interface.
//
// Grounded in claspymc's exception hierarchy (original_source/claspymc),
// which distinguishes a malformed-but-parseable packet (ProtocolError) from
// a well-formed packet carrying a value outside its legal range
// (IllegalData), e.g. an encryption response whose verify token does not
// match the one sent, although the bytes themselves were cleanly framed.
package protoerr

import "fmt"

// ProtocolError reports a violation of the wire format or of the
// connection's liveness rules: a compressed-packet Data Length inside
// (0, threshold), or a keepalive left unanswered past its timeout.
// Packet IDs with no handler in the current state are not errors; the
// server logs and ignores them.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "protocol error: " + e.Msg }

// NewProtocolError builds a ProtocolError with a formatted message.
func NewProtocolError(format string, args ...any) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

// IllegalData reports a well-formed packet whose content is not
// acceptable: a shared secret or verify token that fails the encryption
// handshake, a session the session server does not confirm, a movement
// step beyond the speed check. It is a kind of ProtocolError: errors.As
// matches an IllegalData as a *ProtocolError too.
type IllegalData struct {
	Msg string
}

func (e *IllegalData) Error() string { return "illegal data: " + e.Msg }

// Unwrap returns the ProtocolError view of e, carrying the same message.
func (e *IllegalData) Unwrap() error { return &ProtocolError{Msg: e.Msg} }

// NewIllegalData builds an IllegalData with a formatted message.
func NewIllegalData(format string, args ...any) *IllegalData {
	return &IllegalData{Msg: fmt.Sprintf(format, args...)}
}
