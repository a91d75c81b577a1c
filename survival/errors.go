// Package survival implements the wire codec for the Beta 1.8-era
// "survival" block-game line protocol (protocol version 18): a
// byte buffer, typed primitives, the packet tagged union, and the
// two-phase prober/parser/serializer trio described by the protocol
// design.
package survival

import (
	"errors"
	"fmt"
)

// ErrNeedMore indicates the buffer does not yet hold a complete packet.
// It is never terminal: the caller should wait for more bytes and
// probe again.
var ErrNeedMore = errors.New("survival: need more data")

// ErrMalformed indicates the buffer holds bytes that can never form a
// legal packet (bad type tag, bad metadata sentinel, ...). It is
// terminal: the session must be torn down and the bytes must never be
// reprobed or reparsed.
var ErrMalformed = errors.New("survival: malformed packet")

// ErrUnsupportedOpcode is a distinguished ErrMalformed: the opcode is
// legal on the wire but not for the direction it arrived on. Kept
// separate from the generic ErrMalformed so callers can log a
// different line for a likely protocol-version mismatch, while
// errors.Is(err, ErrMalformed) still reports true.
var ErrUnsupportedOpcode = errors.New("survival: opcode not legal for direction")

// unsupportedOpcodeErr builds an error matching both ErrUnsupportedOpcode
// and ErrMalformed via errors.Is.
func unsupportedOpcodeErr(dir Direction, opcode byte) error {
	return fmt.Errorf("%w: %w: opcode 0x%02X on %s", ErrUnsupportedOpcode, ErrMalformed, opcode, dir)
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}
