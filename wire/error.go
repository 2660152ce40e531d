package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is wrapped by every error caused by a
	// message that violates the structure of the wire protocol.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrPeerClosed is returned when the remote end closes the
	// connection cleanly between messages.
	ErrPeerClosed = errors.New("peer closed connection")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %v", ErrMalformedPayload, fmt.Sprintf(format, args...))
}

// UnknownOpError is returned by Object.Dispatch if it is given a
// message with an invalid opcode.
type UnknownOpError struct {
	Interface string
	Type      string
	Op        uint16
}

func (err UnknownOpError) Error() string {
	return fmt.Sprintf("unknown %v opcode for %v: %v", err.Type, err.Interface, err.Op)
}

// UnknownSenderIDError is returned by an attempt to dispatch an
// incoming message that indicates a method call on an object that the
// State doesn't know about.
type UnknownSenderIDError struct {
	Msg *Message
}

func (err UnknownSenderIDError) Error() string {
	return fmt.Sprintf("unknown sender object ID: %v", err.Msg.Sender())
}

// InvalidEnumError is returned when a value does not belong to the
// enum or bitfield that an argument is declared with. It matches
// ErrMalformedPayload.
type InvalidEnumError struct {
	Enum  string
	Value uint32
}

func (err InvalidEnumError) Error() string {
	return fmt.Sprintf("%v: invalid value for %v: %#x", ErrMalformedPayload, err.Enum, err.Value)
}

func (err InvalidEnumError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// ProtocolError is a fatal error reported by the remote end via
// wl_display.error. The code is defined by the interface of the
// object with the given ID.
type ProtocolError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on object %v: code %v: %v", err.ObjectID, err.Code, err.Message)
}

// IOError wraps a failure of the underlying socket. A Conn that has
// returned an IOError is no longer usable.
type IOError struct {
	Op  string
	Err error
}

func (err *IOError) Error() string {
	return fmt.Sprintf("%v: %v", err.Op, err.Err)
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// UnknownObjectError is recorded by ReadObject when a message refers
// to an object ID that has no live object.
type UnknownObjectError struct {
	ID uint32
}

func (err UnknownObjectError) Error() string {
	return fmt.Sprintf("unknown object ID: %v", err.ID)
}
