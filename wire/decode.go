package wire

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"deedles.dev/wayland/internal/bin"
	"golang.org/x/sys/unix"
)

// Message is a single Wayland message: the header, the payload, and
// the file descriptors that travel alongside it. Messages that are
// received are decoded with the Read methods, which record the first
// error encountered and return zero values after it.
//
// A Message owns its file descriptors. Those that are not taken with
// ReadFile are closed by Close.
type Message struct {
	sender  uint32
	op      uint16
	size    uint16
	data    []byte
	off     int
	fds     []int
	fdindex int
	arrived int
	err     error
	args    []any
}

// ParseMessage decodes a complete message, header included, from
// data. The message takes ownership of fds.
func ParseMessage(data []byte, fds []int) (*Message, error) {
	if len(data) < headerSize {
		return nil, malformed("message of %v bytes is shorter than its header", len(data))
	}

	var header [headerSize]byte
	copy(header[:], data)
	msg := parseHeader(header)
	if err := checkSize(msg.size, 0xFFFF); err != nil {
		return nil, err
	}
	if int(msg.size) != len(data) {
		return nil, malformed("header declares %v bytes but message has %v", msg.size, len(data))
	}

	msg.data = bytes.Clone(data[headerSize:])
	msg.fds = fds
	return msg, nil
}

func parseHeader(header [headerSize]byte) *Message {
	so := bin.Value[uint32]([4]byte(header[4:]))
	return &Message{
		sender: bin.Value[uint32]([4]byte(header[:4])),
		op:     uint16(so & 0xFFFF),
		size:   uint16(so >> 16),
	}
}

func checkSize(size uint16, max int) error {
	switch {
	case size < headerSize:
		return malformed("message size %v is smaller than the header", size)
	case size%4 != 0:
		return malformed("message size %v is not a multiple of 4", size)
	case int(size) > max:
		return malformed("message size %v exceeds maximum of %v", size, max)
	}
	return nil
}

// Sender is the object ID of the sender of the message.
func (r *Message) Sender() uint32 {
	return r.sender
}

// Op is the opcode of the message.
func (r *Message) Op() uint16 {
	return r.op
}

// Size is the total size of the message, including the 8 byte header.
func (r *Message) Size() uint16 {
	return r.size
}

// Payload returns the bytes of the message that follow the header.
func (r *Message) Payload() []byte {
	return r.data
}

// NumFDs returns the number of file descriptors attached to the
// message.
func (r *Message) NumFDs() int {
	return len(r.fds)
}

// MarshalBinary returns the encoded header followed by the payload.
func (r *Message) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, headerSize+len(r.data))
	buf = bin.Append(buf, r.sender)
	buf = bin.Append(buf, uint32(r.size)<<16|uint32(r.op))
	return append(buf, r.data...), nil
}

// Err returns the first error encountered while decoding. If every
// read succeeded but part of the payload was left unread, the message
// was malformed for the signature that it was decoded with.
func (r *Message) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.off < len(r.data) {
		return malformed("%v trailing bytes after arguments", len(r.data)-r.off)
	}
	return nil
}

func (r *Message) next(n uint64) []byte {
	if r.err != nil {
		return nil
	}

	if uint64(len(r.data)-r.off) < n {
		r.err = malformed("read of %v bytes at offset %v overruns %v byte payload", n, r.off, len(r.data))
		return nil
	}

	buf := r.data[r.off : r.off+int(n)]
	r.off += int(n)
	return buf
}

func (r *Message) word() (v uint32, ok bool) {
	buf := r.next(4)
	if buf == nil {
		return 0, false
	}
	return bin.Value[uint32]([4]byte(buf)), true
}

func (r *Message) ReadInt() int32 {
	v, ok := r.word()
	if !ok {
		return 0
	}
	r.args = append(r.args, int32(v))
	return int32(v)
}

func (r *Message) ReadUint() uint32 {
	v, ok := r.word()
	if !ok {
		return 0
	}
	r.args = append(r.args, v)
	return v
}

func (r *Message) ReadFixed() Fixed {
	v, ok := r.word()
	if !ok {
		return 0
	}
	r.args = append(r.args, Fixed(v))
	return Fixed(v)
}

// ReadObject reads an object ID. Unless nullable is true, an ID of
// zero is a decoding error.
func (r *Message) ReadObject(nullable bool) uint32 {
	v, ok := r.word()
	if !ok {
		return 0
	}
	if (v == 0) && !nullable {
		r.err = malformed("null object for non-nullable argument")
		return 0
	}
	r.args = append(r.args, v)
	return v
}

// ReadNewID reads the expanded form of an untyped new_id argument.
func (r *Message) ReadNewID() NewID {
	return NewID{
		Interface: r.ReadString(),
		Version:   r.ReadUint(),
		ID:        r.ReadObject(false),
	}
}

func (r *Message) readString(nullable bool) (string, bool) {
	length, ok := r.word()
	if !ok {
		return "", false
	}
	if length == 0 {
		if !nullable {
			r.err = malformed("null string for non-nullable argument")
		}
		return "", false
	}

	buf := r.next(uint64(length) + uint64(padding(length)))
	if buf == nil {
		return "", false
	}
	if buf[length-1] != 0 {
		r.err = malformed("string is not null-terminated")
		return "", false
	}

	return string(buf[:length-1]), true
}

func (r *Message) ReadString() string {
	v, ok := r.readString(false)
	if ok {
		r.args = append(r.args, v)
	}
	return v
}

// ReadNullString reads a nullable string, returning nil if it was
// null.
func (r *Message) ReadNullString() *string {
	v, ok := r.readString(true)
	if !ok {
		if r.err == nil {
			r.args = append(r.args, (*string)(nil))
		}
		return nil
	}
	r.args = append(r.args, &v)
	return &v
}

func (r *Message) ReadArray() []byte {
	length, ok := r.word()
	if !ok {
		return nil
	}

	buf := r.next(uint64(length) + uint64(padding(length)))
	if buf == nil {
		return nil
	}

	v := bytes.Clone(buf[:length])
	if v == nil {
		v = []byte{}
	}
	r.args = append(r.args, v)
	return v
}

// ReadFile takes the next file descriptor attached to the message.
// The caller becomes responsible for closing the returned file.
func (r *Message) ReadFile() *os.File {
	if r.err != nil {
		return nil
	}

	if r.fdindex >= len(r.fds) {
		r.err = malformed("message carries %v file descriptors but more were expected", len(r.fds))
		return nil
	}

	f := os.NewFile(uintptr(r.fds[r.fdindex]), "wayland-fd")
	r.fds[r.fdindex] = -1
	r.fdindex++
	r.args = append(r.args, f)
	return f
}

// Close closes any file descriptors that were not taken by ReadFile.
func (r *Message) Close() error {
	var errs []error
	for i := r.fdindex; i < len(r.fds); i++ {
		if r.fds[i] < 0 {
			continue
		}
		errs = append(errs, unix.Close(r.fds[i]))
		r.fds[i] = -1
	}
	r.fdindex = len(r.fds)
	return errors.Join(errs...)
}

// Debug formats the decoded message as a method call on sender.
func (r *Message) Debug(sender Object) string {
	method := sender.MethodName(r.op)
	return fmt.Sprintf("%v.%v(%v)", sender, method, formatArgs(r.args))
}
