package wire

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	"deedles.dev/wayland/internal/bin"
	"golang.org/x/sys/unix"
)

// MessageBuilder is a message that is under construction.
type MessageBuilder struct {
	// Method is the name of the method being called. It is included
	// purely for debugging purposes.
	Method string

	// Args is the original set of arguments passed to the function from
	// which this MessageBuilder was generated. It is included purely
	// for debugging purposes.
	Args []any

	sender Object
	op     uint16
	data   bytes.Buffer
	fds    []int
	err    error
}

func NewMessage(sender Object, op uint16) *MessageBuilder {
	return &MessageBuilder{
		sender: sender,
		op:     op,
	}
}

func (mb *MessageBuilder) Sender() Object {
	return mb.sender
}

func (mb *MessageBuilder) Op() uint16 {
	return mb.op
}

func (mb *MessageBuilder) WriteInt(v int32) {
	if mb.err != nil {
		return
	}

	bin.Write(&mb.data, v)
}

func (mb *MessageBuilder) WriteUint(v uint32) {
	if mb.err != nil {
		return
	}

	bin.Write(&mb.data, v)
}

// WriteObject writes the ID of v, or zero if v is nil.
func (mb *MessageBuilder) WriteObject(v Object) {
	var id uint32
	if !isNil(v) {
		id = v.ID()
	}
	mb.WriteUint(id)
}

// WriteObjectID writes a raw object ID. It is used for arguments that
// do not name an interface.
func (mb *MessageBuilder) WriteObjectID(id uint32) {
	mb.WriteUint(id)
}

// WriteNewID writes the expanded form of an untyped new_id argument:
// the interface name, the version, and then the ID.
func (mb *MessageBuilder) WriteNewID(v NewID) {
	mb.WriteString(v.Interface)
	mb.WriteUint(v.Version)
	mb.WriteUint(v.ID)
}

func (mb *MessageBuilder) WriteFixed(v Fixed) {
	if mb.err != nil {
		return
	}

	bin.Write(&mb.data, v)
}

func (mb *MessageBuilder) WriteString(v string) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v) + 1)
	bin.Write(&mb.data, length)
	mb.data.WriteString(v)
	mb.data.WriteByte(0)
	mb.pad(length)
}

// WriteNullString writes a nullable string. A nil v is encoded as a
// zero length.
func (mb *MessageBuilder) WriteNullString(v *string) {
	if v == nil {
		mb.WriteUint(0)
		return
	}
	mb.WriteString(*v)
}

func (mb *MessageBuilder) WriteArray(v []byte) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v))
	bin.Write(&mb.data, length)
	mb.data.Write(v)
	mb.pad(length)
}

func (mb *MessageBuilder) pad(length uint32) {
	for i := uint32(0); i < padding(length); i++ {
		mb.data.WriteByte(0)
	}
}

// WriteFile attaches a duplicate of v's file descriptor to the
// message. The caller retains ownership of v itself.
func (mb *MessageBuilder) WriteFile(v *os.File) {
	if mb.err != nil {
		return
	}
	if v == nil {
		mb.err = errors.New("nil file passed as file descriptor argument")
		return
	}

	fd, err := unix.Dup(int(v.Fd()))
	if err != nil {
		mb.err = fmt.Errorf("dup file descriptor: %w", err)
		return
	}

	if len(mb.fds) == 0 {
		runtime.SetFinalizer(mb, (*MessageBuilder).Close)
	}

	mb.fds = append(mb.fds, fd)
}

// Build finishes the message. Ownership of any attached file
// descriptors moves to the returned Message. The MessageBuilder should
// not be used again after this method is called.
func (mb *MessageBuilder) Build() (*Message, error) {
	if mb.err != nil {
		mb.Close()
		return nil, mb.err
	}

	size := headerSize + mb.data.Len()
	if size > 0xFFFF {
		mb.Close()
		return nil, malformed("message size %v does not fit in the header", size)
	}

	msg := Message{
		sender: mb.sender.ID(),
		op:     mb.op,
		size:   uint16(size),
		data:   bytes.Clone(mb.data.Bytes()),
		fds:    mb.fds,
	}
	mb.fds = nil
	runtime.SetFinalizer(mb, nil)

	return &msg, nil
}

// Close releases the file descriptors held by an unbuilt message.
func (mb *MessageBuilder) Close() error {
	errs := make([]error, 0, len(mb.fds))
	for _, fd := range mb.fds {
		errs = append(errs, unix.Close(fd))
	}
	mb.fds = nil
	runtime.SetFinalizer(mb, nil)
	return errors.Join(errs...)
}

func (mb *MessageBuilder) String() string {
	return fmt.Sprintf("%v.%v(%v)", mb.sender, mb.Method, formatArgs(mb.Args))
}

func formatArgs(args []any) string {
	strs := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			strs = append(strs, strconv.Quote(arg))
		case *string:
			if arg == nil {
				strs = append(strs, "nil")
				continue
			}
			strs = append(strs, strconv.Quote(*arg))
		case *os.File:
			strs = append(strs, "fd "+strconv.FormatUint(uint64(arg.Fd()), 10))
		case []byte:
			strs = append(strs, fmt.Sprintf("array[%v]", len(arg)))
		default:
			if isNil(arg) {
				strs = append(strs, "nil")
				continue
			}
			strs = append(strs, fmt.Sprint(arg))
		}
	}
	return strings.Join(strs, ", ")
}

func isNil(v any) bool {
	return (v == nil) || ((*[2]uintptr)(unsafe.Pointer(&v))[1] == 0)
}
