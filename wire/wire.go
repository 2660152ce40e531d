// Package wire defines types helpful for dealing with the Wayland
// wire protocol: message encoding and decoding, file descriptor
// passing, and the framed transport over a Unix domain socket. It is
// primarly intended for usage by generated code.
package wire

const (
	// DisplayID is the ID of the wl_display singleton that every
	// connection starts with.
	DisplayID uint32 = 1

	// MaxClientID is the largest ID that a client may allocate.
	MaxClientID uint32 = 0xFEFFFFFF

	// MinServerID is the smallest ID that a server may allocate.
	MinServerID uint32 = 0xFF000000

	// MaxServerID is the largest ID that a server may allocate.
	MaxServerID uint32 = 0xFFFFFFFF

	// DefaultMaxMessageSize is the largest message, including its
	// header, that a Conn will accept unless told otherwise.
	DefaultMaxMessageSize = 4096

	headerSize = 8
)

// Object represents a Wayland protocol object.
type Object interface {
	// ID returns the object's ID. It is zero until the object has
	// been added to a State.
	ID() uint32
	SetID(id uint32)

	// Dispatch pertforms the operation requested by the message.
	Dispatch(msg *Message) error

	// Delete is called when the object is removed from its State.
	Delete()

	Interface() string
	Version() uint32

	// MethodName returns the name of the incoming message with the
	// given opcode.
	MethodName(op uint16) string

	// FDCount returns the number of file descriptors carried by the
	// incoming message with the given opcode.
	FDCount(op uint16) int
}

// State tracks the objects of one side of a connection. It is
// implemented by the client and server packages and used by
// generated code.
type State interface {
	// Add adds obj to the State. If obj's ID is zero, a new one is
	// allocated and set.
	Add(obj Object)
	Get(id uint32) Object
	Delete(id uint32)

	// Enqueue queues msg to be sent. Messages are sent in the order
	// in which they are enqueued.
	Enqueue(msg *MessageBuilder)
}

// Binder is implemented by registry objects.
type Binder interface {
	Bind(name uint32, id NewID)
}

// NewID is the expanded form of a new_id argument that does not
// specify its interface, such as the one in wl_registry.bind.
type NewID struct {
	Interface string
	Version   uint32
	ID        uint32
}

// padding returns the number of bytes needed to pad n out to a
// four-byte boundary.
func padding(n uint32) uint32 {
	return (4 - n%4) % 4
}
