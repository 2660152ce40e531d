package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// maxFDsPerRead is the number of file descriptors that a single read
// has room for. It matches the number that libwayland will send in a
// single sendmsg call.
const maxFDsPerRead = 28

var aLongTimeAgo = time.Unix(1, 0)

// Conn represents a low-level Wayland connection. It frames the byte
// stream of a Unix domain socket into Messages and carries their file
// descriptors as SCM_RIGHTS ancillary data. It is not generally used
// directly, instead being handled automatically by a State
// implementation.
//
// Send and Recv may be called concurrently with each other, but each
// direction is serialized. Once a Conn has returned an I/O error, a
// malformed message, or ErrPeerClosed, it is faulted and every further
// call returns the same error.
type Conn struct {
	conn *net.UnixConn
	max  int

	rmu sync.Mutex
	oob []byte

	fdmu sync.Mutex
	fds  []int

	wmu sync.Mutex

	faultmu sync.Mutex
	fault   error
}

// NewConn creates a new Conn that wraps c. After this is called, use
// the provided Close method to close c instead of calling its own
// Close method.
func NewConn(c *net.UnixConn) *Conn {
	return &Conn{
		conn: c,
		max:  DefaultMaxMessageSize,
		oob:  make([]byte, unix.CmsgSpace(maxFDsPerRead*4)),
	}
}

// SetMaxMessageSize sets the largest message, header included, that
// the Conn will send or receive. It must be called before the Conn is
// used.
func (c *Conn) SetMaxMessageSize(n int) {
	c.max = min(max(n, headerSize), 0xFFFF)
}

// Close closes the underlying connection and any received file
// descriptors that were never attached to a message.
func (c *Conn) Close() error {
	c.fail(&IOError{Op: "close", Err: net.ErrClosed})
	err := c.conn.Close()

	c.fdmu.Lock()
	defer c.fdmu.Unlock()
	for _, fd := range c.fds {
		unix.Close(fd)
	}
	c.fds = nil

	return err
}

// Err returns the error that faulted the connection, if any.
func (c *Conn) Err() error {
	c.faultmu.Lock()
	defer c.faultmu.Unlock()
	return c.fault
}

func (c *Conn) fail(err error) error {
	c.faultmu.Lock()
	defer c.faultmu.Unlock()
	if c.fault == nil {
		c.fault = err
	}
	return err
}

// Send writes msg to the connection along with its file descriptors
// and then closes them. The descriptors always travel with the first
// byte of the message, even if the kernel accepts only part of it in
// the first write.
//
// If ctx is cancelled before any of the message has been written, Send
// returns ctx.Err() and the connection remains usable. If it is
// cancelled part way through, the connection is faulted.
func (c *Conn) Send(ctx context.Context, msg *Message) error {
	defer msg.Close()

	c.wmu.Lock()
	defer c.wmu.Unlock()

	if err := c.Err(); err != nil {
		return err
	}

	data, _ := msg.MarshalBinary()
	if len(data) > c.max {
		return malformed("message size %v exceeds maximum of %v", len(data), c.max)
	}

	var oob []byte
	if len(msg.fds) > 0 {
		oob = unix.UnixRights(msg.fds...)
	}

	stop := watch(ctx, c.conn.SetWriteDeadline)
	defer stop()

	n, _, err := c.conn.WriteMsgUnix(data, oob, nil)
	for (err == nil) && (n < len(data)) {
		var m int
		m, err = c.conn.Write(data[n:])
		n += m
	}
	if err != nil {
		if (ctx.Err() != nil) && errors.Is(err, os.ErrDeadlineExceeded) {
			if n == 0 {
				return ctx.Err()
			}
			return c.fail(fmt.Errorf("write interrupted mid-message: %w", ctx.Err()))
		}
		return c.fail(&IOError{Op: "write", Err: err})
	}

	return nil
}

// Recv reads the next message from the connection. The returned
// message has no file descriptors attached; the descriptors that
// arrived with it are queued on the Conn until AttachFDs is called,
// because only the receiver of the message knows how many of them
// belong to it.
//
// A clean end of stream between messages yields ErrPeerClosed.
// Cancellation behaves as it does for Send.
func (c *Conn) Recv(ctx context.Context) (*Message, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if err := c.Err(); err != nil {
		return nil, err
	}

	stop := watch(ctx, c.conn.SetReadDeadline)
	defer stop()

	var header [headerSize]byte
	n, nfds, err := c.read(header[:])
	if err != nil {
		return nil, c.readFailed(ctx, n, err)
	}

	msg := parseHeader(header)
	if err := checkSize(msg.size, c.max); err != nil {
		return nil, c.fail(err)
	}

	msg.data = make([]byte, int(msg.size)-headerSize)
	m, mfds, err := c.read(msg.data)
	if err != nil {
		return nil, c.readFailed(ctx, n+m, err)
	}
	msg.arrived = nfds + mfds

	return msg, nil
}

// AttachFDs moves the next n received file descriptors to msg, in the
// order in which they were received. It fails and faults the
// connection if fewer than n are queued.
func (c *Conn) AttachFDs(msg *Message, n int) error {
	if n == 0 {
		return nil
	}

	c.fdmu.Lock()
	defer c.fdmu.Unlock()

	if len(c.fds) < n {
		return c.fail(malformed("%v file descriptors expected by %v:%v but %v were received", n, msg.sender, msg.op, len(c.fds)))
	}

	msg.fds = append(msg.fds, c.fds[:n]...)
	c.fds = append(c.fds[:0], c.fds[n:]...)
	return nil
}

// DropFDs closes the file descriptors that arrived with msg but were
// not attached to it. It is used when a message is discarded without
// being decoded so that its descriptors are not attached to a later
// message instead.
func (c *Conn) DropFDs(msg *Message) error {
	n := msg.arrived - len(msg.fds)
	if n <= 0 {
		return msg.Close()
	}

	c.fdmu.Lock()
	n = min(n, len(c.fds))
	msg.fds = append(msg.fds, c.fds[:n]...)
	c.fds = append(c.fds[:0], c.fds[n:]...)
	c.fdmu.Unlock()

	return msg.Close()
}

func (c *Conn) read(buf []byte) (n, nfds int, err error) {
	for n < len(buf) {
		m, oobn, flags, _, rerr := c.conn.ReadMsgUnix(buf[n:], c.oob)
		// A read that times out reports -1 bytes.
		n += max(m, 0)
		if oobn > 0 {
			q, err := c.queueFDs(c.oob[:oobn])
			nfds += q
			if err != nil {
				return n, nfds, err
			}
		}
		if flags&unix.MSG_CTRUNC != 0 {
			return n, nfds, malformed("ancillary data was truncated")
		}
		if rerr != nil {
			return n, nfds, rerr
		}
		if m == 0 {
			return n, nfds, io.EOF
		}
	}
	return n, nfds, nil
}

func (c *Conn) queueFDs(oob []byte) (n int, err error) {
	cmsgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return 0, fmt.Errorf("parse socket control messages: %w", err)
	}

	c.fdmu.Lock()
	defer c.fdmu.Unlock()

	for _, cmsg := range cmsgs {
		fds, err := unix.ParseUnixRights(&cmsg)
		if err != nil {
			if errors.Is(err, unix.EINVAL) {
				continue
			}
			return n, fmt.Errorf("parse unix control message: %w", err)
		}
		c.fds = append(c.fds, fds...)
		n += len(fds)
	}
	return n, nil
}

func (c *Conn) readFailed(ctx context.Context, n int, err error) error {
	switch {
	case (ctx.Err() != nil) && errors.Is(err, os.ErrDeadlineExceeded):
		if n == 0 {
			return ctx.Err()
		}
		return c.fail(fmt.Errorf("read interrupted mid-message: %w", ctx.Err()))

	case errors.Is(err, io.EOF):
		if n == 0 {
			return c.fail(ErrPeerClosed)
		}
		return c.fail(&IOError{Op: "read", Err: io.ErrUnexpectedEOF})

	case errors.Is(err, ErrMalformedPayload):
		return c.fail(err)

	default:
		return c.fail(&IOError{Op: "read", Err: err})
	}
}

// watch interrupts blocking I/O on the connection when ctx is
// cancelled by moving the deadline into the past. The returned
// function must be called once the I/O is finished.
func watch(ctx context.Context, setDeadline func(time.Time) error) (stop func()) {
	if ctx.Done() == nil {
		return func() {}
	}

	done := make(chan struct{})
	fired := make(chan bool, 1)
	go func() {
		select {
		case <-ctx.Done():
			setDeadline(aLongTimeAgo)
			fired <- true
		case <-done:
			fired <- false
		}
	}()

	return func() {
		close(done)
		if <-fired {
			setDeadline(time.Time{})
		}
	}
}
