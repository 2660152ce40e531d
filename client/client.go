// Package wl implements the client side of a Wayland connection on
// top of the generated bindings in protocol.go.
//
// Messages are neither sent nor dispatched until the State is
// flushed. Everything, including the listeners of every object,
// runs on the goroutine that calls Flush or RoundTrip.
package wl

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"deedles.dev/wayland/internal/cq"
	"deedles.dev/wayland/internal/debug"
	"deedles.dev/wayland/internal/objstore"
	"deedles.dev/wayland/wire"
)

//go:generate go run deedles.dev/wayland/cmd/wlgen -client -out protocol.go -xml ../protocol/wayland.xml

// Option configures a State.
type Option func(*State)

// WithTolerateUnknownOps makes a State drop messages with opcodes
// that the receiving object doesn't know instead of treating them as
// fatal. This is useful when talking to a server that implements a
// newer version of an interface than the bindings do.
// File descriptors that arrived with a dropped message are closed.
func WithTolerateUnknownOps() Option {
	return func(state *State) {
		state.tolerateUnknownOps = true
	}
}

// WithMaxMessageSize sets the largest incoming message that is
// accepted.
func WithMaxMessageSize(n int) Option {
	return func(state *State) {
		state.conn.SetMaxMessageSize(n)
	}
}

// State is the client end of a connection.
type State struct {
	ctx    context.Context
	cancel context.CancelFunc
	close  sync.Once

	conn    *wire.Conn
	objects *objstore.Store
	queue   *cq.Queue[func() error]

	tolerateUnknownOps bool

	m        sync.Mutex
	err      error
	display  *Display
	registry *Registry
	globals  Globals
}

// Dial connects to the compositor that the environment indicates.
func Dial(opts ...Option) (*State, error) {
	c, err := wire.Dial()
	if err != nil {
		return nil, err
	}

	return NewState(c, opts...), nil
}

// NewState starts a client on an existing connection. The State takes
// ownership of conn.
func NewState(conn *wire.Conn, opts ...Option) *State {
	ctx, cancel := context.WithCancel(context.Background())
	state := State{
		ctx:     ctx,
		cancel:  cancel,
		conn:    conn,
		objects: objstore.New(wire.DisplayID, wire.MaxClientID),
		queue:   cq.New[func() error](),
	}
	for _, opt := range opts {
		opt(&state)
	}

	state.display = NewDisplay(&state)
	state.display.Listener = displayListener{state: &state}
	state.Add(state.display)

	go state.listen()

	return &state
}

func (state *State) listen() {
	for {
		msg, err := state.conn.Recv(state.ctx)
		if err != nil {
			if state.ctx.Err() != nil {
				return
			}

			state.queue.Push(func() error { return state.fail(err) })
			return
		}

		if !state.queue.Push(func() error { return state.dispatch(msg) }) {
			msg.Close()
			return
		}
	}
}

func (state *State) dispatch(msg *wire.Message) error {
	obj, err := state.objects.Dispatch(state.conn, msg)
	if debug.Enabled() && (obj != nil) {
		debug.Printf("%v", msg.Debug(obj))
	}
	if err != nil {
		var unknown wire.UnknownOpError
		if state.tolerateUnknownOps && errors.As(err, &unknown) {
			debug.Printf("dropped: %v", err)
			state.conn.DropFDs(msg)
			return nil
		}
		return state.fail(fmt.Errorf("dispatch: %w", err))
	}

	// A listener, such as the one for wl_display.error, can fault the
	// connection without returning an error.
	return state.Err()
}

// Err returns the error that faulted the connection, if any.
func (state *State) Err() error {
	state.m.Lock()
	defer state.m.Unlock()

	return state.err
}

func (state *State) faulted() bool {
	return state.Err() != nil
}

func (state *State) fail(err error) error {
	state.m.Lock()
	defer state.m.Unlock()

	if state.err == nil {
		state.err = err
	}
	return err
}

// Display returns the wl_display singleton.
func (state *State) Display() *Display {
	return state.display
}

// Registry returns the connection's registry, requesting it from the
// server the first time that it is called. The globals that it
// announces are tracked by Globals.
func (state *State) Registry() *Registry {
	state.m.Lock()
	defer state.m.Unlock()

	if state.registry == nil {
		state.registry = state.display.GetRegistry()
		state.registry.Listener = &state.globals
	}
	return state.registry
}

// Globals returns the tracker of the globals announced by Registry.
func (state *State) Globals() *Globals {
	return &state.globals
}

// Close stops the State and closes its connection.
func (state *State) Close() error {
	var err error
	state.close.Do(func() {
		state.cancel()
		state.queue.Stop()
		err = state.conn.Close()
	})
	return err
}

// Add adds obj to the object table, allocating an ID for it if it
// doesn't have one.
func (state *State) Add(obj wire.Object) {
	state.objects.Add(obj)
}

// Set adds obj to the object table with the given ID.
func (state *State) Set(id uint32, obj wire.Object) {
	obj.SetID(id)
	state.objects.Add(obj)
}

func (state *State) Get(id uint32) wire.Object {
	return state.objects.Get(id)
}

// Delete removes an object. The ID of an object that the client
// created is not reused until the server acknowledges the deletion
// with wl_display.delete_id, and messages that arrive for the object
// in the meantime are ignored.
func (state *State) Delete(id uint32) {
	if state.objects.Owns(id) {
		state.objects.Retire(id)
		return
	}
	state.objects.Delete(id)
}

// Enqueue queues msg to be sent the next time that the State is
// flushed.
func (state *State) Enqueue(msg *wire.MessageBuilder) {
	ok := state.queue.Push(func() error { return state.send(msg) })
	if !ok {
		msg.Close()
	}
}

func (state *State) send(builder *wire.MessageBuilder) error {
	debug.Printf(" -> %v", builder)

	msg, err := builder.Build()
	if err != nil {
		return state.fail(fmt.Errorf("build %v: %w", builder, err))
	}

	err = state.conn.Send(state.ctx, msg)
	if err != nil {
		return state.fail(fmt.Errorf("send %v: %w", builder, err))
	}
	return nil
}

func (state *State) flush(queue []func() error) []error {
	return cq.Flush(queue, state.faulted)
}

// Flush sends every enqueued message and dispatches every message that
// has been received since the last flush, in the order in which they
// were queued. Once the connection has been faulted, Flush does
// nothing but return the error that faulted it.
func (state *State) Flush() error {
	if err := state.Err(); err != nil {
		return err
	}

	select {
	case queue := <-state.queue.Get():
		return errors.Join(state.flush(queue)...)
	default:
		return nil
	}
}

// RoundTrip sends a wl_display.sync request and flushes the queue
// until the server answers it. Because the server handles requests in
// order, every request enqueued before the call has been processed by
// the time it returns.
func (state *State) RoundTrip() error {
	if err := state.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	state.Display().Sync().Then(func(uint32) { close(done) })

	var errs []error
	for {
		select {
		case <-done:
			return errors.Join(errs...)

		case queue := <-state.queue.Get():
			errs = append(errs, state.flush(queue)...)
			if state.faulted() {
				return errors.Join(errs...)
			}

		case <-state.queue.Done():
			return errors.Join(append(errs, net.ErrClosed)...)
		}
	}
}

type displayListener struct {
	state *State
}

func (lis displayListener) Error(objectID, code uint32, message string) {
	lis.state.fail(wire.ProtocolError{
		ObjectID: objectID,
		Code:     code,
		Message:  message,
	})
}

func (lis displayListener) DeleteId(id uint32) {
	lis.state.objects.Delete(id)
}
