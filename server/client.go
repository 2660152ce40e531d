package wl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"deedles.dev/wayland/internal/cq"
	"deedles.dev/wayland/internal/debug"
	"deedles.dev/wayland/internal/objstore"
	"deedles.dev/wayland/internal/set"
	"deedles.dev/wayland/wire"
)

// Client is a connected client. It implements wire.State for the
// objects that belong to that client. Incoming requests are
// dispatched, and outgoing events are sent, on a single goroutine per
// client.
type Client struct {
	server *Server
	conn   *wire.Conn
	store  *objstore.Store
	queue  *cq.Queue[func() error]

	ctx    context.Context
	cancel context.CancelFunc
	close  sync.Once

	display *Display

	m          sync.Mutex
	err        error
	registries set.Set[*Registry]
}

func newClient(server *Server, conn *wire.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	client := Client{
		server:     server,
		conn:       conn,
		store:      objstore.New(wire.MinServerID, wire.MaxServerID),
		queue:      cq.New[func() error](),
		ctx:        ctx,
		cancel:     cancel,
		registries: make(set.Set[*Registry]),
	}

	client.display = NewDisplay(&client)
	client.display.SetID(wire.DisplayID)
	client.display.Listener = displayListener{client: &client}
	client.store.Add(client.display)

	return &client
}

func (client *Client) String() string {
	return fmt.Sprintf("client %p", client)
}

// Server returns the server that the client is connected to.
func (client *Client) Server() *Server {
	return client.server
}

// Display returns the client's wl_display.
func (client *Client) Display() *Display {
	return client.display
}

func (client *Client) run(ctx context.Context) error {
	go client.listen()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-client.queue.Done():
			return client.Err()

		case queue := <-client.queue.Get():
			cq.Flush(queue, client.faulted)
			if err := client.Err(); err != nil {
				return err
			}
		}
	}
}

func (client *Client) listen() {
	for {
		msg, err := client.conn.Recv(client.ctx)
		if err != nil {
			if client.ctx.Err() != nil {
				return
			}

			client.queue.Push(func() error { return client.fail(err) })
			return
		}

		if !client.queue.Push(func() error { return client.dispatch(msg) }) {
			msg.Close()
			return
		}
	}
}

func (client *Client) dispatch(msg *wire.Message) error {
	obj, err := client.store.Dispatch(client.conn, msg)
	if debug.Enabled() && (obj != nil) {
		debug.Printf("%v", msg.Debug(obj))
	}
	if err == nil {
		return client.Err()
	}

	var (
		unknownOp     wire.UnknownOpError
		unknownSender wire.UnknownSenderIDError
		unknownObject wire.UnknownObjectError
	)
	switch {
	case errors.As(err, &unknownOp):
		if client.server.tolerateUnknownOps {
			debug.Printf("dropped: %v", err)
			client.conn.DropFDs(msg)
			return nil
		}
		client.PostError(obj.ID(), uint32(DisplayErrorInvalidMethod), "invalid method %v", msg.Op())

	case errors.As(err, &unknownSender):
		client.PostError(wire.DisplayID, uint32(DisplayErrorInvalidObject), "invalid object %v", msg.Sender())

	case errors.As(err, &unknownObject):
		client.PostError(obj.ID(), uint32(DisplayErrorInvalidObject), "invalid object %v", unknownObject.ID)

	case errors.Is(err, wire.ErrMalformedPayload):
		client.PostError(obj.ID(), uint32(DisplayErrorInvalidMethod), "invalid arguments for %v.%v", obj, obj.MethodName(msg.Op()))
	}

	return client.fail(fmt.Errorf("dispatch: %w", err))
}

// Err returns the error that ended the client's connection, if any.
func (client *Client) Err() error {
	client.m.Lock()
	defer client.m.Unlock()

	return client.err
}

func (client *Client) faulted() bool {
	return client.Err() != nil
}

func (client *Client) fail(err error) error {
	client.m.Lock()
	defer client.m.Unlock()

	if client.err == nil {
		client.err = err
	}
	return err
}

// PostError sends a wl_display.error event to the client and then
// disconnects it. Messages that are enqueued after it are not sent.
func (client *Client) PostError(objectID, code uint32, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	display := NewDisplay(immediate{client})
	display.SetID(wire.DisplayID)
	display.Error(objectID, code, message)

	client.fail(wire.ProtocolError{
		ObjectID: objectID,
		Code:     code,
		Message:  message,
	})
}

// Close disconnects the client. Every object that the client had is
// deleted.
func (client *Client) Close() error {
	var err error
	client.close.Do(func() {
		client.cancel()
		client.queue.Stop()
		err = client.conn.Close()
		client.store.Clear()
	})
	return err
}

// Add adds obj to the client's objects. If obj has an ID, it must be
// one that the client is allowed to create and that isn't in use, or
// else the client is sent an error and disconnected. Otherwise, an ID
// from the server's range is allocated for it.
func (client *Client) Add(obj wire.Object) {
	id := obj.ID()
	if id != 0 {
		if (id > wire.MaxClientID) || (client.store.Get(id) != nil) {
			client.PostError(wire.DisplayID, uint32(DisplayErrorInvalidObject), "invalid new id %v", id)
			return
		}
	}

	client.store.Add(obj)
}

// Set adds obj with the given ID. It is a convenience for BindFuncs.
func (client *Client) Set(id uint32, obj wire.Object) {
	obj.SetID(id)
	client.Add(obj)
}

func (client *Client) Get(id uint32) wire.Object {
	return client.store.Get(id)
}

// Delete removes an object. If the client created the object, it is
// told that the ID can be reused.
func (client *Client) Delete(id uint32) {
	client.store.Delete(id)
	if (id != 0) && !client.store.Owns(id) {
		client.display.DeleteId(id)
	}
}

// Enqueue queues msg to be sent to the client.
func (client *Client) Enqueue(msg *wire.MessageBuilder) {
	if client.faulted() || !client.queue.Push(func() error { return client.send(msg) }) {
		msg.Close()
	}
}

func (client *Client) send(builder *wire.MessageBuilder) error {
	debug.Printf(" -> %v", builder)

	msg, err := builder.Build()
	if err != nil {
		return client.fail(fmt.Errorf("build %v: %w", builder, err))
	}

	err = client.conn.Send(client.ctx, msg)
	if err != nil {
		return client.fail(fmt.Errorf("send %v: %w", builder, err))
	}
	return nil
}

// immediate is a wire.State that sends messages as soon as they are
// enqueued.
type immediate struct {
	*Client
}

func (s immediate) Enqueue(msg *wire.MessageBuilder) {
	s.send(msg)
}

func (client *Client) announce(global *Global) {
	client.m.Lock()
	registries := client.registries.Slice()
	client.m.Unlock()

	for _, r := range registries {
		r.Global(global.Name, global.Interface, global.Version)
	}
}

func (client *Client) unannounce(global *Global) {
	client.m.Lock()
	registries := client.registries.Slice()
	client.m.Unlock()

	for _, r := range registries {
		r.GlobalRemove(global.Name)
	}
}

type displayListener struct {
	client *Client
}

func (lis displayListener) Sync(callback *Callback) {
	callback.Done(lis.client.server.NextSerial())
}

func (lis displayListener) GetRegistry(registry *Registry) {
	client := lis.client

	registry.Listener = registryListener{client: client, registry: registry}
	registry.OnDelete = func() {
		client.m.Lock()
		defer client.m.Unlock()
		client.registries.Delete(registry)
	}

	client.m.Lock()
	client.registries.Add(registry)
	client.m.Unlock()

	for _, global := range client.server.Globals() {
		registry.Global(global.Name, global.Interface, global.Version)
	}
}

type registryListener struct {
	client   *Client
	registry *Registry
}

func (lis registryListener) Bind(name uint32, id wire.NewID) {
	global := lis.client.server.global(name)
	switch {
	case global == nil:
		lis.client.PostError(lis.registry.ID(), uint32(DisplayErrorInvalidObject), "invalid global %v", name)
		return
	case global.Interface != id.Interface:
		lis.client.PostError(lis.registry.ID(), uint32(DisplayErrorInvalidObject), "invalid interface for global %v: have %v, wanted %v", name, id.Interface, global.Interface)
		return
	case (id.Version == 0) || (id.Version > global.Version):
		lis.client.PostError(lis.registry.ID(), uint32(DisplayErrorInvalidObject), "invalid version for global %v (%v): have %v, wanted 1 to %v", name, global.Interface, id.Version, global.Version)
		return
	}

	global.bind(lis.client, id)
}
