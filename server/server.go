// Package wl implements the server side of a Wayland connection on
// top of the generated bindings in protocol.go.
package wl

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"deedles.dev/wayland/internal/debug"
	"deedles.dev/wayland/internal/set"
	"deedles.dev/wayland/wire"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

//go:generate go run deedles.dev/wayland/cmd/wlgen -out protocol.go -xml ../protocol/wayland.xml

// Option configures a Server.
type Option func(*Server)

// WithTolerateUnknownOps makes clients' messages with unknown opcodes
// be dropped instead of being reported to the client as a fatal
// error. File descriptors that arrived with a dropped message are
// closed.
func WithTolerateUnknownOps() Option {
	return func(server *Server) {
		server.tolerateUnknownOps = true
	}
}

// WithMaxMessageSize sets the largest message that a client may send.
func WithMaxMessageSize(n int) Option {
	return func(server *Server) {
		server.maxMessageSize = n
	}
}

// ServerListener is notified as clients connect and disconnect.
type ServerListener interface {
	Client(c *Client)
	ClientRemove(c *Client)
}

// BindFunc is called when a client binds a global. It must create an
// object with the ID in id and add it to the client, such as with
// c.Set(id.ID, obj).
type BindFunc func(c *Client, id wire.NewID)

// Global is an object that is advertised to clients through the
// registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32

	bind BindFunc
}

type Server struct {
	// Listener, if not nil, is notified about clients. It must be set
	// before Serve is called.
	Listener ServerListener

	lis   *net.UnixListener
	close sync.Once

	tolerateUnknownOps bool
	maxMessageSize     int

	serial atomic.Uint32

	m        sync.Mutex
	globals  map[uint32]*Global
	nextName uint32
	clients  set.Set[*Client]
}

// Listen creates a socket at a new path in the runtime directory and
// returns a Server for it. The socket's name can be found with
// Server.Addr and should be given to clients as WAYLAND_DISPLAY.
func Listen(opts ...Option) (*Server, error) {
	lis, err := wire.Listen()
	if err != nil {
		return nil, err
	}
	return NewServer(lis, opts...), nil
}

// NewServer returns a Server that accepts clients from lis.
func NewServer(lis *net.UnixListener, opts ...Option) *Server {
	server := Server{
		lis:            lis,
		maxMessageSize: wire.DefaultMaxMessageSize,
		globals:        make(map[uint32]*Global),
		nextName:       1,
		clients:        make(set.Set[*Client]),
	}
	for _, opt := range opts {
		opt(&server)
	}

	return &server
}

// Addr returns the address that the Server is listening on.
func (server *Server) Addr() net.Addr {
	return server.lis.Addr()
}

// Serve accepts clients and runs each one on its own goroutine until
// ctx is canceled or the Server is closed. Errors of individual
// clients disconnect that client and are otherwise only logged.
func (server *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		server.lis.Close()
		return nil
	})

	err := server.accept(ctx, eg)
	cancel()
	return errors.Join(err, eg.Wait())
}

func (server *Server) accept(ctx context.Context, eg *errgroup.Group) error {
	for {
		c, err := server.lis.AcceptUnix()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		client := server.addClient(c)
		eg.Go(func() error {
			err := client.run(ctx)
			if err != nil {
				debug.Printf("%v: %v", client, err)
			}
			server.removeClient(client)
			return nil
		})
	}
}

func (server *Server) addClient(c *net.UnixConn) *Client {
	conn := wire.NewConn(c)
	conn.SetMaxMessageSize(server.maxMessageSize)
	client := newClient(server, conn)

	server.m.Lock()
	server.clients.Add(client)
	server.m.Unlock()

	if server.Listener != nil {
		server.Listener.Client(client)
	}
	return client
}

func (server *Server) removeClient(client *Client) {
	server.m.Lock()
	server.clients.Delete(client)
	server.m.Unlock()

	client.Close()
	if server.Listener != nil {
		server.Listener.ClientRemove(client)
	}
}

// Close stops the Server and disconnects every client.
func (server *Server) Close() error {
	var err error
	server.close.Do(func() {
		err = server.lis.Close()

		server.m.Lock()
		clients := server.clients.Slice()
		server.m.Unlock()

		for _, client := range clients {
			client.Close()
		}
	})
	return err
}

// NextSerial returns a new serial number for events that need one.
func (server *Server) NextSerial() uint32 {
	return server.serial.Add(1)
}

// AddGlobal advertises a new global to every client. When a client
// binds it, bind is called.
func (server *Server) AddGlobal(inter string, version uint32, bind BindFunc) *Global {
	server.m.Lock()
	global := Global{
		Name:      server.nextName,
		Interface: inter,
		Version:   version,
		bind:      bind,
	}
	server.nextName++
	server.globals[global.Name] = &global
	clients := server.clients.Slice()
	server.m.Unlock()

	for _, client := range clients {
		client.announce(&global)
	}

	return &global
}

// RemoveGlobal stops advertising a global. Objects that clients have
// already bound to it are unaffected.
func (server *Server) RemoveGlobal(global *Global) {
	server.m.Lock()
	_, ok := server.globals[global.Name]
	delete(server.globals, global.Name)
	clients := server.clients.Slice()
	server.m.Unlock()

	if !ok {
		return
	}
	for _, client := range clients {
		client.unannounce(global)
	}
}

// Globals returns the currently advertised globals ordered by name.
func (server *Server) Globals() []*Global {
	server.m.Lock()
	defer server.m.Unlock()

	names := maps.Keys(server.globals)
	slices.Sort(names)

	globals := make([]*Global, 0, len(names))
	for _, name := range names {
		globals = append(globals, server.globals[name])
	}
	return globals
}

func (server *Server) global(name uint32) *Global {
	server.m.Lock()
	defer server.m.Unlock()

	return server.globals[name]
}
