package wl_test

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"

	wl "deedles.dev/wayland/client"
	"deedles.dev/wayland/internal/bin"
	"deedles.dev/wayland/internal/wiretest"
	"deedles.dev/wayland/wire"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

func socketpair(t *testing.T) (*net.UnixConn, *net.UnixConn) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatal(err)
	}

	conn := func(fd int) *net.UnixConn {
		file := os.NewFile(uintptr(fd), "socketpair")
		defer file.Close()

		c, err := net.FileConn(file)
		if err != nil {
			t.Fatal(err)
		}
		return c.(*net.UnixConn)
	}
	return conn(fds[0]), conn(fds[1])
}

// setup returns a client State and the raw server end of its
// connection.
func setup(t *testing.T, opts ...wl.Option) (*wl.State, *wire.Conn) {
	t.Helper()

	a, b := socketpair(t)
	state := wl.NewState(wire.NewConn(a), opts...)
	peer := wire.NewConn(b)
	t.Cleanup(func() {
		state.Close()
		peer.Close()
	})
	return state, peer
}

// roundTrip runs state.RoundTrip while acting as the server. Requests
// are read until a wl_display.sync arrives, at which point events is
// sent, followed by the callback's done event and the acknowledgement
// of its deletion. The requests that were read are returned.
func roundTrip(t *testing.T, state *wl.State, peer *wire.Conn, events ...*wire.Message) ([]*wire.Message, error) {
	t.Helper()

	errc := make(chan error, 1)
	go func() { errc <- state.RoundTrip() }()

	var requests []*wire.Message
	for {
		msg, err := peer.Recv(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		requests = append(requests, msg)
		if (msg.Sender() == wire.DisplayID) && (msg.Op() == 0) {
			break
		}
	}

	sync := requests[len(requests)-1]
	data, err := sync.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	id := bin.Value[uint32]([4]byte(data[8:12]))

	events = append(events,
		wiretest.Message(t, id, 0, 0),
		wiretest.Message(t, wire.DisplayID, 1, id),
	)
	for _, ev := range events {
		err := peer.Send(context.Background(), ev)
		if err != nil {
			t.Fatal(err)
		}
	}

	return requests, <-errc
}

func TestSync(t *testing.T) {
	state, peer := setup(t)

	requests, err := roundTrip(t, state, peer)
	if err != nil {
		t.Fatal(err)
	}

	data, err := requests[0].MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x0C, 0x00,
		0x02, 0x00, 0x00, 0x00,
	}
	if diff := cmp.Diff(expected, data); diff != "" {
		t.Fatal(diff)
	}
}

func TestGlobals(t *testing.T) {
	state, peer := setup(t)

	var announced []wl.Global
	state.Globals().OnGlobal = func(g wl.Global) { announced = append(announced, g) }
	registry := state.Registry()

	global := []uint32{4}
	global = append(global, wiretest.String("wl_compositor")...)
	global = append(global, 6)

	_, err := roundTrip(t, state, peer, wiretest.Message(t, registry.ID(), 0, global...))
	if err != nil {
		t.Fatal(err)
	}

	expected := []wl.Global{{Name: 4, Interface: "wl_compositor", Version: 6}}
	if diff := cmp.Diff(expected, announced); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff(expected, state.Globals().List()); diff != "" {
		t.Fatal(diff)
	}

	_, err = roundTrip(t, state, peer, wiretest.Message(t, registry.ID(), 1, 4))
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := state.Globals().Find("wl_compositor"); ok {
		t.Fatalf("global %v was not removed", g)
	}
}

func TestDeleteID(t *testing.T) {
	state, peer := setup(t)

	var announced int
	state.Globals().OnGlobal = func(wl.Global) { announced++ }
	registry := state.Registry()
	id := registry.ID()

	var deleted int
	registry.OnDelete = func() { deleted++ }
	state.Delete(id)
	state.Delete(id)
	if deleted != 1 {
		t.Fatalf("expected one deletion, got %v", deleted)
	}

	other := wl.NewCallback(state)
	state.Add(other)
	if other.ID() == id {
		t.Fatalf("ID %v was reused before the server released it", id)
	}

	global := []uint32{1}
	global = append(global, wiretest.String("wl_shm")...)
	global = append(global, 1)

	_, err := roundTrip(t, state, peer,
		wiretest.Message(t, id, 0, global...),
		wiretest.Message(t, wire.DisplayID, 1, id),
	)
	if err != nil {
		t.Fatal(err)
	}
	if announced != 0 {
		t.Fatal("event for a deleted object was dispatched")
	}
	if state.Get(id) != nil {
		t.Fatalf("object %v is still tracked", id)
	}

	callback := state.Display().Sync()
	if callback.ID() != id {
		t.Fatalf("expected released ID %v to be reused, got %v", id, callback.ID())
	}
}

func TestProtocolError(t *testing.T) {
	state, peer := setup(t)

	payload := []uint32{wire.DisplayID, 1}
	payload = append(payload, wiretest.String("invalid method")...)

	_, err := roundTrip(t, state, peer, wiretest.Message(t, wire.DisplayID, 0, payload...))
	var perr wire.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected protocol error, got %v", err)
	}

	expected := wire.ProtocolError{ObjectID: wire.DisplayID, Code: 1, Message: "invalid method"}
	if diff := cmp.Diff(expected, perr); diff != "" {
		t.Fatal(diff)
	}

	if err := state.Flush(); !errors.As(err, &perr) {
		t.Fatalf("expected fault to persist, got %v", err)
	}
}

func TestUnknownOp(t *testing.T) {
	t.Run("Strict", func(t *testing.T) {
		state, peer := setup(t)

		_, err := roundTrip(t, state, peer, wiretest.Message(t, wire.DisplayID, 5))
		var unknown wire.UnknownOpError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected unknown op error, got %v", err)
		}
	})

	t.Run("Tolerant", func(t *testing.T) {
		state, peer := setup(t, wl.WithTolerateUnknownOps())

		_, err := roundTrip(t, state, peer, wiretest.Message(t, wire.DisplayID, 5))
		if err != nil {
			t.Fatal(err)
		}
	})
}

func TestOutputMode(t *testing.T) {
	mode, err := wl.OutputModeFromUint32(3)
	if err != nil {
		t.Fatal(err)
	}
	if !mode.Has(wl.OutputModeCurrent) || !mode.Has(wl.OutputModePreferred) {
		t.Fatalf("unexpected mode %v", mode)
	}
	if s := mode.String(); s != "OutputModeCurrent|OutputModePreferred" {
		t.Fatalf("unexpected string %q", s)
	}
	if s := wl.OutputMode(0).String(); s != "0" {
		t.Fatalf("unexpected string %q", s)
	}

	_, err = wl.OutputModeFromUint32(4)
	if !errors.Is(err, wire.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
}
