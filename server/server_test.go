package wl_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	client "deedles.dev/wayland/client"
	wl "deedles.dev/wayland/server"
	"deedles.dev/wayland/shm"
	"deedles.dev/wayland/wire"
	"github.com/google/go-cmp/cmp"
)

func setup(t *testing.T, opts ...wl.Option) (*wl.Server, *client.State) {
	t.Helper()

	addr := &net.UnixAddr{Name: filepath.Join(t.TempDir(), "wayland-test"), Net: "unix"}
	lis, err := net.ListenUnix("unix", addr)
	if err != nil {
		t.Fatal(err)
	}

	server := wl.NewServer(lis, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		server.Close()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
	})

	c, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		t.Fatal(err)
	}
	state := client.NewState(wire.NewConn(c))
	t.Cleanup(func() { state.Close() })

	return server, state
}

func roundTrip(t *testing.T, state *client.State) {
	t.Helper()

	err := state.RoundTrip()
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
}

func TestGlobals(t *testing.T) {
	server, state := setup(t)
	server.AddGlobal(wl.ShmInterface, wl.ShmVersion, nil)
	output := server.AddGlobal(wl.OutputInterface, wl.OutputVersion, nil)

	state.Registry()
	roundTrip(t, state)

	expected := []client.Global{
		{Name: 1, Interface: "wl_shm", Version: 2},
		{Name: 2, Interface: "wl_output", Version: 4},
	}
	if diff := cmp.Diff(expected, state.Globals().List()); diff != "" {
		t.Fatal(diff)
	}

	server.RemoveGlobal(output)
	server.AddGlobal(wl.OutputInterface, 3, nil)
	roundTrip(t, state)

	expected = []client.Global{
		{Name: 1, Interface: "wl_shm", Version: 2},
		{Name: 3, Interface: "wl_output", Version: 3},
	}
	if diff := cmp.Diff(expected, state.Globals().List()); diff != "" {
		t.Fatal(diff)
	}

	global, ok := state.Globals().Find("wl_output")
	if !ok || (global.Name != 3) {
		t.Fatalf("unexpected result from Find: %+v, %v", global, ok)
	}
}

func TestBindOutput(t *testing.T) {
	server, state := setup(t)
	server.AddGlobal(wl.OutputInterface, wl.OutputVersion, func(c *wl.Client, id wire.NewID) {
		out := wl.NewOutput(c)
		c.Set(id.ID, out)

		out.Geometry(0, 0, 600, 340, wl.OutputSubpixelHorizontalRgb, "Test", "Model 1", wl.OutputTransform90)
		out.Mode(wl.OutputModePreferred, 1280, 720, 60000)
		out.Mode(wl.OutputModeCurrent|wl.OutputModePreferred, 1920, 1080, 60000)
		out.Scale(2)
		out.Name("TEST-1")
		out.Description("Test output")
		out.Done()
	})

	state.Registry()
	roundTrip(t, state)

	global, ok := state.Globals().Find(client.OutputInterface)
	if !ok {
		t.Fatal("no output global")
	}

	infos := make(chan client.OutputInfo, 1)
	out := client.NewOutput(state)
	out.Listener = &client.OutputInfoListener{OnDone: func(info client.OutputInfo) { infos <- info }}
	version := state.Bind(global, out, client.OutputVersion)
	if version != 4 {
		t.Fatalf("bound version %v", version)
	}
	roundTrip(t, state)

	expected := client.OutputInfo{
		PhysicalWidth:  600,
		PhysicalHeight: 340,
		Subpixel:       client.OutputSubpixelHorizontalRgb,
		Make:           "Test",
		Model:          "Model 1",
		Transform:      client.OutputTransform90,
		Width:          1920,
		Height:         1080,
		Refresh:        60000,
		Scale:          2,
		Name:           "TEST-1",
		Description:    "Test output",
	}
	select {
	case info := <-infos:
		if diff := cmp.Diff(expected, info); diff != "" {
			t.Fatal(diff)
		}
	default:
		t.Fatal("output did not send done")
	}
}

type poolListener struct {
	destroyed chan struct{}
}

func (lis *poolListener) CreateBuffer(id *wl.Buffer, offset, width, height, stride int32, format wl.ShmFormat) {
}

func (lis *poolListener) Destroy() {
	close(lis.destroyed)
}

func (lis *poolListener) Resize(size int32) {}

type shmListener struct {
	files chan *os.File
	pool  *poolListener
}

func (lis *shmListener) CreatePool(id *wl.ShmPool, fd *os.File, size int32) {
	id.Listener = lis.pool
	lis.files <- fd
}

func (lis *shmListener) Release() {}

func TestSharedMemory(t *testing.T) {
	lis := &shmListener{
		files: make(chan *os.File, 1),
		pool:  &poolListener{destroyed: make(chan struct{})},
	}

	server, state := setup(t)
	server.AddGlobal(wl.ShmInterface, wl.ShmVersion, func(c *wl.Client, id wire.NewID) {
		shm := wl.NewShm(c)
		shm.Listener = lis
		c.Set(id.ID, shm)
		shm.Format(wl.ShmFormatArgb8888)
		shm.Format(wl.ShmFormatXrgb8888)
	})

	state.Registry()
	roundTrip(t, state)

	global, ok := state.Globals().Find(client.ShmInterface)
	if !ok {
		t.Fatal("no shm global")
	}

	var formats []client.ShmFormat
	shm := client.NewShm(state)
	shm.Listener = shmFormats(func(format client.ShmFormat) { formats = append(formats, format) })
	state.Bind(global, shm, client.ShmVersion)

	pool, err := client.NewPool(shm, 4096)
	if err != nil {
		t.Fatal(err)
	}
	copy(pool.Bytes(), "shared")
	roundTrip(t, state)

	if diff := cmp.Diff([]client.ShmFormat{client.ShmFormatArgb8888, client.ShmFormatXrgb8888}, formats); diff != "" {
		t.Error(diff)
	}

	file := <-lis.files
	defer file.Close()
	buf := make([]byte, 6)
	_, err = file.ReadAt(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "shared" {
		t.Fatalf("server saw %q", buf)
	}

	id := pool.ID()
	err = pool.Destroy()
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, state)

	select {
	case <-lis.pool.destroyed:
	default:
		t.Fatal("server did not see the pool destroyed")
	}
	if obj := state.Get(id); obj != nil {
		t.Fatalf("pool ID %v was not released: %v", id, obj)
	}
}

type shmFormats func(client.ShmFormat)

func (f shmFormats) Format(format client.ShmFormat) {
	f(format)
}

func TestProtocolError(t *testing.T) {
	server, state := setup(t)
	global := server.AddGlobal(wl.OutputInterface, wl.OutputVersion, nil)

	registry := state.Registry()
	roundTrip(t, state)

	out := client.NewOutput(state)
	state.Add(out)
	registry.Bind(global.Name, wire.NewID{Interface: "wl_seat", Version: 1, ID: out.ID()})

	err := state.RoundTrip()
	var perr wire.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	if (perr.ObjectID != registry.ID()) || (perr.Code != uint32(wl.DisplayErrorInvalidObject)) {
		t.Fatalf("unexpected error: %+v", perr)
	}

	if !errors.As(state.Flush(), &perr) {
		t.Fatal("fault did not persist")
	}
}

func TestInvalidNewID(t *testing.T) {
	_, state := setup(t)

	state.Registry()
	roundTrip(t, state)

	// Reuse the registry's ID for a callback.
	cb := client.NewCallback(state)
	cb.SetID(state.Registry().ID())
	builder := wire.NewMessage(state.Display(), 0)
	builder.WriteObject(cb)
	state.Enqueue(builder)

	err := state.RoundTrip()
	var perr wire.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	if (perr.ObjectID != wire.DisplayID) || (perr.Code != uint32(wl.DisplayErrorInvalidObject)) {
		t.Fatalf("unexpected error: %+v", perr)
	}
}

func TestUnknownOp(t *testing.T) {
	tests := []struct {
		name     string
		opts     []wl.Option
		tolerant bool
	}{
		{name: "Strict"},
		{name: "Tolerant", opts: []wl.Option{wl.WithTolerateUnknownOps()}, tolerant: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, state := setup(t, test.opts...)

			state.Enqueue(wire.NewMessage(state.Display(), 7))
			err := state.RoundTrip()
			if test.tolerant {
				if err != nil {
					t.Fatal(err)
				}
				return
			}

			var perr wire.ProtocolError
			if !errors.As(err, &perr) {
				t.Fatalf("expected protocol error, got %v", err)
			}
			if perr.Code != uint32(wl.DisplayErrorInvalidMethod) {
				t.Fatalf("unexpected error: %+v", perr)
			}
		})
	}
}

func TestUnknownOpFDs(t *testing.T) {
	lis := &shmListener{
		files: make(chan *os.File, 1),
		pool:  &poolListener{destroyed: make(chan struct{})},
	}

	server, state := setup(t, wl.WithTolerateUnknownOps())
	server.AddGlobal(wl.ShmInterface, wl.ShmVersion, func(c *wl.Client, id wire.NewID) {
		shm := wl.NewShm(c)
		shm.Listener = lis
		c.Set(id.ID, shm)
	})

	state.Registry()
	roundTrip(t, state)

	global, ok := state.Globals().Find(client.ShmInterface)
	if !ok {
		t.Fatal("no shm global")
	}
	s := client.NewShm(state)
	state.Bind(global, s, client.ShmVersion)

	stale, err := shm.Create("stale", 16)
	if err != nil {
		t.Fatal(err)
	}
	defer stale.Close()
	_, err = stale.WriteAt([]byte("stale!"), 0)
	if err != nil {
		t.Fatal(err)
	}

	unknown := wire.NewMessage(state.Display(), 7)
	unknown.WriteFile(stale)
	state.Enqueue(unknown)

	pool, err := client.NewPool(s, 4096)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Destroy()
	copy(pool.Bytes(), "shared")
	roundTrip(t, state)

	file := <-lis.files
	defer file.Close()
	buf := make([]byte, 6)
	_, err = file.ReadAt(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "shared" {
		t.Fatalf("pool was created with the dropped message's fd: %q", buf)
	}
}
