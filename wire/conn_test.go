package wire_test

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

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

func connPair(t *testing.T) (*wire.Conn, *wire.Conn) {
	t.Helper()

	a, b := socketpair(t)
	ca, cb := wire.NewConn(a), wire.NewConn(b)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})
	return ca, cb
}

func TestSendRecv(t *testing.T) {
	client, server := connPair(t)

	mb := wire.NewMessage(&testObject{id: wire.DisplayID}, 0)
	mb.WriteObjectID(2)
	sent := mustBuild(t, mb)
	data := marshal(t, sent)

	err := client.Send(context.Background(), sent)
	if err != nil {
		t.Fatal(err)
	}

	msg, err := server.Recv(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(data, marshal(t, msg)); diff != "" {
		t.Fatal(diff)
	}
}

func TestFDOrder(t *testing.T) {
	client, server := connPair(t)
	ctx := context.Background()

	first := wire.NewMessage(&testObject{id: 3}, 0)
	first.WriteFile(memfd(t, "first-0"))
	first.WriteUint(1)
	first.WriteFile(memfd(t, "first-1"))
	second := wire.NewMessage(&testObject{id: 3}, 1)
	second.WriteFile(memfd(t, "second-0"))

	for _, mb := range []*wire.MessageBuilder{first, second} {
		err := client.Send(ctx, mustBuild(t, mb))
		if err != nil {
			t.Fatal(err)
		}
	}

	recv := func(n int) []string {
		msg, err := server.Recv(ctx)
		if err != nil {
			t.Fatal(err)
		}
		defer msg.Close()

		err = server.AttachFDs(msg, n)
		if err != nil {
			t.Fatal(err)
		}
		if msg.NumFDs() != n {
			t.Fatalf("expected %v fds, got %v", n, msg.NumFDs())
		}

		var contents []string
		for range n {
			f := msg.ReadFile()
			contents = append(contents, readFD(t, f))
			f.Close()
		}
		return contents
	}

	if diff := cmp.Diff([]string{"first-0", "first-1"}, recv(2)); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]string{"second-0"}, recv(1)); diff != "" {
		t.Fatal(diff)
	}
}

func TestDropFDs(t *testing.T) {
	client, server := connPair(t)
	ctx := context.Background()

	dropped := wire.NewMessage(&testObject{id: 3}, 9)
	dropped.WriteFile(memfd(t, "dropped-0"))
	dropped.WriteFile(memfd(t, "dropped-1"))
	kept := wire.NewMessage(&testObject{id: 3}, 0)
	kept.WriteFile(memfd(t, "kept"))

	for _, mb := range []*wire.MessageBuilder{dropped, kept} {
		err := client.Send(ctx, mustBuild(t, mb))
		if err != nil {
			t.Fatal(err)
		}
	}

	first, err := server.Recv(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := server.Recv(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	err = server.DropFDs(first)
	if err != nil {
		t.Fatal(err)
	}

	err = server.AttachFDs(second, 1)
	if err != nil {
		t.Fatal(err)
	}
	f := second.ReadFile()
	defer f.Close()
	if contents := readFD(t, f); contents != "kept" {
		t.Fatalf("expected the kept message's fd, got %q", contents)
	}
}

func TestAttachFDsMissing(t *testing.T) {
	client, server := connPair(t)
	ctx := context.Background()

	err := client.Send(ctx, mustBuild(t, wire.NewMessage(&testObject{id: 3}, 0)))
	if err != nil {
		t.Fatal(err)
	}

	msg, err := server.Recv(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = server.AttachFDs(msg, 1)
	if !errors.Is(err, wire.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
	if server.Err() == nil {
		t.Fatal("connection was not faulted")
	}
}

func TestPeerClosed(t *testing.T) {
	a, b := socketpair(t)
	server := wire.NewConn(b)
	defer server.Close()
	a.Close()

	for range 2 {
		_, err := server.Recv(context.Background())
		if !errors.Is(err, wire.ErrPeerClosed) {
			t.Fatalf("expected peer closed, got %v", err)
		}
	}
}

func TestPeerClosedMidFrame(t *testing.T) {
	a, b := socketpair(t)
	server := wire.NewConn(b)
	defer server.Close()

	_, err := a.Write([]byte{1, 0, 0, 0, 0, 0, 16, 0, 1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	a.Close()

	_, err = server.Recv(context.Background())
	var ioerr *wire.IOError
	if !errors.As(err, &ioerr) {
		t.Fatalf("expected I/O error, got %v", err)
	}
}

func TestRecvTooLarge(t *testing.T) {
	a, b := socketpair(t)
	defer a.Close()
	server := wire.NewConn(b)
	defer server.Close()

	_, err := a.Write([]byte{1, 0, 0, 0, 0, 0, 0x00, 0x20})
	if err != nil {
		t.Fatal(err)
	}

	_, err = server.Recv(context.Background())
	if !errors.Is(err, wire.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
}

func TestRecvCancelIdle(t *testing.T) {
	client, server := connPair(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := server.Recv(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if server.Err() != nil {
		t.Fatalf("idle cancellation faulted the connection: %v", server.Err())
	}

	err = client.Send(context.Background(), mustBuild(t, wire.NewMessage(&testObject{id: 1}, 0)))
	if err != nil {
		t.Fatal(err)
	}
	_, err = server.Recv(context.Background())
	if err != nil {
		t.Fatalf("receive after cancellation: %v", err)
	}
}

func TestRecvCancelMidFrame(t *testing.T) {
	a, b := socketpair(t)
	defer a.Close()
	server := wire.NewConn(b)
	defer server.Close()

	_, err := a.Write([]byte{1, 0, 0, 0, 0, 0, 16, 0})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = server.Recv(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if server.Err() == nil {
		t.Fatal("connection was not faulted")
	}

	_, err = server.Recv(context.Background())
	if err == nil {
		t.Fatal("faulted connection returned a message")
	}
}

func TestSendClosed(t *testing.T) {
	client, _ := connPair(t)
	client.Close()

	err := client.Send(context.Background(), mustBuild(t, wire.NewMessage(&testObject{id: 1}, 0)))
	if !errors.Is(err, net.ErrClosed) {
		t.Fatalf("expected closed connection error, got %v", err)
	}
}
