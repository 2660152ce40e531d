package wire_test

import (
	"fmt"
	"os"
	"testing"

	"deedles.dev/wayland/wire"
	"golang.org/x/sys/unix"
)

type testObject struct {
	id uint32
}

func (obj *testObject) ID() uint32                   { return obj.id }
func (obj *testObject) SetID(id uint32)              { obj.id = id }
func (obj *testObject) Dispatch(*wire.Message) error { return nil }
func (obj *testObject) Delete()                      {}
func (obj *testObject) Interface() string            { return "test_object" }
func (obj *testObject) Version() uint32              { return 1 }
func (obj *testObject) MethodName(uint16) string     { return "method" }
func (obj *testObject) FDCount(uint16) int           { return 0 }
func (obj *testObject) String() string               { return fmt.Sprintf("test_object@%v", obj.id) }

func memfd(t *testing.T, contents string) *os.File {
	t.Helper()

	fd, err := unix.MemfdCreate("wire-test", unix.MFD_CLOEXEC)
	if err != nil {
		t.Fatal(err)
	}
	file := os.NewFile(uintptr(fd), "wire-test")
	t.Cleanup(func() { file.Close() })

	_, err = file.WriteString(contents)
	if err != nil {
		t.Fatal(err)
	}
	return file
}

// readFD returns the contents of the file behind fd from the start.
func readFD(t *testing.T, file *os.File) string {
	t.Helper()

	buf := make([]byte, 64)
	n, err := file.ReadAt(buf, 0)
	if (err != nil) && (n == 0) {
		t.Fatal(err)
	}
	return string(buf[:n])
}

func mustBuild(t *testing.T, mb *wire.MessageBuilder) *wire.Message {
	t.Helper()

	msg, err := mb.Build()
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

func marshal(t *testing.T, msg *wire.Message) []byte {
	t.Helper()

	data, err := msg.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return data
}
