package wire_test

import (
	"errors"
	"testing"

	"deedles.dev/wayland/internal/bin"
	"deedles.dev/wayland/wire"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

func frame(sender uint32, op uint16, payload ...byte) []byte {
	buf := bin.Append(nil, sender)
	buf = bin.Append(buf, uint32(8+len(payload))<<16|uint32(op))
	return append(buf, payload...)
}

func TestDecodeGlobal(t *testing.T) {
	payload := []byte{
		0x04, 0x00, 0x00, 0x00,
		0x0E, 0x00, 0x00, 0x00,
		0x77, 0x6C, 0x5F, 0x63, 0x6F, 0x6D, 0x70, 0x6F, 0x73, 0x69, 0x74, 0x6F, 0x72, 0x00, 0x00, 0x00,
		0x06, 0x00, 0x00, 0x00,
	}
	msg, err := wire.ParseMessage(frame(2, 0, payload...), nil)
	if err != nil {
		t.Fatal(err)
	}

	name := msg.ReadUint()
	inter := msg.ReadString()
	version := msg.ReadUint()
	if err := msg.Err(); err != nil {
		t.Fatal(err)
	}

	type global struct {
		Name      uint32
		Interface string
		Version   uint32
	}
	if diff := cmp.Diff(global{4, "wl_compositor", 6}, global{name, inter, version}); diff != "" {
		t.Fatal(diff)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		read    func(*wire.Message)
	}{
		{
			name:    "ShortInt",
			payload: []byte{},
			read:    func(msg *wire.Message) { msg.ReadInt() },
		},
		{
			name:    "MissingNUL",
			payload: []byte{0x04, 0, 0, 0, 'a', 'b', 'c', 'd'},
			read:    func(msg *wire.Message) { msg.ReadString() },
		},
		{
			name:    "StringOverflow",
			payload: []byte{0xFF, 0xFF, 0xFF, 0xFF, 'a', 0, 0, 0},
			read:    func(msg *wire.Message) { msg.ReadString() },
		},
		{
			name:    "StringPastEnd",
			payload: []byte{0x05, 0, 0, 0, 'a', 'b', 'c', 'd'},
			read:    func(msg *wire.Message) { msg.ReadString() },
		},
		{
			name:    "NullString",
			payload: []byte{0, 0, 0, 0},
			read:    func(msg *wire.Message) { msg.ReadString() },
		},
		{
			name:    "NullObject",
			payload: []byte{0, 0, 0, 0},
			read:    func(msg *wire.Message) { msg.ReadObject(false) },
		},
		{
			name:    "ArrayOverflow",
			payload: []byte{0x08, 0, 0, 0, 1, 2, 3, 4},
			read:    func(msg *wire.Message) { msg.ReadArray() },
		},
		{
			name:    "MissingFD",
			payload: []byte{},
			read:    func(msg *wire.Message) { msg.ReadFile() },
		},
		{
			name:    "TrailingBytes",
			payload: []byte{1, 0, 0, 0, 2, 0, 0, 0},
			read:    func(msg *wire.Message) { msg.ReadUint() },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload := test.payload
			for len(payload)%4 != 0 {
				payload = append(payload, 0)
			}
			msg, err := wire.ParseMessage(frame(1, 0, payload...), nil)
			if err != nil {
				t.Fatal(err)
			}

			test.read(msg)
			if !errors.Is(msg.Err(), wire.ErrMalformedPayload) {
				t.Fatalf("expected malformed payload, got %v", msg.Err())
			}
		})
	}
}

func TestDecodeNullable(t *testing.T) {
	msg, err := wire.ParseMessage(frame(1, 0, 0, 0, 0, 0, 0, 0, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}

	str := msg.ReadNullString()
	obj := msg.ReadObject(true)
	if err := msg.Err(); err != nil {
		t.Fatal(err)
	}
	if (str != nil) || (obj != 0) {
		t.Fatalf("expected null values, got %v and %v", str, obj)
	}
}

func TestPaddingIgnored(t *testing.T) {
	msg, err := wire.ParseMessage(frame(1, 0, 0x02, 0, 0, 0, 'a', 0, 0xAA, 0xBB), nil)
	if err != nil {
		t.Fatal(err)
	}

	if v := msg.ReadString(); v != "a" {
		t.Fatalf("expected %q, got %q", "a", v)
	}
	if err := msg.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestParseMessageHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Short", []byte{1, 0, 0, 0}},
		{"SizeTooSmall", []byte{1, 0, 0, 0, 0, 0, 4, 0}},
		{"Unaligned", []byte{1, 0, 0, 0, 0, 0, 10, 0, 0, 0}},
		{"SizeMismatch", []byte{1, 0, 0, 0, 0, 0, 16, 0, 0, 0, 0, 0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := wire.ParseMessage(test.data, nil)
			if !errors.Is(err, wire.ErrMalformedPayload) {
				t.Fatalf("expected malformed payload, got %v", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	type args struct {
		Int      int32
		Uint     uint32
		Fixed    wire.Fixed
		Object   uint32
		Null     uint32
		NewID    wire.NewID
		String   string
		NullStr  *string
		SomeStr  *string
		Array    []byte
		Empty    []byte
		Contents []string
	}

	some := "present"
	in := args{
		Int:      -42,
		Uint:     0xDEADBEEF,
		Fixed:    wire.FixedFloat(-3.25),
		Object:   17,
		NewID:    wire.NewID{Interface: "wl_output", Version: 4, ID: 23},
		String:   "hello, wayland",
		SomeStr:  &some,
		Array:    []byte{1, 2, 3, 4, 5},
		Empty:    []byte{},
		Contents: []string{"first", "second", "third"},
	}

	mb := wire.NewMessage(&testObject{id: 12}, 5)
	mb.WriteInt(in.Int)
	mb.WriteUint(in.Uint)
	mb.WriteFixed(in.Fixed)
	mb.WriteFile(memfd(t, in.Contents[0]))
	mb.WriteObjectID(in.Object)
	mb.WriteObjectID(in.Null)
	mb.WriteNewID(in.NewID)
	mb.WriteFile(memfd(t, in.Contents[1]))
	mb.WriteString(in.String)
	mb.WriteNullString(in.NullStr)
	mb.WriteNullString(in.SomeStr)
	mb.WriteArray(in.Array)
	mb.WriteArray(in.Empty)
	mb.WriteFile(memfd(t, in.Contents[2]))
	built := mustBuild(t, mb)
	defer built.Close()
	data := marshal(t, built)

	var fds []int
	for range built.NumFDs() {
		f := built.ReadFile()
		defer f.Close()

		fd, err := unix.Dup(int(f.Fd()))
		if err != nil {
			t.Fatal(err)
		}
		fds = append(fds, fd)
	}
	msg, err := wire.ParseMessage(data, fds)
	if err != nil {
		t.Fatal(err)
	}
	defer msg.Close()

	var out args
	out.Int = msg.ReadInt()
	out.Uint = msg.ReadUint()
	out.Fixed = msg.ReadFixed()
	f0 := msg.ReadFile()
	out.Object = msg.ReadObject(false)
	out.Null = msg.ReadObject(true)
	out.NewID = msg.ReadNewID()
	f1 := msg.ReadFile()
	out.String = msg.ReadString()
	out.NullStr = msg.ReadNullString()
	out.SomeStr = msg.ReadNullString()
	out.Array = msg.ReadArray()
	out.Empty = msg.ReadArray()
	f2 := msg.ReadFile()
	if err := msg.Err(); err != nil {
		t.Fatal(err)
	}
	defer f0.Close()
	defer f1.Close()
	defer f2.Close()
	out.Contents = []string{readFD(t, f0), readFD(t, f1), readFD(t, f2)}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff(data, marshal(t, msg)); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadEnum(t *testing.T) {
	conv := func(v uint32) (uint32, error) {
		if v > 2 {
			return 0, wire.InvalidEnumError{Enum: "test.enum", Value: v}
		}
		return v, nil
	}

	msg, err := wire.ParseMessage(frame(1, 0, 0xEF, 0xBE, 0xAD, 0xDE), nil)
	if err != nil {
		t.Fatal(err)
	}
	wire.ReadEnum(msg, conv)
	if !errors.Is(msg.Err(), wire.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", msg.Err())
	}

	var invalid wire.InvalidEnumError
	if !errors.As(msg.Err(), &invalid) || (invalid.Value != 0xDEADBEEF) {
		t.Fatalf("expected invalid enum error for 0xDEADBEEF, got %v", msg.Err())
	}
}

func TestCheckBitfield(t *testing.T) {
	const mask = 0x1 | 0x2
	for v := uint32(0); v < 8; v++ {
		err := wire.CheckBitfield("wl_output.mode", v, mask)
		if (err == nil) != (v&^mask == 0) {
			t.Errorf("value %#x: unexpected result %v", v, err)
		}
	}
}
