// Package wiretest helps test generated bindings without a
// connection.
package wiretest

import (
	"testing"

	"deedles.dev/wayland/internal/bin"
	"deedles.dev/wayland/internal/objstore"
	"deedles.dev/wayland/wire"
)

// State is a wire.State that records the messages enqueued to it
// instead of sending them. Deleted objects are removed immediately.
type State struct {
	*objstore.Store

	Sent []*wire.MessageBuilder
}

// NewState returns a State that allocates IDs from the client range.
func NewState() *State {
	return &State{Store: objstore.New(wire.DisplayID, wire.MaxClientID)}
}

func (s *State) Enqueue(msg *wire.MessageBuilder) {
	s.Sent = append(s.Sent, msg)
}

// Take builds the messages that have been enqueued since the last
// call and returns their encodings, clearing the record.
func (s *State) Take(t testing.TB) (data [][]byte) {
	t.Helper()

	for _, mb := range s.Sent {
		msg, err := mb.Build()
		if err != nil {
			t.Fatalf("build %v: %v", mb, err)
		}

		buf, err := msg.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		msg.Close()

		data = append(data, buf)
	}

	s.Sent = nil
	return data
}

// Message returns an incoming message with the given payload words.
func Message(t testing.TB, sender uint32, op uint16, payload ...uint32) *wire.Message {
	t.Helper()

	size := 8 + 4*len(payload)
	data := bin.Append(nil, sender)
	data = bin.Append(data, uint32(size)<<16|uint32(op))
	for _, v := range payload {
		data = bin.Append(data, v)
	}

	msg, err := wire.ParseMessage(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	return msg
}

// String returns the payload words of a Wayland string argument.
func String(v string) []uint32 {
	data := append([]byte(v), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}

	words := []uint32{uint32(len(v) + 1)}
	for i := 0; i < len(data); i += 4 {
		words = append(words, bin.Value[uint32]([4]byte(data[i:i+4])))
	}
	return words
}
