// Package objstore implements the per-connection table of live
// protocol objects and the allocator for one side's ID range.
package objstore

import (
	"fmt"
	"sync"

	"deedles.dev/wayland/wire"
	"golang.org/x/exp/slices"
)

// Store maps object IDs to objects. IDs allocated by Add come from the
// range given to New, with freed IDs reused lowest first. Objects with
// IDs chosen by the remote end are inserted with their ID already set.
//
// A Store is safe for concurrent use, but an object's Delete method is
// called without the lock held so that it may itself use the Store.
type Store struct {
	m        sync.Mutex
	objects  map[uint32]wire.Object
	min, max uint32
	next     uint32
	free     []uint32
}

// New returns a Store that allocates IDs in [min, max].
func New(min, max uint32) *Store {
	return &Store{
		objects: make(map[uint32]wire.Object),
		min:     min,
		max:     max,
		next:    min,
	}
}

// Add inserts obj. If obj's ID is zero, a new one is allocated from
// the Store's range and set on obj. It panics if the range is
// exhausted.
func (s *Store) Add(obj wire.Object) {
	s.m.Lock()
	defer s.m.Unlock()

	id := obj.ID()
	if id == 0 {
		id = s.alloc()
		obj.SetID(id)
	}

	s.objects[id] = obj
}

func (s *Store) alloc() uint32 {
	if len(s.free) > 0 {
		id := s.free[0]
		s.free = s.free[1:]
		return id
	}

	if (s.next == 0) || (s.next > s.max) {
		panic(fmt.Errorf("object ID range [%#x, %#x] exhausted", s.min, s.max))
	}
	id := s.next
	s.next++
	return id
}

// Owns reports whether id falls in the range that this Store
// allocates from.
func (s *Store) Owns(id uint32) bool {
	return (id >= s.min) && (id <= s.max)
}

func (s *Store) Get(id uint32) wire.Object {
	s.m.Lock()
	defer s.m.Unlock()

	return s.objects[id]
}

// Delete removes the object with the given ID, if there is one, and
// calls its Delete method. IDs from the Store's own range become
// available for reuse.
func (s *Store) Delete(id uint32) {
	s.m.Lock()
	obj, ok := s.objects[id]
	delete(s.objects, id)
	if ok && s.Owns(id) {
		i, found := slices.BinarySearch(s.free, id)
		if !found {
			s.free = slices.Insert(s.free, i, id)
		}
	}
	s.m.Unlock()

	if obj != nil {
		obj.Delete()
	}
}

// Clear removes every object and calls their Delete methods. It is
// used when a connection ends.
func (s *Store) Clear() {
	s.m.Lock()
	objects := s.objects
	s.objects = make(map[uint32]wire.Object)
	s.free = nil
	s.next = s.min
	s.m.Unlock()

	for _, obj := range objects {
		obj.Delete()
	}
}

// Retire replaces the object with the given ID with a stand-in that
// discards incoming messages and calls the original's Delete method.
// The ID stays reserved until Delete is called with it, which is how a
// client waits for the server to acknowledge the destruction of an
// object before reusing its ID.
func (s *Store) Retire(id uint32) {
	s.m.Lock()
	obj, ok := s.objects[id]
	if _, dead := obj.(zombie); !ok || dead {
		s.m.Unlock()
		return
	}
	s.objects[id] = zombie{obj}
	s.m.Unlock()

	obj.Delete()
}

// zombie is an object that has been destroyed locally but that the
// remote end might still send messages to.
type zombie struct {
	wire.Object
}

func (z zombie) Dispatch(*wire.Message) error { return nil }

func (z zombie) Delete() {}

// Len returns the number of live objects.
func (s *Store) Len() int {
	s.m.Lock()
	defer s.m.Unlock()

	return len(s.objects)
}

// Dispatch looks up the sender of msg, attaches the file descriptors
// that its opcode carries from conn, and passes it to the object. The
// object is returned so that callers can log the message against it.
func (s *Store) Dispatch(conn *wire.Conn, msg *wire.Message) (wire.Object, error) {
	obj := s.Get(msg.Sender())
	if obj == nil {
		return nil, wire.UnknownSenderIDError{Msg: msg}
	}

	err := conn.AttachFDs(msg, obj.FDCount(msg.Op()))
	if err != nil {
		return obj, err
	}
	defer msg.Close()

	return obj, obj.Dispatch(msg)
}
