package objstore_test

import (
	"testing"

	"deedles.dev/wayland/internal/objstore"
	"deedles.dev/wayland/wire"
	"github.com/google/go-cmp/cmp"
)

type testObject struct {
	id      uint32
	deleted bool
}

func (obj *testObject) ID() uint32                   { return obj.id }
func (obj *testObject) SetID(id uint32)              { obj.id = id }
func (obj *testObject) Dispatch(*wire.Message) error { return nil }
func (obj *testObject) Delete()                      { obj.deleted = true }
func (obj *testObject) Interface() string            { return "test_object" }
func (obj *testObject) Version() uint32              { return 1 }
func (obj *testObject) MethodName(uint16) string     { return "unknown" }
func (obj *testObject) FDCount(uint16) int           { return 0 }

func TestAllocReuse(t *testing.T) {
	s := objstore.New(wire.DisplayID, wire.MaxClientID)

	objs := make([]*testObject, 5)
	for i := range objs {
		objs[i] = new(testObject)
		s.Add(objs[i])
	}

	ids := func() (ids []uint32) {
		for _, obj := range objs {
			ids = append(ids, obj.id)
		}
		return ids
	}
	if diff := cmp.Diff([]uint32{1, 2, 3, 4, 5}, ids()); diff != "" {
		t.Fatal(diff)
	}

	s.Delete(4)
	s.Delete(2)
	if !objs[1].deleted || !objs[3].deleted {
		t.Fatal("deleted objects were not notified")
	}
	if s.Get(2) != nil {
		t.Fatal("deleted object is still present")
	}

	a, b, c := new(testObject), new(testObject), new(testObject)
	s.Add(a)
	s.Add(b)
	s.Add(c)
	got := []uint32{a.id, b.id, c.id}
	if diff := cmp.Diff([]uint32{2, 4, 6}, got); diff != "" {
		t.Fatal(diff)
	}
	if s.Len() != 6 {
		t.Fatalf("expected 6 live objects, got %v", s.Len())
	}
}

func TestRemoteIDs(t *testing.T) {
	s := objstore.New(wire.MinServerID, wire.MaxServerID)

	remote := &testObject{id: 7}
	s.Add(remote)
	if s.Get(7) != remote {
		t.Fatal("object with preset ID not found")
	}

	local := new(testObject)
	s.Add(local)
	if local.id != wire.MinServerID {
		t.Fatalf("expected first server ID, got %#x", local.id)
	}

	s.Delete(7)
	next := new(testObject)
	s.Add(next)
	if next.id != wire.MinServerID+1 {
		t.Fatalf("remote ID leaked into local allocator: got %#x", next.id)
	}
}

func TestExhausted(t *testing.T) {
	s := objstore.New(wire.MaxServerID, wire.MaxServerID)
	s.Add(new(testObject))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on exhausted range")
		}
	}()
	s.Add(new(testObject))
}

type fdObject struct {
	testObject
}

func (obj *fdObject) FDCount(uint16) int { return 1 }

func TestRetire(t *testing.T) {
	s := objstore.New(wire.DisplayID, wire.MaxClientID)

	obj := new(fdObject)
	s.Add(obj)
	s.Retire(obj.id)
	if !obj.deleted {
		t.Fatal("retired object was not notified")
	}

	z := s.Get(obj.id)
	if (z == nil) || (z == wire.Object(obj)) {
		t.Fatalf("expected a stand-in, got %v", z)
	}
	if z.FDCount(0) != 1 {
		t.Fatal("stand-in does not report the original's file descriptor count")
	}
	if err := z.Dispatch(nil); err != nil {
		t.Fatal(err)
	}

	next := new(testObject)
	s.Add(next)
	if next.id == obj.id {
		t.Fatal("retired ID was reused before it was deleted")
	}

	obj.deleted = false
	s.Retire(obj.id)
	s.Delete(obj.id)
	if obj.deleted {
		t.Fatal("retired object was notified twice")
	}

	again := new(testObject)
	s.Add(again)
	if again.id != obj.id {
		t.Fatalf("expected ID %v to be reused, got %v", obj.id, again.id)
	}
}

func TestClear(t *testing.T) {
	s := objstore.New(wire.DisplayID, wire.MaxClientID)

	a, b := new(testObject), new(testObject)
	s.Add(a)
	s.Add(b)
	s.Retire(b.id)
	b.deleted = false

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected no objects, got %v", s.Len())
	}
	if !a.deleted {
		t.Fatal("live object was not notified")
	}
	if b.deleted {
		t.Fatal("retired object was notified again")
	}
}
