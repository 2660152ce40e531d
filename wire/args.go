package wire

// ReadEnum reads a uint argument and converts it with conv, which is
// one of the generated FromUint32 functions. A value that conv
// rejects is recorded as the message's error.
func ReadEnum[T any](msg *Message, conv func(uint32) (T, error)) (v T) {
	raw := msg.ReadUint()
	if msg.err != nil {
		return v
	}

	v, err := conv(raw)
	if err != nil {
		msg.err = err
	}
	return v
}

// ReadIntEnum is like ReadEnum but for int arguments that carry an
// enum, such as wl_output.geometry's transform.
func ReadIntEnum[T any](msg *Message, conv func(uint32) (T, error)) (v T) {
	raw := msg.ReadInt()
	if msg.err != nil {
		return v
	}

	v, err := conv(uint32(raw))
	if err != nil {
		msg.err = err
	}
	return v
}

// CheckBitfield returns an InvalidEnumError if v has any bits set that
// are not in mask.
func CheckBitfield(name string, v, mask uint32) error {
	if v&^mask != 0 {
		return InvalidEnumError{Enum: name, Value: v}
	}
	return nil
}

// ReadObject reads an object argument and looks it up in state. An ID
// that state has no object for is recorded as the message's error. An
// object of a type other than T, such as the stand-in for one that has
// been destroyed locally, reads as the zero value.
func ReadObject[T Object](msg *Message, state State, nullable bool) (v T) {
	id := msg.ReadObject(nullable)
	if (id == 0) || (msg.err != nil) {
		return v
	}

	obj := state.Get(id)
	if obj == nil {
		msg.err = UnknownObjectError{ID: id}
		return v
	}

	v, _ = obj.(T)
	return v
}
