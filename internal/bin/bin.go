// Package bin contains utilities for dealing with the little-endian
// 32-bit words that make up a Wayland message.
package bin

import (
	"encoding/binary"
	"io"
)

func Bytes[T ~int32 | ~uint32](v T) [4]byte {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], uint32(v))
	return data
}

func Value[T ~int32 | ~uint32](data [4]byte) T {
	return T(binary.LittleEndian.Uint32(data[:]))
}

// Append appends the encoding of v to buf.
func Append[T ~int32 | ~uint32](buf []byte, v T) []byte {
	return binary.LittleEndian.AppendUint32(buf, uint32(v))
}

func Write[T ~int32 | ~uint32](w io.Writer, v T) error {
	data := Bytes(v)
	n, err := w.Write(data[:])
	if (err == nil) && (n < len(data)) {
		return io.ErrShortWrite
	}
	return err
}
