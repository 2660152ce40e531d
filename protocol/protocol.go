// Package protocol defines the types necessary for reading a
// protocol-specification XML file, along with a parser that produces
// them.
package protocol

import (
	"strconv"
	"strings"
)

// Protocol is a parsed protocol XML file.
type Protocol struct {
	Name        string
	Copyright   string
	Description Description

	Interfaces []Interface
}

// Interface returns the interface with the given name, or nil if there
// is no such interface in the protocol.
func (p *Protocol) Interface(name string) *Interface {
	for i := range p.Interfaces {
		if p.Interfaces[i].Name == name {
			return &p.Interfaces[i]
		}
	}
	return nil
}

// Enum resolves an enum reference as it appears in an arg's enum
// attribute. References without a dot are relative to from. If the
// reference names an interface that is not part of p, both return
// values are nil.
func (p *Protocol) Enum(from *Interface, ref string) (*Interface, *Enum) {
	iname, ename, ok := strings.Cut(ref, ".")
	if !ok {
		return from, from.Enum(ref)
	}

	inter := p.Interface(iname)
	if inter == nil {
		return nil, nil
	}
	return inter, inter.Enum(ename)
}

type Interface struct {
	Name        string
	Version     int
	Description Description

	Requests []Op
	Events   []Op
	Enums    []Enum
}

// Enum returns the enum with the given name, or nil if the interface
// has no such enum.
func (i *Interface) Enum(name string) *Enum {
	for e := range i.Enums {
		if i.Enums[e].Name == name {
			return &i.Enums[e]
		}
	}
	return nil
}

// Description is the human-readable documentation attached to most
// elements.
type Description struct {
	Summary string
	Text    string
}

// Op is a request or an event. Its opcode is its index in the list
// that it was declared in.
type Op struct {
	Name            string
	Type            string
	Since           int
	DeprecatedSince int
	Description     Description

	Args []Arg
}

// IsDestructor reports whether the object is destroyed once the
// message has been handled.
func (op Op) IsDestructor() bool {
	return op.Type == "destructor"
}

// NumFDs returns the number of fd arguments.
func (op Op) NumFDs() (n int) {
	for _, arg := range op.Args {
		if arg.Type == "fd" {
			n++
		}
	}
	return n
}

type Arg struct {
	Name        string
	Type        string
	Summary     string
	Interface   string
	Enum        string
	AllowNull   bool
	Description Description
}

type Enum struct {
	Name        string
	Since       int
	Bitfield    bool
	Description Description

	Entries []Entry
}

// Mask returns the bitwise OR of every entry's value. Entries with
// invalid values are ignored.
func (e Enum) Mask() (mask uint32) {
	for _, entry := range e.Entries {
		v, err := entry.Uint32()
		if err != nil {
			continue
		}
		mask |= v
	}
	return mask
}

type Entry struct {
	Name            string
	Value           string
	Summary         string
	Since           int
	DeprecatedSince int
	Description     Description
}

// Uint32 parses the entry's value, which is either decimal or, if
// prefixed with 0x, hexadecimal.
func (e Entry) Uint32() (uint32, error) {
	v, base := e.Value, 10
	if hex, ok := strings.CutPrefix(v, "0x"); ok {
		v, base = hex, 16
	} else if hex, ok := strings.CutPrefix(v, "0X"); ok {
		v, base = hex, 16
	}

	n, err := strconv.ParseUint(v, base, 32)
	return uint32(n), err
}
