package protocol

import (
	"errors"
	"fmt"

	"deedles.dev/wayland/internal/set"
)

// Validate checks the parts of the protocol that the parser can't
// check element by element: duplicate names, enum references, and
// bitfields. All problems found are returned together.
func (p *Protocol) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	inames := make(set.Set[string], len(p.Interfaces))
	for i := range p.Interfaces {
		inter := &p.Interfaces[i]
		if inames.Has(inter.Name) {
			fail("duplicate interface %v", inter.Name)
		}
		inames.Add(inter.Name)

		enames := make(set.Set[string], len(inter.Enums))
		for _, enum := range inter.Enums {
			if enames.Has(enum.Name) {
				fail("%v: duplicate enum %v", inter.Name, enum.Name)
			}
			enames.Add(enum.Name)

			if len(enum.Entries) == 0 {
				fail("%v.%v: enum has no entries", inter.Name, enum.Name)
			}
			for _, entry := range enum.Entries {
				if _, err := entry.Uint32(); err != nil {
					fail("%v.%v.%v: invalid value %q", inter.Name, enum.Name, entry.Name, entry.Value)
				}
			}
		}

		for _, ops := range [][]Op{inter.Requests, inter.Events} {
			for _, op := range ops {
				for _, arg := range op.Args {
					errs = append(errs, p.validateArg(inter, op, arg)...)
				}
			}
		}
	}

	return errors.Join(errs...)
}

func (p *Protocol) validateArg(inter *Interface, op Op, arg Arg) (errs []error) {
	where := fmt.Sprintf("%v.%v(%v)", inter.Name, op.Name, arg.Name)

	if arg.AllowNull && (arg.Type != "object") && (arg.Type != "string") && (arg.Type != "new_id") {
		errs = append(errs, fmt.Errorf("%v: allow-null is not valid for %v arguments", where, arg.Type))
	}
	if (arg.Interface != "") && (arg.Type != "object") && (arg.Type != "new_id") {
		errs = append(errs, fmt.Errorf("%v: interface is not valid for %v arguments", where, arg.Type))
	}

	if arg.Enum == "" {
		return errs
	}
	if (arg.Type != "uint") && (arg.Type != "int") {
		errs = append(errs, fmt.Errorf("%v: enum %v used with %v argument", where, arg.Enum, arg.Type))
	}

	owner, enum := p.Enum(inter, arg.Enum)
	if (owner != nil) && (enum == nil) {
		errs = append(errs, fmt.Errorf("%v: unknown enum %v", where, arg.Enum))
	}
	return errs
}
