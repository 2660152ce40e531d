package protocol

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError is returned when a protocol file can't be parsed. It
// identifies the element at fault.
type ParseError struct {
	Element string
	Line    int
	Err     error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("line %v: <%v>: %v", err.Line, err.Element, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

var argTypes = map[string]struct{}{
	"int":    {},
	"uint":   {},
	"fixed":  {},
	"string": {},
	"object": {},
	"new_id": {},
	"array":  {},
	"fd":     {},
}

type parser struct {
	d *xml.Decoder
}

// Parse reads a protocol XML document from r. Child elements keep the
// order in which they were declared.
func Parse(r io.Reader) (*Protocol, error) {
	p := parser{d: xml.NewDecoder(r)}

	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &ParseError{Element: "protocol", Err: errors.New("no protocol element found")}
			}
			return nil, p.wrap("", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "protocol" {
			return nil, p.errorf(start.Name.Local, "unexpected root element")
		}
		return p.protocol(start)
	}
}

// ParseFile parses the protocol XML file at path.
func ParseFile(path string) (*Protocol, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	proto, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %v: %w", path, err)
	}
	return proto, nil
}

func (p *parser) line() int {
	line, _ := p.d.InputPos()
	return line
}

func (p *parser) errorf(elem, format string, args ...any) error {
	return &ParseError{Element: elem, Line: p.line(), Err: fmt.Errorf(format, args...)}
}

func (p *parser) wrap(elem string, err error) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		return err
	}
	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		return &ParseError{Element: elem, Line: serr.Line, Err: err}
	}
	return &ParseError{Element: elem, Line: p.line(), Err: err}
}

// children reads the contents of the element that was just started,
// up to and including its end tag. Child elements are passed to
// handle, which is responsible for consuming them. Character data is
// passed to text if it is not nil.
func (p *parser) children(elem string, handle func(xml.StartElement) error, text func([]byte)) error {
	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return p.wrap(elem, err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			if handle == nil {
				return p.errorf(tok.Name.Local, "unexpected element inside <%v>", elem)
			}
			err := handle(tok)
			if err != nil {
				return err
			}
		case xml.CharData:
			if text != nil {
				text(tok)
			}
		case xml.EndElement:
			return nil
		}
	}
}

type attrs struct {
	p    *parser
	elem string
	m    map[string]string
}

func (p *parser) attrs(start xml.StartElement) attrs {
	m := make(map[string]string, len(start.Attr))
	for _, attr := range start.Attr {
		m[attr.Name.Local] = attr.Value
	}
	return attrs{p: p, elem: start.Name.Local, m: m}
}

func (a attrs) get(name string) string {
	return a.m[name]
}

func (a attrs) required(name string) (string, error) {
	v, ok := a.m[name]
	if !ok || (v == "") {
		return "", a.p.errorf(a.elem, "missing required attribute %q", name)
	}
	return v, nil
}

func (a attrs) version(name string) (int, error) {
	v, ok := a.m[name]
	if !ok {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 0)
	if (err != nil) || (n < 1) {
		return 0, a.p.errorf(a.elem, "invalid %v %q", name, v)
	}
	return int(n), nil
}

func (a attrs) flag(name string) (bool, error) {
	v, ok := a.m[name]
	if !ok {
		return false, nil
	}

	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, a.p.errorf(a.elem, "invalid %v %q", name, v)
	}
}

func (p *parser) text(start xml.StartElement) (string, error) {
	var buf strings.Builder
	err := p.children(start.Name.Local, nil, func(data []byte) { buf.Write(data) })
	return strings.TrimSpace(buf.String()), err
}

func (p *parser) description(start xml.StartElement) (desc Description, err error) {
	desc.Summary = p.attrs(start).get("summary")
	desc.Text, err = p.text(start)
	return desc, err
}

func (p *parser) protocol(start xml.StartElement) (proto *Protocol, err error) {
	proto = new(Protocol)
	a := p.attrs(start)
	proto.Name, err = a.required("name")
	if err != nil {
		return nil, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "copyright":
			proto.Copyright, err = p.text(child)
			return err
		case "description":
			proto.Description, err = p.description(child)
			return err
		case "interface":
			inter, err := p.iface(child)
			if err != nil {
				return err
			}
			proto.Interfaces = append(proto.Interfaces, inter)
			return nil
		default:
			return p.errorf(child.Name.Local, "unexpected element inside <protocol>")
		}
	}, nil)
	return proto, err
}

func (p *parser) iface(start xml.StartElement) (inter Interface, err error) {
	a := p.attrs(start)
	inter.Name, err = a.required("name")
	if err != nil {
		return inter, err
	}
	if _, err := a.required("version"); err != nil {
		return inter, err
	}
	inter.Version, err = a.version("version")
	if err != nil {
		return inter, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "description":
			inter.Description, err = p.description(child)
			return err
		case "request", "event":
			op, err := p.op(child)
			if err != nil {
				return err
			}
			if child.Name.Local == "request" {
				inter.Requests = append(inter.Requests, op)
			} else {
				inter.Events = append(inter.Events, op)
			}
			return nil
		case "enum":
			enum, err := p.enum(child)
			if err != nil {
				return err
			}
			inter.Enums = append(inter.Enums, enum)
			return nil
		default:
			return p.errorf(child.Name.Local, "unexpected element inside <interface>")
		}
	}, nil)
	return inter, err
}

func (p *parser) op(start xml.StartElement) (op Op, err error) {
	a := p.attrs(start)
	op.Name, err = a.required("name")
	if err != nil {
		return op, err
	}
	op.Type = a.get("type")
	if (op.Type != "") && (op.Type != "destructor") {
		return op, p.errorf(start.Name.Local, "unknown type %q", op.Type)
	}
	op.Since, err = a.version("since")
	if err != nil {
		return op, err
	}
	op.DeprecatedSince, err = a.version("deprecated-since")
	if err != nil {
		return op, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "description":
			op.Description, err = p.description(child)
			return err
		case "arg":
			arg, err := p.arg(child)
			if err != nil {
				return err
			}
			op.Args = append(op.Args, arg)
			return nil
		default:
			return p.errorf(child.Name.Local, "unexpected element inside <%v>", start.Name.Local)
		}
	}, nil)
	return op, err
}

func (p *parser) arg(start xml.StartElement) (arg Arg, err error) {
	a := p.attrs(start)
	arg.Name, err = a.required("name")
	if err != nil {
		return arg, err
	}
	arg.Type, err = a.required("type")
	if err != nil {
		return arg, err
	}
	if _, ok := argTypes[arg.Type]; !ok {
		return arg, p.errorf(start.Name.Local, "unknown type %q for arg %q", arg.Type, arg.Name)
	}
	arg.Summary = a.get("summary")
	arg.Interface = a.get("interface")
	arg.Enum = a.get("enum")
	arg.AllowNull, err = a.flag("allow-null")
	if err != nil {
		return arg, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		if child.Name.Local != "description" {
			return p.errorf(child.Name.Local, "unexpected element inside <arg>")
		}
		arg.Description, err = p.description(child)
		return err
	}, nil)
	return arg, err
}

func (p *parser) enum(start xml.StartElement) (enum Enum, err error) {
	a := p.attrs(start)
	enum.Name, err = a.required("name")
	if err != nil {
		return enum, err
	}
	enum.Since, err = a.version("since")
	if err != nil {
		return enum, err
	}
	enum.Bitfield, err = a.flag("bitfield")
	if err != nil {
		return enum, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		switch child.Name.Local {
		case "description":
			enum.Description, err = p.description(child)
			return err
		case "entry":
			entry, err := p.entry(child)
			if err != nil {
				return err
			}
			enum.Entries = append(enum.Entries, entry)
			return nil
		default:
			return p.errorf(child.Name.Local, "unexpected element inside <enum>")
		}
	}, nil)
	return enum, err
}

func (p *parser) entry(start xml.StartElement) (entry Entry, err error) {
	a := p.attrs(start)
	entry.Name, err = a.required("name")
	if err != nil {
		return entry, err
	}
	entry.Value, err = a.required("value")
	if err != nil {
		return entry, err
	}
	if _, err := entry.Uint32(); err != nil {
		return entry, p.errorf(start.Name.Local, "invalid value %q for entry %q", entry.Value, entry.Name)
	}
	entry.Summary = a.get("summary")
	entry.Since, err = a.version("since")
	if err != nil {
		return entry, err
	}
	entry.DeprecatedSince, err = a.version("deprecated-since")
	if err != nil {
		return entry, err
	}

	err = p.children(start.Name.Local, func(child xml.StartElement) (err error) {
		if child.Name.Local != "description" {
			return p.errorf(child.Name.Local, "unexpected element inside <entry>")
		}
		entry.Description, err = p.description(child)
		return err
	}, nil)
	return entry, err
}
