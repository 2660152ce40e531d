package main

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"deedles.dev/wayland/internal/set"
	"deedles.dev/wayland/protocol"
	"golang.org/x/exp/slices"
)

const wirePath = "deedles.dev/wayland/wire"

var (
	//go:embed templates/*.tmpl
	templateFS embed.FS

	templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
)

// Context holds the state of the generation of a single file.
type Context struct {
	Job   Job
	Proto *protocol.Protocol

	used set.Set[string]
}

type fileView struct {
	Source     string
	Package    string
	Std        []string
	Imports    []importView
	Interfaces []ifaceView
}

type importView struct {
	Name string
	Path string
}

type ifaceView struct {
	Name     string
	Wire     string
	Version  int
	Doc      string
	Client   bool
	InType   string
	Inbound  []opView
	Outbound []opView
	Enums    []enumView
}

type opView struct {
	Name        string
	Wire        string
	Opcode      int
	Doc         string
	Destructor  bool
	NumFDs      int
	Params      string
	Returns     string
	ReturnNames string
	CallArgs    string
	Decode      []string
	Encode      []string
	Adds        []string
	Files       []string
}

type enumView struct {
	Name     string
	Wire     string
	Doc      string
	Bitfield bool
	MaskName string
	Mask     string
	Zero     string
	Values   string
	Entries  []entryView
	Unique   []entryView
	Flags    []entryView
}

type entryView struct {
	Name  string
	Value string
	Doc   string
}

// Generate produces formatted Go source for the bindings of proto.
func Generate(job Job, proto *protocol.Protocol) ([]byte, error) {
	ctx := Context{
		Job:   job,
		Proto: proto,
		used:  set.New[string](),
	}

	view, err := ctx.file()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "file.tmpl", view)
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

func (ctx *Context) use(name string) {
	ctx.used.Add(name)
}

func (ctx *Context) file() (view fileView, err error) {
	view.Source = filepath.Base(ctx.Job.XML)
	view.Package = ctx.Job.Package

	for i := range ctx.Proto.Interfaces {
		inter, err := ctx.iface(&ctx.Proto.Interfaces[i])
		if err != nil {
			return view, err
		}
		view.Interfaces = append(view.Interfaces, inter)
	}

	view.Std = []string{"fmt"}
	for _, std := range []string{"os", "strings"} {
		if ctx.used.Has(std) {
			view.Std = append(view.Std, std)
		}
	}

	view.Imports = []importView{{Path: wirePath}}
	for _, i := range ctx.Job.Imports {
		if ctx.used.Has(i.Name) {
			view.Imports = append(view.Imports, importView{Name: i.Name, Path: i.Path})
		}
	}
	slices.SortFunc(view.Imports, func(a, b importView) int {
		return strings.Compare(a.Path, b.Path)
	})

	return view, nil
}

func (ctx *Context) iface(inter *protocol.Interface) (view ifaceView, err error) {
	view = ifaceView{
		Name:    ctx.localName(inter.Name),
		Wire:    inter.Name,
		Version: inter.Version,
		Doc:     ctx.comment(inter.Description),
		Client:  ctx.Job.Client,
		InType:  ctx.inType(),
	}

	for opcode, op := range ctx.listeners(inter) {
		v, err := ctx.inbound(inter, op, opcode)
		if err != nil {
			return view, fmt.Errorf("%v.%v: %w", inter.Name, op.Name, err)
		}
		view.Inbound = append(view.Inbound, v)
	}

	for opcode, op := range ctx.senders(inter) {
		v, err := ctx.outbound(inter, op, opcode)
		if err != nil {
			return view, fmt.Errorf("%v.%v: %w", inter.Name, op.Name, err)
		}
		view.Outbound = append(view.Outbound, v)
	}

	for _, enum := range inter.Enums {
		v, err := ctx.enum(inter, enum)
		if err != nil {
			return view, fmt.Errorf("%v.%v: %w", inter.Name, enum.Name, err)
		}
		view.Enums = append(view.Enums, v)
	}

	return view, nil
}

// enumType returns the Go type for an enum reference, resolving it
// the same way that interfaces are.
func (ctx *Context) enumType(inter *protocol.Interface, ref string) (string, bool) {
	if ref == "" {
		return "", false
	}

	iname, ename, ok := strings.Cut(ref, ".")
	if !ok {
		iname, ename = inter.Name, ref
	}

	base, ok := ctx.ident(iname)
	if !ok {
		return "", false
	}
	return base + ctx.camel(ename), true
}

func (ctx *Context) inbound(inter *protocol.Interface, op protocol.Op, opcode int) (view opView, err error) {
	view = opView{
		Name:       ctx.camel(op.Name),
		Wire:       op.Name,
		Opcode:     opcode,
		Doc:        ctx.comment(op.Description),
		Destructor: op.IsDestructor(),
		NumFDs:     op.NumFDs(),
	}

	params := make([]string, 0, len(op.Args))
	names := make([]string, 0, len(op.Args))
	for _, arg := range op.Args {
		name := ctx.paramName(arg.Name)
		typ, err := ctx.decode(inter, arg, name, &view)
		if err != nil {
			return view, err
		}
		params = append(params, name+" "+typ)
		names = append(names, name)
	}

	view.Params = strings.Join(params, ", ")
	view.CallArgs = strings.Join(names, ", ")
	return view, nil
}

func (ctx *Context) decode(inter *protocol.Interface, arg protocol.Arg, name string, view *opView) (string, error) {
	line := func(format string, args ...any) {
		view.Decode = append(view.Decode, fmt.Sprintf(format, args...))
	}

	switch arg.Type {
	case "int":
		if enum, ok := ctx.enumType(inter, arg.Enum); ok {
			line("%v := wire.ReadIntEnum(msg, %vFromUint32)", name, enum)
			return enum, nil
		}
		line("%v := msg.ReadInt()", name)
		return "int32", nil

	case "uint":
		if enum, ok := ctx.enumType(inter, arg.Enum); ok {
			line("%v := wire.ReadEnum(msg, %vFromUint32)", name, enum)
			return enum, nil
		}
		line("%v := msg.ReadUint()", name)
		return "uint32", nil

	case "fixed":
		line("%v := msg.ReadFixed()", name)
		return "wire.Fixed", nil

	case "string":
		if arg.AllowNull {
			line("%v := msg.ReadNullString()", name)
			return "*string", nil
		}
		line("%v := msg.ReadString()", name)
		return "string", nil

	case "array":
		line("%v := msg.ReadArray()", name)
		return "[]byte", nil

	case "fd":
		ctx.use("os")
		line("%v := msg.ReadFile()", name)
		view.Files = append(view.Files, name)
		return "*os.File", nil

	case "object":
		if arg.Interface != "" {
			if typ, ok := ctx.ident(arg.Interface); ok {
				line("%v := wire.ReadObject[*%v](msg, obj.state, %v)", name, typ, arg.AllowNull)
				return "*" + typ, nil
			}
		}
		line("%v := msg.ReadObject(%v)", name, arg.AllowNull)
		return "uint32", nil

	case "new_id":
		if arg.Interface == "" {
			line("%v := msg.ReadNewID()", name)
			return "wire.NewID", nil
		}
		if typ, ok := ctx.ident(arg.Interface); ok {
			line("%v := %v(obj.state)", name, ctx.constructor(typ))
			line("%v.SetID(msg.ReadObject(false))", name)
			view.Adds = append(view.Adds, name)
			return "*" + typ, nil
		}
		line("%v := msg.ReadObject(false)", name)
		return "uint32", nil
	}

	return "", fmt.Errorf("unknown type %q for arg %v", arg.Type, arg.Name)
}

func (ctx *Context) outbound(inter *protocol.Interface, op protocol.Op, opcode int) (view opView, err error) {
	view = opView{
		Name:       ctx.senderName(op),
		Wire:       op.Name,
		Opcode:     opcode,
		Doc:        ctx.comment(op.Description),
		Destructor: op.IsDestructor(),
		NumFDs:     op.NumFDs(),
	}

	var params, rets, retNames []string
	names := make([]string, 0, len(op.Args))
	for _, arg := range op.Args {
		name := ctx.paramName(arg.Name)
		names = append(names, name)

		if ctx.isRet(arg) {
			typ, _ := ctx.ident(arg.Interface)
			rets = append(rets, name+" *"+typ)
			retNames = append(retNames, name)
			view.Encode = append(view.Encode,
				fmt.Sprintf("%v = %v(obj.state)", name, ctx.constructor(typ)),
				fmt.Sprintf("obj.state.Add(%v)", name),
				fmt.Sprintf("builder.WriteObject(%v)", name),
			)
			continue
		}

		typ, err := ctx.encode(inter, arg, name, &view)
		if err != nil {
			return view, err
		}
		params = append(params, name+" "+typ)
	}

	view.Params = strings.Join(params, ", ")
	view.CallArgs = strings.Join(names, ", ")
	if len(rets) > 0 {
		view.Returns = "(" + strings.Join(rets, ", ") + ")"
		view.ReturnNames = strings.Join(retNames, ", ")
	}
	return view, nil
}

func (ctx *Context) encode(inter *protocol.Interface, arg protocol.Arg, name string, view *opView) (string, error) {
	line := func(format string, args ...any) {
		view.Encode = append(view.Encode, fmt.Sprintf(format, args...))
	}

	switch arg.Type {
	case "int":
		if enum, ok := ctx.enumType(inter, arg.Enum); ok {
			line("builder.WriteInt(int32(%v))", name)
			return enum, nil
		}
		line("builder.WriteInt(%v)", name)
		return "int32", nil

	case "uint":
		if enum, ok := ctx.enumType(inter, arg.Enum); ok {
			line("builder.WriteUint(uint32(%v))", name)
			return enum, nil
		}
		line("builder.WriteUint(%v)", name)
		return "uint32", nil

	case "fixed":
		line("builder.WriteFixed(%v)", name)
		return "wire.Fixed", nil

	case "string":
		if arg.AllowNull {
			line("builder.WriteNullString(%v)", name)
			return "*string", nil
		}
		line("builder.WriteString(%v)", name)
		return "string", nil

	case "array":
		line("builder.WriteArray(%v)", name)
		return "[]byte", nil

	case "fd":
		ctx.use("os")
		line("builder.WriteFile(%v)", name)
		return "*os.File", nil

	case "object":
		if arg.Interface != "" {
			if typ, ok := ctx.ident(arg.Interface); ok {
				line("builder.WriteObject(%v)", name)
				return "*" + typ, nil
			}
		}
		line("builder.WriteObjectID(%v)", name)
		return "uint32", nil

	case "new_id":
		if arg.Interface == "" {
			line("builder.WriteNewID(%v)", name)
			return "wire.NewID", nil
		}
		line("builder.WriteObjectID(%v)", name)
		return "uint32", nil
	}

	return "", fmt.Errorf("unknown type %q for arg %v", arg.Type, arg.Name)
}

func (ctx *Context) enum(inter *protocol.Interface, enum protocol.Enum) (view enumView, err error) {
	name := ctx.localName(inter.Name) + ctx.camel(enum.Name)
	view = enumView{
		Name:     name,
		Wire:     inter.Name + "." + enum.Name,
		Doc:      ctx.comment(enum.Description),
		Bitfield: enum.Bitfield,
		MaskName: ctx.unexport(name) + "Mask",
		Mask:     fmt.Sprintf("%#x", enum.Mask()),
	}
	if enum.Bitfield {
		ctx.use("strings")
	}

	seen := set.New[uint32]()
	values := make([]string, 0, len(enum.Entries))
	for _, entry := range enum.Entries {
		v, err := entry.Uint32()
		if err != nil {
			return view, fmt.Errorf("entry %v: %w", entry.Name, err)
		}

		literal := strconv.FormatUint(uint64(v), 10)
		if strings.HasPrefix(entry.Value, "0x") || strings.HasPrefix(entry.Value, "0X") {
			literal = fmt.Sprintf("%#x", v)
		}

		ev := entryView{
			Name:  name + ctx.camel(entry.Name),
			Value: literal,
			Doc:   ctx.comment(protocol.Description{Summary: entry.Summary, Text: entry.Description.Text}),
		}
		view.Entries = append(view.Entries, ev)

		if seen.Has(v) {
			continue
		}
		seen.Add(v)
		view.Unique = append(view.Unique, ev)
		values = append(values, literal)
		if v == 0 {
			view.Zero = ev.Name
			continue
		}
		view.Flags = append(view.Flags, ev)
	}
	view.Values = strings.Join(values, ", ")

	return view, nil
}
