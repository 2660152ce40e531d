package main

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"deedles.dev/wayland/protocol"
)

// reserved are identifiers that generated code uses for its own
// purposes inside of methods and so can't be used for parameters.
var reserved = map[string]struct{}{
	"obj":     {},
	"builder": {},
	"msg":     {},
	"err":     {},
	"fmt":     {},
	"os":      {},
	"strings": {},
	"wire":    {},
}

// methods are the names of the methods and fields that every
// generated object type has. Senders with these names get a suffix.
var methods = map[string]struct{}{
	"ID":         {},
	"SetID":      {},
	"Dispatch":   {},
	"Delete":     {},
	"State":      {},
	"String":     {},
	"MethodName": {},
	"FDCount":    {},
	"Interface":  {},
	"Version":    {},
	"Listener":   {},
	"OnDelete":   {},
}

// localName returns the Go name of an interface that is defined by the
// protocol being generated.
func (ctx *Context) localName(v string) string {
	v, _ = strings.CutPrefix(v, ctx.Job.Prefix)
	return ctx.camel(v)
}

// ident returns the Go name of the type for the named interface,
// qualified with a package name if the interface comes from an import.
// It returns false if the interface can't be resolved.
func (ctx *Context) ident(v string) (string, bool) {
	if ctx.Proto.Interface(v) != nil {
		return ctx.localName(v), true
	}

	for _, i := range ctx.Job.Imports {
		name, ok := strings.CutPrefix(v, i.Prefix)
		if ok {
			ctx.use(i.Name)
			return i.Name + "." + ctx.camel(name), true
		}
	}

	return "", false
}

func (ctx *Context) camel(v string) string {
	var buf strings.Builder
	buf.Grow(len(v))
	shift := true
	for _, c := range v {
		if c == '_' {
			shift = true
			continue
		}

		if shift {
			c = unicode.ToUpper(c)
		}
		buf.WriteRune(c)
		shift = false
	}
	return buf.String()
}

func (ctx *Context) unexport(v string) string {
	if len(v) == 0 {
		return ""
	}

	c, size := utf8.DecodeRuneInString(v)
	if unicode.IsLower(c) {
		return v
	}

	var buf strings.Builder
	buf.Grow(len(v))
	buf.WriteRune(unicode.ToLower(c))
	buf.WriteString(v[size:])
	return buf.String()
}

// unkeyword escapes v if it can't be used as a parameter name.
func (ctx *Context) unkeyword(v string) string {
	c, _ := utf8.DecodeRuneInString(v)
	if token.IsKeyword(v) || unicode.IsDigit(c) {
		return "_" + v
	}
	if _, ok := reserved[v]; ok {
		return "_" + v
	}
	for _, i := range ctx.Job.Imports {
		if i.Name == v {
			return "_" + v
		}
	}
	return v
}

func (ctx *Context) paramName(v string) string {
	return ctx.unkeyword(ctx.unexport(ctx.camel(v)))
}

func (ctx *Context) senderName(op protocol.Op) string {
	name := ctx.camel(op.Name)
	if _, ok := methods[name]; ok {
		if ctx.Job.Client {
			return name + "Request"
		}
		return name + "Event"
	}
	return name
}

func (ctx *Context) trimLines(v string) string {
	lines := strings.Split(v, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}

// comment turns a description into a doc comment, one comment line
// per line of the description. The text is used if there is any and
// the summary otherwise.
func (ctx *Context) comment(desc protocol.Description) string {
	v := strings.TrimSpace(desc.Text)
	if v == "" {
		v = strings.TrimSpace(desc.Summary)
	}
	if v == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(ctx.trimLines(v), "\n") {
		if line == "" {
			sb.WriteString("//\n")
			continue
		}
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (ctx *Context) listeners(i *protocol.Interface) []protocol.Op {
	if ctx.Job.Client {
		return i.Events
	}
	return i.Requests
}

func (ctx *Context) senders(i *protocol.Interface) []protocol.Op {
	if ctx.Job.Client {
		return i.Requests
	}
	return i.Events
}

func (ctx *Context) inType() string {
	if ctx.Job.Client {
		return "event"
	}
	return "request"
}

// isRet reports whether arg becomes a return value of a sender rather
// than a parameter.
func (ctx *Context) isRet(arg protocol.Arg) bool {
	if (arg.Type != "new_id") || (arg.Interface == "") {
		return false
	}
	_, ok := ctx.ident(arg.Interface)
	return ok
}

func (ctx *Context) pkg(v string) string {
	before, _, ok := strings.Cut(v, ".")
	if ok {
		return before + "."
	}
	return ""
}

func (ctx *Context) trimPackage(v string) string {
	before, after, ok := strings.Cut(v, ".")
	if ok {
		return after
	}
	return before
}

// constructor returns the name of the New function for the possibly
// qualified type name v.
func (ctx *Context) constructor(v string) string {
	return ctx.pkg(v) + "New" + ctx.trimPackage(v)
}
