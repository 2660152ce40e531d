package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"deedles.dev/wayland/protocol"
	"github.com/google/go-cmp/cmp"
)

func generate(t *testing.T, job Job, src string) (string, *ast.File) {
	t.Helper()

	proto, err := protocol.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if err := proto.Validate(); err != nil {
		t.Fatal(err)
	}

	return generateProto(t, job, proto)
}

func generateProto(t *testing.T, job Job, proto *protocol.Protocol) (string, *ast.File) {
	t.Helper()

	out, err := Generate(job, proto)
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}

	file, err := parser.ParseFile(token.NewFileSet(), "protocol.go", out, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, out)
	}
	return string(out), file
}

// contains is strings.Contains, but it ignores differences in the
// amount of horizontal whitespace that gofmt uses for alignment.
func contains(out, want string) bool {
	return strings.Contains(collapse(out), collapse(want))
}

func collapse(v string) string {
	return spaces.ReplaceAllString(v, " ")
}

var spaces = regexp.MustCompile(`[ \t]+`)

func method(file *ast.File, recv, name string) *ast.FuncDecl {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || (fn.Name.Name != name) {
			continue
		}
		if recv == "" {
			if fn.Recv == nil {
				return fn
			}
			continue
		}
		if fn.Recv == nil {
			continue
		}
		star, ok := fn.Recv.List[0].Type.(*ast.StarExpr)
		if ok && (star.X.(*ast.Ident).Name == recv) {
			return fn
		}
	}
	return nil
}

// senderOpcode returns the opcode that a generated sender passes to
// wire.NewMessage.
func senderOpcode(t *testing.T, file *ast.File, recv, name string) int {
	t.Helper()

	fn := method(file, recv, name)
	if fn == nil {
		t.Fatalf("no sender %v.%v", recv, name)
	}

	op := -1
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || (sel.Sel.Name != "NewMessage") {
			return true
		}
		lit := call.Args[1].(*ast.BasicLit)
		op, _ = strconv.Atoi(lit.Value)
		return false
	})
	return op
}

func interfaceMethods(file *ast.File, name string) (names []string) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || (gen.Tok != token.TYPE) {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name != name {
				continue
			}
			for _, m := range ts.Type.(*ast.InterfaceType).Methods.List {
				names = append(names, m.Names[0].Name)
			}
		}
	}
	return names
}

func TestGenerateCore(t *testing.T) {
	proto, err := protocol.ParseFile("../../protocol/wayland.xml")
	if err != nil {
		t.Fatal(err)
	}

	job := Job{XML: "wayland.xml", Package: "wl", Prefix: "wl_", Client: true}
	out, file := generateProto(t, job, proto)

	if !strings.HasPrefix(out, "// Code generated by wlgen from wayland.xml. DO NOT EDIT.\n") {
		t.Fatalf("missing generated header:\n%v", out[:80])
	}
	if file.Name.Name != "wl" {
		t.Fatalf("unexpected package %v", file.Name.Name)
	}

	if diff := cmp.Diff(0, senderOpcode(t, file, "Display", "Sync")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(1, senderOpcode(t, file, "Display", "GetRegistry")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(1, senderOpcode(t, file, "Shm", "Release")); diff != "" {
		t.Error(diff)
	}

	expected := []string{"Geometry", "Mode", "Done", "Scale", "Name", "Description"}
	if diff := cmp.Diff(expected, interfaceMethods(file, "OutputListener")); diff != "" {
		t.Error(diff)
	}

	for _, want := range []string{
		"func (obj *Display) Sync() (callback *Callback)",
		"func (obj *Registry) Bind(name uint32, id wire.NewID)",
		"Global(name uint32, _interface string, version uint32)",
		"func (obj *Shm) CreatePool(fd *os.File, size int32) (id *ShmPool)",
		"subpixel := wire.ReadIntEnum(msg, OutputSubpixelFromUint32)",
		"flags := wire.ReadEnum(msg, OutputModeFromUint32)",
		"OutputTransform90 OutputTransform = 1",
		"objectId := msg.ReadObject(false)",
		"func BindOutput(state wire.State, registry wire.Binder, name, version uint32) *Output",
	} {
		if !contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}

	// wl_callback.done is a destructor event, so dispatching it removes
	// the callback.
	dispatch := method(file, "Callback", "Dispatch")
	var deletes int
	ast.Inspect(dispatch, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if ok && (sel.Sel.Name == "Delete") {
			deletes++
		}
		return true
	})
	if deletes != 2 {
		t.Errorf("expected both dispatch paths of wl_callback.done to delete the object, found %v", deletes)
	}
}

func TestGenerateServer(t *testing.T) {
	proto, err := protocol.ParseFile("../../protocol/wayland.xml")
	if err != nil {
		t.Fatal(err)
	}

	job := Job{XML: "wayland.xml", Package: "server", Prefix: "wl_"}
	out, file := generateProto(t, job, proto)

	if diff := cmp.Diff([]string{"Sync", "GetRegistry"}, interfaceMethods(file, "DisplayListener")); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(1, senderOpcode(t, file, "Display", "DeleteId")); diff != "" {
		t.Error(diff)
	}
	if method(file, "", "BindOutput") != nil {
		t.Error("server bindings have bind functions")
	}

	for _, want := range []string{
		"Sync(callback *Callback)",
		"callback.SetID(msg.ReadObject(false))",
		"Bind(name uint32, id wire.NewID)",
		"id := msg.ReadNewID()",
		"func (obj *Shm) Format(format ShmFormat)",
		"fd := msg.ReadFile()",
		"fd.Close()",
		"return 1",
		`Type:      "request"`,
	} {
		if !contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestOpcodeStability(t *testing.T) {
	const tmpl = `<protocol name="test">
  <interface name="test_thing" version="1">
    %v
  </interface>
</protocol>`
	requests := []string{
		`<request name="first"/>`,
		`<request name="second"><arg name="v" type="uint"/></request>`,
		`<request name="third"><arg name="s" type="string"/></request>`,
	}

	job := Job{XML: "test.xml", Package: "test", Prefix: "test_", Client: true}
	opcodes := func(order []int) map[string]int {
		var body []string
		for _, i := range order {
			body = append(body, requests[i])
		}
		_, file := generate(t, job, strings.Replace(tmpl, "%v", strings.Join(body, "\n"), 1))

		ops := make(map[string]int)
		for _, name := range []string{"First", "Second", "Third"} {
			ops[name] = senderOpcode(t, file, "Thing", name)
		}
		return ops
	}

	declared := opcodes([]int{0, 1, 2})
	if diff := cmp.Diff(map[string]int{"First": 0, "Second": 1, "Third": 2}, declared); diff != "" {
		t.Fatal(diff)
	}

	reordered := opcodes([]int{2, 0, 1})
	if cmp.Equal(declared, reordered) {
		t.Fatal("reordering requests did not change their opcodes")
	}
	if diff := cmp.Diff(map[string]int{"First": 1, "Second": 2, "Third": 0}, reordered); diff != "" {
		t.Fatal(diff)
	}
}

func TestGenerateBitfield(t *testing.T) {
	const src = `<protocol name="test">
  <interface name="wl_output" version="1">
    <enum name="mode" bitfield="true">
      <entry name="current" value="1"/>
      <entry name="preferred" value="0x2"/>
    </enum>
  </interface>
</protocol>`

	out, file := generate(t, Job{XML: "test.xml", Package: "wl", Prefix: "wl_", Client: true}, src)
	for _, want := range []string{
		"OutputModeCurrent OutputMode = 1",
		"OutputModePreferred OutputMode = 0x2",
		"const outputModeMask = 0x3",
		`wire.CheckBitfield("wl_output.mode", v, outputModeMask)`,
		`"strings"`,
	} {
		if !contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if method(file, "", "OutputModeFromUint32") == nil {
		t.Error("missing OutputModeFromUint32")
	}
	for _, name := range []string{"Has", "String", "Uint32"} {
		if !contains(out, "func (e OutputMode) "+name+"(") {
			t.Errorf("missing method OutputMode.%v", name)
		}
	}
}

func TestGenerateEscaping(t *testing.T) {
	const src = `<protocol name="test">
  <interface name="test_thing" version="1">
    <request name="version">
      <arg name="type" type="uint"/>
      <arg name="msg" type="string" allow-null="true"/>
      <arg name="2d" type="int"/>
    </request>
    <request name="destroy" type="destructor"/>
    <event name="string">
      <arg name="func" type="object" allow-null="true"/>
    </event>
    <enum name="kind">
      <entry name="default" value="0"/>
      <entry name="alias" value="0"/>
      <entry name="3d" value="3"/>
    </enum>
  </interface>
</protocol>`

	out, _ := generate(t, Job{XML: "test.xml", Package: "test", Prefix: "test_", Client: true}, src)
	for _, want := range []string{
		"func (obj *Thing) VersionRequest(_type uint32, _msg *string, _2d int32)",
		"String(_func uint32)",
		"_func := msg.ReadObject(true)",
		"ThingKind3d ThingKind = 3",
		"case 0, 3:",
		"obj.state.Delete(obj.id)",
	} {
		if !contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if strings.Contains(out, "case ThingKindAlias:") {
		t.Error("duplicate enum value produced a duplicate case")
	}
}

func TestGenerateImports(t *testing.T) {
	proto, err := protocol.ParseFile("../../protocol/wayland-drm.xml")
	if err != nil {
		t.Fatal(err)
	}

	job := Job{
		XML:     "wayland-drm.xml",
		Package: "drm",
		Prefix:  "wl_",
		Client:  true,
		Imports: []Import{
			{Name: "wl", Path: "deedles.dev/wayland/client", Prefix: "wl_"},
			{Name: "unused", Path: "example.com/unused", Prefix: "zzz_"},
		},
	}
	out, file := generateProto(t, job, proto)

	var imports []string
	for _, imp := range file.Imports {
		imports = append(imports, imp.Path.Value)
	}
	expected := []string{`"fmt"`, `"os"`, `"deedles.dev/wayland/client"`, `"deedles.dev/wayland/wire"`}
	if diff := cmp.Diff(expected, imports); diff != "" {
		t.Fatal(diff)
	}

	if senderOpcode(t, file, "Drm", "CreatePrimeBuffer") != 3 {
		t.Error("create_prime_buffer is not opcode 3")
	}
	for _, want := range []string{
		"func (obj *Drm) CreatePrimeBuffer(name *os.File, width int32, height int32, format uint32, offset0 int32, stride0 int32, offset1 int32, stride1 int32, offset2 int32, stride2 int32) (id *wl.Buffer)",
		"id = wl.NewBuffer(obj.state)",
		"format := wire.ReadEnum(msg, DrmFormatFromUint32)",
	} {
		if !contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}
