// Package swift generates the iOS bindings of an API. The binding is the C
// wrapper imported into Swift through a bridging header; the wrapper is a
// Swift source exposing constants and final classes that own the opaque C
// handles.
package swift

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cbind"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// NewBinding returns the generator of the C binding Swift imports.
func NewBinding() *cbind.Generator { return cbind.Named("swift-binding") }

// Generator emits the Swift wrapper.
type Generator struct{}

// New returns the Swift wrapper generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (*Generator) Name() string { return "swift" }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return cpp.Comment(text) }

// Generate implements gen.Generator. C enums and structs are imported from
// the binding and are not redeclared.
func (g *Generator) Generate(api *schema.API, cfg *gen.Config, _, src *gen.Context) error {
	e := gen.NewEmitter(src)
	e.AddLines("import Foundation")
	if cfg.SwiftHeader != "" {
		e.AddLines("import " + Module(cfg.SwiftHeader))
	}
	e.AddLines("")
	if len(api.Constants()) > 0 {
		for _, c := range api.Constants() {
			e.AddLines("public " + ConstantDecl(c))
		}
		e.AddLines("")
	}
	for _, c := range api.Classes() {
		g.class(e, c)
	}
	for _, fn := range api.Functions() {
		w, ok := cbind.WrapFunction(api, fn)
		if !ok || !bridged(w) {
			e.AddLines(fmt.Sprintf("// %s: signature not representable in C", fn.Name()))
			continue
		}
		function(e, "public func", fn.Name(), w, false)
	}
	return e.Err()
}

// Module returns the module name of a bridging header path.
func Module(header string) string {
	base := filepath.Base(header)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TypeName returns the Swift spelling of t. Enums and structs keep the name
// they are imported from C with.
func TypeName(t schema.Type) string {
	if t == nil {
		return ""
	}
	r := t.Resolved()
	p, ok := r.(*schema.Primitive)
	if !ok {
		return r.Name()
	}
	switch p.Name() {
	case schema.TypeVoid:
		return "Void"
	case schema.TypeBool:
		return "Bool"
	case schema.TypeString:
		return "String"
	case schema.TypeIntptr:
		return "Int"
	case schema.TypeFloat32:
		return "Float"
	case schema.TypeFloat64:
		return "Double"
	}
	// int8 -> Int8, uint64 -> UInt64
	name := p.Name()
	if p.IsUnsigned() {
		return "UInt" + strings.TrimPrefix(name, "uint")
	}
	return "Int" + strings.TrimPrefix(name, "int")
}

// ConstantDecl returns the let declaration of c.
func ConstantDecl(c *schema.Constant) string {
	return fmt.Sprintf("let %s: %s = %s", c.Name(), TypeName(c.Type()), c.Value())
}

// bridged reports whether every value of w converts implicitly between Swift
// and C. String lists have no implicit bridge.
func bridged(w *cbind.Wrapper) bool {
	for _, p := range w.Params {
		if p.Kind == cbind.KindList && p.Elem.IsString() {
			return false
		}
	}
	return true
}

func (*Generator) class(e *gen.Emitter, c *schema.Class) {
	b := e.PushBlock(fmt.Sprintf("public final class %s {", c.Name()), gen.Indent(), gen.PostPop("}", ""))
	e.AddLines(
		"let handle: OpaquePointer",
		"private let owned: Bool",
		"",
	)
	ib := e.PushBlock("init(handle: OpaquePointer, owned: Bool = true) {", gen.Indent(), gen.PostPop("}", ""))
	e.AddLines("self.handle = handle", "self.owned = owned")
	e.Pop(ib)
	db := e.PushBlock("deinit {", gen.Indent(), gen.PostPop("}", ""))
	ob := e.PushBlock("if owned {", gen.Indent(), gen.PostPop("}"))
	e.AddLines(cbind.DestroySymbol(c) + "(handle)")
	e.Pop(ob)
	e.Pop(db)

	if len(c.Constants()) > 0 {
		for _, k := range c.Constants() {
			e.AddLines("public static " + ConstantDecl(k))
		}
		e.AddLines("")
	}
	for _, m := range c.Methods() {
		w, ok := cbind.WrapMethod(c, m)
		if !ok || !bridged(w) {
			e.AddLines(fmt.Sprintf("// %s: signature not representable in C", m.Name()), "")
			continue
		}
		decl := "public func"
		if m.IsStatic() {
			decl = "public static func"
		}
		function(e, decl, m.Name(), w, m.IsFactory())
	}
	e.Pop(b)
}

// function emits a Swift function forwarding to the C wrapper w.
func function(e *gen.Emitter, decl, name string, w *cbind.Wrapper, factory bool) {
	var (
		params []string
		args   []string
	)
	if w.Class != nil && !w.Static {
		args = append(args, "handle")
	}
	for _, p := range w.Params {
		label := gen.Camel(p.Name)
		switch p.Kind {
		case cbind.KindList:
			params = append(params, fmt.Sprintf("%s: [%s]", label, TypeName(p.Elem)))
			args = append(args, label, fmt.Sprintf("UInt32(%s.count)", label))
		case cbind.KindHandle:
			params = append(params, fmt.Sprintf("%s: %s", label, p.Elem.Name()))
			args = append(args, label+".handle")
		default:
			params = append(params, fmt.Sprintf("%s: %s", label, TypeName(p.Elem)))
			args = append(args, label)
		}
	}
	call := fmt.Sprintf("%s(%s)", w.Symbol, strings.Join(args, ", "))

	r := w.Result
	sig := fmt.Sprintf("%s %s(%s)", decl, gen.Camel(name), strings.Join(params, ", "))
	switch r.Kind {
	case cbind.KindVoid:
	case cbind.KindHandle:
		sig += " -> " + r.Elem.Name()
	default:
		sig += " -> " + TypeName(r.Elem)
	}

	b := e.PushBlock(sig+" {", gen.Indent(), gen.PostPop("}", ""))
	switch r.Kind {
	case cbind.KindVoid:
		e.AddLines(call)
	case cbind.KindString:
		e.AddLines(
			fmt.Sprintf("let result = %s!", call),
			"defer { free(result) }",
			"return String(cString: result)",
		)
	case cbind.KindHandle:
		owned := "true"
		if !factory && r.Ref != schema.RefUnique {
			owned = "false"
		}
		e.AddLines(fmt.Sprintf("return %s(handle: %s!, owned: %s)", r.Elem.Name(), call, owned))
	default:
		e.AddLines("return " + call)
	}
	e.Pop(b)
}
