package wasm

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// JSGenerator emits the ES module wrapping the embind exports.
type JSGenerator struct{}

// NewJS returns the JS wrapper generator.
func NewJS() *JSGenerator { return &JSGenerator{} }

// Name implements gen.Generator.
func (*JSGenerator) Name() string { return "js" }

// Outputs implements gen.Generator.
func (*JSGenerator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*JSGenerator) Comment(text string) []string { return gen.LineComment("// ")(text) }

// BindName returns the name of the exported function binding api to a
// loaded wasm module.
func BindName(api *schema.API) string { return "bind" + gen.Pascal(api.Name()) }

// Generate implements gen.Generator.
//
// Constants are exported directly. Enums, classes and functions need the
// loaded module and are returned by the bind function:
//
//	const api = bindTestApi(await loadWasm());
//	const w = api.Widget.create();
func (g *JSGenerator) Generate(api *schema.API, _ *gen.Config, _, src *gen.Context) error {
	e := gen.NewEmitter(src)
	if len(api.Constants()) > 0 {
		for _, c := range api.Constants() {
			e.AddLines(fmt.Sprintf("export const %s = %s;", c.Name(), c.Value()))
		}
		e.AddLines("")
	}

	b := e.PushBlock(fmt.Sprintf("export function %s(wasm) {", BindName(api)), gen.Indent(), gen.PostPop("}"))
	var names []string

	if len(api.Usage().ListTypes()) > 0 {
		tb := e.PushBlock("const toVector = (VectorType, values) => {", gen.Indent(), gen.PostPop("};", ""))
		e.AddLines("const vec = new VectorType();")
		lb := e.PushBlock("for (const value of values) {", gen.Indent(), gen.PostPop("}"))
		e.AddLines("vec.push_back(value);")
		e.Pop(lb)
		e.AddLines("return vec;")
		e.Pop(tb)
	}

	for _, en := range api.Enums() {
		eb := e.PushBlock(fmt.Sprintf("const %s = Object.freeze({", en.Name()), gen.Indent(), gen.PostPop("});", ""))
		for _, m := range en.Members() {
			e.AddLines(fmt.Sprintf("%s: wasm.%s.%s,", m.Name(), en.Name(), m.Name()))
		}
		e.Pop(eb)
		names = append(names, en.Name())
	}

	for _, c := range api.Classes() {
		g.class(e, c)
		names = append(names, c.Name())
	}

	for _, fn := range api.Functions() {
		x, ok := exportFunction(api, fn)
		if !ok {
			continue
		}
		name := gen.Camel(fn.Name())
		fb := e.PushBlock(fmt.Sprintf("const %s = (%s) => {", name, jsParams(x)), gen.Indent(), gen.PostPop("};", ""))
		call(e, x)
		e.Pop(fb)
		names = append(names, name)
	}

	e.AddLines(fmt.Sprintf("return Object.freeze({ %s });", strings.Join(names, ", ")))
	e.Pop(b)
	return e.Err()
}

func (*JSGenerator) class(e *gen.Emitter, c *schema.Class) {
	b := e.PushBlock(fmt.Sprintf("class %s {", c.Name()), gen.Indent(), gen.PostPop("}", ""))
	if len(c.Constants()) > 0 {
		for _, k := range c.Constants() {
			e.AddLines(fmt.Sprintf("static %s = %s;", k.Name(), k.Value()))
		}
		e.AddLines("")
	}
	cb := e.PushBlock("constructor(handle) {", gen.Indent(), gen.PostPop("}", ""))
	e.AddLines("this.handle = handle;")
	e.Pop(cb)

	for _, m := range c.Methods() {
		x, ok := exportMethod(c, m)
		if !ok {
			continue
		}
		decl := gen.Camel(m.Name())
		if m.IsStatic() {
			decl = "static " + decl
		}
		mb := e.PushBlock(fmt.Sprintf("%s(%s) {", decl, jsParams(x)), gen.Indent(), gen.PostPop("}", ""))
		call(e, x)
		e.Pop(mb)
	}

	db := e.PushBlock("destroy() {", gen.Indent(), gen.PostPop("}"))
	ib := e.PushBlock("if (this.handle) {", gen.Indent(), gen.PostPop("}"))
	e.AddLines(fmt.Sprintf("wasm.%s_destroy(this.handle);", c.Name()), "this.handle = 0;")
	e.Pop(ib)
	e.Pop(db)
	e.Pop(b)
}

func jsParams(x *export) string {
	names := make([]string, len(x.params))
	for i, a := range x.params {
		names[i] = gen.Camel(a.name)
	}
	return strings.Join(names, ", ")
}

// call emits the body of a JS function forwarding to export x. List
// arguments are copied into registered vectors and released afterwards.
func call(e *gen.Emitter, x *export) {
	var (
		args    []string
		vectors []string
	)
	if x.class != nil && !x.static {
		args = append(args, "this.handle")
	}
	for _, a := range x.params {
		name := gen.Camel(a.name)
		switch {
		case a.list:
			vec := name + "Vec"
			e.AddLines(fmt.Sprintf("const %s = toVector(wasm.%s, %s);", vec, a.vector, name))
			vectors = append(vectors, vec)
			args = append(args, vec)
		case a.handle != nil:
			args = append(args, name+".handle")
		default:
			args = append(args, name)
		}
	}
	invoke := fmt.Sprintf("wasm.%s(%s)", x.symbol, strings.Join(args, ", "))
	if x.result.handle {
		invoke = fmt.Sprintf("new %s(%s)", x.result.class.Name(), invoke)
	}
	stmt := "return " + invoke + ";"
	if x.result.void {
		stmt = invoke + ";"
	}
	if len(vectors) == 0 {
		e.AddLines(stmt)
		return
	}
	tb := e.PushBlock("try {", gen.Indent(), gen.PostPop("} finally {"))
	e.AddLines(stmt)
	e.Pop(tb)
	fb := e.PushBlock("", gen.Indent(), gen.PostPop("}"))
	for _, v := range vectors {
		e.AddLines(v + ".delete();")
	}
	e.Pop(fb)
}
