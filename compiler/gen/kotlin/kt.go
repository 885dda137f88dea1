// Package kotlin generates the Android bindings of an API: a Kotlin wrapper
// whose classes hold native handles, and the JNI source implementing its
// external funs against the C++ interface.
package kotlin

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Generator emits the Kotlin wrapper.
type Generator struct{}

// New returns the Kotlin wrapper generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (*Generator) Name() string { return "kotlin" }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return cpp.Comment(text) }

// Generate implements gen.Generator.
func (g *Generator) Generate(api *schema.API, cfg *gen.Config, _, src *gen.Context) error {
	e := gen.NewEmitter(src)
	if cfg.Package != "" {
		e.AddLines("package "+cfg.Package, "")
	}
	if len(api.Constants()) > 0 {
		for _, c := range api.Constants() {
			e.AddLines(ConstantDecl(c))
		}
		e.AddLines("")
	}
	for _, en := range api.Enums() {
		g.enum(e, en)
	}
	for _, s := range api.Structs() {
		g.structure(e, s)
	}
	for _, c := range api.Classes() {
		g.class(e, c)
	}
	if len(api.Functions()) > 0 {
		b := e.PushBlock("object "+gen.Pascal(api.Name())+" {", gen.Indent(), gen.PostPop("}"))
		var externals []*native
		for _, fn := range api.Functions() {
			n, ok := bindNative(fn, true)
			if !ok {
				e.AddLines(fmt.Sprintf("// %s: signature not representable over JNI", fn.Name()))
				continue
			}
			e.AddLines("@JvmStatic")
			e.AddLines(wrapperFun(n, ""), "")
			externals = append(externals, n)
		}
		for _, n := range externals {
			e.AddLines("@JvmStatic", externalFun(n))
		}
		e.Pop(b)
	}
	return e.Err()
}

// ConstantDecl returns the const val declaration of c.
func ConstantDecl(c *schema.Constant) string {
	return fmt.Sprintf("const val %s: %s = %s", c.Name(), TypeName(c.Resolved()), Literal(c))
}

// Literal returns the Kotlin literal of c: Float literals take an f suffix,
// Double literals a fractional part and Long literals an L suffix.
func Literal(c *schema.Constant) string {
	v := c.Value()
	switch TypeName(c.Resolved()) {
	case "Float":
		if !strings.Contains(v, ".") {
			v += ".0"
		}
		return v + "f"
	case "Double":
		if !strings.Contains(v, ".") {
			v += ".0"
		}
	case "Long":
		return v + "L"
	case "UByte", "UShort", "UInt":
		return v + "u"
	case "ULong":
		return v + "uL"
	}
	return v
}

func (*Generator) enum(e *gen.Emitter, en *schema.Enum) {
	b := e.PushBlock(fmt.Sprintf("enum class %s(val value: Int) {", en.Name()), gen.Indent(), gen.PostPop("}", ""))
	members := en.Members()
	for i, m := range members {
		sep := ","
		if i == len(members)-1 {
			sep = ";"
		}
		e.AddLines(fmt.Sprintf("%s(%s)%s", m.Name(), m.Value(), sep))
	}
	e.AddLines("")
	cb := e.PushBlock("companion object {", gen.Indent(), gen.PostPop("}"))
	e.AddLines(fmt.Sprintf("fun fromValue(value: Int): %s = values().first { it.value == value }", en.Name()))
	e.Pop(cb)
	e.Pop(b)
}

func (*Generator) structure(e *gen.Emitter, s *schema.Struct) {
	b := e.PushBlock("data class "+s.Name()+"(", gen.Indent(), gen.PostPop(")", ""))
	members := s.Members()
	for i, m := range members {
		sep := ","
		if i == len(members)-1 {
			sep = ""
		}
		e.AddLines(fmt.Sprintf("@JvmField var %s: %s%s", gen.Camel(m.Name()), TypeSpec(m), sep))
	}
	e.Pop(b)
}

func (*Generator) class(e *gen.Emitter, c *schema.Class) {
	b := e.PushBlock(fmt.Sprintf("class %s internal constructor(internal var handle: Long) {", c.Name()),
		gen.Indent(), gen.PostPop("}", ""))

	var statics, methods []*native
	var unbound []string
	for _, m := range c.Methods() {
		n, ok := bindNative(m, m.IsStatic())
		switch {
		case !ok:
			unbound = append(unbound, m.Name())
		case m.IsStatic():
			statics = append(statics, n)
		default:
			methods = append(methods, n)
		}
	}

	if len(c.Constants()) > 0 || len(statics) > 0 {
		cb := e.PushBlock("companion object {", gen.Indent(), gen.PostPop("}", ""))
		for _, k := range c.Constants() {
			e.AddLines(ConstantDecl(k))
		}
		for _, n := range statics {
			e.AddLines("", "@JvmStatic", wrapperFun(n, ""))
		}
		for _, n := range statics {
			e.AddLines("", "@JvmStatic", externalFun(n))
		}
		e.Pop(cb)
	}

	for _, n := range methods {
		e.AddLines(wrapperFun(n, "handle"))
	}
	for _, name := range unbound {
		e.AddLines(fmt.Sprintf("// %s: signature not representable over JNI", name))
	}

	db := e.PushBlock("fun destroy() {", gen.Indent(), gen.PostPop("}", ""))
	ib := e.PushBlock("if (handle != 0L) {", gen.Indent(), gen.PostPop("}"))
	e.AddLines("destroyJNI(handle)", "handle = 0L")
	e.Pop(ib)
	e.Pop(db)

	for _, n := range methods {
		e.AddLines(externalFun(n))
	}
	e.AddLines("private external fun destroyJNI(handle: Long)")
	e.Pop(b)
}

// wrapperFun returns the public fun forwarding to the external fun of n.
// handle names the receiver handle passed first, empty for statics.
func wrapperFun(n *native, handle string) string {
	params := make([]string, len(n.params))
	args := make([]string, 0, len(n.params)+1)
	if handle != "" {
		args = append(args, handle)
	}
	for i, p := range n.params {
		name := gen.Camel(p.name)
		params[i] = name + ": " + p.public()
		switch p.kind {
		case kindDoubles:
			args = append(args, name+".toDoubleArray()")
		case kindEnum:
			args = append(args, name+".value")
		case kindHandle:
			args = append(args, name+".handle")
		default:
			args = append(args, name)
		}
	}
	call := fmt.Sprintf("%s(%s)", externalName(n.name), strings.Join(args, ", "))
	switch n.result.kind {
	case kindEnum:
		call = fmt.Sprintf("%s.fromValue(%s)", n.result.elem.Name(), call)
	case kindHandle:
		call = fmt.Sprintf("%s(%s)", n.result.elem.Name(), call)
	}
	return fmt.Sprintf("fun %s(%s): %s = %s", gen.Camel(n.name), strings.Join(params, ", "), n.result.public(), call)
}

// externalFun returns the private external fun declaration of n.
func externalFun(n *native) string {
	var params []string
	if !n.static {
		params = append(params, "handle: Long")
	}
	for _, p := range n.params {
		params = append(params, gen.Camel(p.name)+": "+p.external())
	}
	return fmt.Sprintf("private external fun %s(%s): %s", externalName(n.name), strings.Join(params, ", "), n.result.external())
}
