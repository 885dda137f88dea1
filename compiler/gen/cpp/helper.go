package cpp

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Comment renders text as C++ line comments.
var Comment = gen.LineComment("// ")

// Namespace returns the C++ namespace of api: its name with "_" replaced
// by "::", so "test_api" lives in test::api.
func Namespace(api *schema.API) string {
	return strings.ReplaceAll(api.Name(), "_", "::")
}

// TypeName returns the C++ spelling of t. Aliases, enums, structs and
// classes keep their declared name.
func TypeName(t schema.Type) string {
	if t == nil {
		return ""
	}
	p, ok := t.(*schema.Primitive)
	if !ok {
		return t.Name()
	}
	switch {
	case p.IsVoid(), p.IsBool():
		return p.Name()
	case p.IsInt():
		return p.Name() + "_t"
	case p.IsFloat():
		if p.Is64() {
			return "double"
		}
		return "float"
	case p.IsString():
		return "std::string"
	}
	return p.Name()
}

// IsSysHeader reports whether name is included with angle brackets.
func IsSysHeader(name string) bool {
	return !strings.Contains(name, ".") || strings.HasPrefix(name, "std")
}

// Enclose returns name wrapped in the include delimiters it needs. Names
// already wrapped are returned as is.
func Enclose(name string) string {
	if strings.ContainsAny(name, `"<`) {
		return name
	}
	if IsSysHeader(name) {
		return "<" + name + ">"
	}
	return `"` + name + `"`
}

// Include emits an #include directive per name.
func Include(ctx *gen.Context, names ...string) {
	for _, n := range names {
		ctx.AddLines("#include " + Enclose(n))
	}
}

// Pragma emits a #pragma directive.
func Pragma(ctx *gen.Context, pg string) {
	ctx.AddLines("#pragma " + pg)
}

// PushIfdef opens an #if defined(symbol) block closed by its #endif.
func PushIfdef(ctx *gen.Context, symbol string) *gen.Block {
	return ctx.PushBlock(
		fmt.Sprintf("#if defined(%s)", symbol),
		gen.PostPop(fmt.Sprintf("#endif // defined(%s)", symbol)),
	)
}

// PushExternC opens an extern "C" block guarded for C++ compilers. The
// block emits its guarded closing brace when popped.
func PushExternC(ctx *gen.Context) (*gen.Block, error) {
	ec := ctx.PushBlock("", gen.OnPrePop(func() error {
		ctx.AddLines("")
		b := PushIfdef(ctx, "__cplusplus")
		ctx.AddLines(`} // extern "C"`)
		return ctx.PopBlock(b)
	}))
	b := PushIfdef(ctx, "__cplusplus")
	ctx.AddLines(`extern "C" {`)
	if err := ctx.PopBlock(b); err != nil {
		return nil, err
	}
	ctx.AddLines("")
	return ec, nil
}

// smartPtr returns std::shared_ptr<T> or std::unique_ptr<T>.
func smartPtr(ref schema.RefType, name string) string {
	return fmt.Sprintf("std::%s_ptr<%s>", ref, name)
}

// elemSpec returns the element spelling of v: the type name with its
// pointer or reference symbol, or a smart pointer.
func elemSpec(v gen.Typed, symbol bool) string {
	ref := v.RefType()
	name := TypeName(v.Type())
	if ref.IsOwning() {
		return smartPtr(ref, name)
	}
	if symbol {
		return name + ref.Symbol()
	}
	return name
}

func container(v gen.Typed, elem string) string {
	switch {
	case v.IsArray():
		return fmt.Sprintf("std::array<%s, %d>", elem, v.ArrayCount())
	case v.IsList():
		return fmt.Sprintf("std::vector<%s>", elem)
	}
	return elem
}

func constPrefix(v gen.Typed) string {
	if v.IsConst() {
		return "const "
	}
	return ""
}

// ParamSpec returns the declaration of a parameter. Containers, strings and
// smart pointers are passed by reference; a non_optional container is
// passed by plain reference rather than as a container of references.
func ParamSpec(p gen.Typed) string {
	ref := p.RefType()
	spec := elemSpec(p, !((p.IsArray() || p.IsList()) && ref == schema.RefNonOptional))
	switch {
	case p.IsArray(), p.IsList():
		spec = container(p, spec) + "&"
	case p.IsString() && !ref.IsPointerLike(), ref.IsOwning():
		spec += "&"
	}
	return constPrefix(p) + spec + " " + p.Name()
}

// Params joins the declarations of params.
func Params(params []*schema.Parameter) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = ParamSpec(p)
	}
	return strings.Join(out, ", ")
}

// ReturnSpec returns the return type of a method or function.
func ReturnSpec(v gen.Typed) string {
	ref := v.RefType()
	if v.IsArray() || v.IsList() {
		spec := container(v, elemSpec(v, ref != schema.RefNonOptional))
		if ref == schema.RefNonOptional {
			spec = constPrefix(v) + spec + "&"
		}
		return spec
	}
	return elemSpec(v, true)
}

// MemberSpec returns the declaration of a data member.
func MemberSpec(m gen.Typed) string {
	cnst := constPrefix(m)
	spec := elemSpec(m, true)
	if m.RefType().IsPointerLike() && (m.IsArray() || m.IsList()) {
		spec = cnst + spec
		cnst = ""
	}
	return cnst + container(m, spec) + " " + m.Name()
}

// ConstantValue returns the literal of c, with an f suffix for fractional
// float32 values.
func ConstantValue(c *schema.Constant) string {
	if c.HasFloatValue() {
		if p, ok := schema.AsPrimitive(c.Resolved()); ok && p.Name() == schema.TypeFloat32 {
			return c.Value() + "f"
		}
	}
	return c.Value()
}

// Args joins the names of params.
func Args(params []*schema.Parameter) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name()
	}
	return strings.Join(out, ", ")
}
