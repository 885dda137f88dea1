package cbind

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// ValueKind classifies how a value crosses the C boundary.
type ValueKind uint8

// Value kinds.
const (
	KindVoid   ValueKind = iota // nothing
	KindScalar                  // number or bool, passed as is
	KindString                  // const char* in, malloc'd char* out
	KindList                    // pointer and count pair
	KindEnum                    // C enum cast to the C++ enum class
	KindHandle                  // opaque class pointer
)

// Value is the C rendition of a parameter or return value.
type Value struct {
	Name string
	Kind ValueKind
	// Elem is the resolved element type.
	Elem schema.Type
	Ref  schema.RefType
	// Const marks a const handle or a const list element.
	Const bool
}

// Wrapper is the C function forwarding to a class method or free function.
type Wrapper struct {
	Symbol string
	// Class is the owning class, nil for free functions.
	Class  *schema.Class
	Static bool
	// ConstSelf marks wrappers of const methods.
	ConstSelf bool
	Target    string
	Params    []Value
	Result    Value
}

type callable interface {
	gen.Typed
	Parameters() []*schema.Parameter
}

// WrapMethod returns the wrapper of m, or false if its signature has no C
// rendition.
func WrapMethod(c *schema.Class, m *schema.Method) (*Wrapper, bool) {
	w := &Wrapper{
		Symbol:    c.Name() + "_" + m.Name(),
		Class:     c,
		Static:    m.IsStatic(),
		ConstSelf: m.IsConstMethod(),
		Target:    m.Name(),
	}
	return w, w.bind(m)
}

// WrapFunction returns the wrapper of a free function of api, or false if
// its signature has no C rendition.
func WrapFunction(api *schema.API, fn *schema.Function) (*Wrapper, bool) {
	w := &Wrapper{Symbol: api.Name() + "_" + fn.Name(), Target: fn.Name()}
	return w, w.bind(fn)
}

// DestroySymbol returns the symbol of the destroy wrapper of c.
func DestroySymbol(c *schema.Class) string { return c.Name() + "_destroy" }

func (w *Wrapper) bind(c callable) bool {
	for _, p := range c.Parameters() {
		v, ok := param(p)
		if !ok {
			return false
		}
		w.Params = append(w.Params, v)
	}
	r, ok := result(c)
	w.Result = r
	return ok
}

// Representable reports whether m has a C wrapper.
func Representable(c *schema.Class, m *schema.Method) bool {
	_, ok := WrapMethod(c, m)
	return ok
}

// modifiedAlias reports whether v names an alias carrying its own reference
// or cardinality. Those are not flattened into C.
func modifiedAlias(v gen.Typed) bool {
	a, ok := v.Type().(*schema.Alias)
	return ok && (a.RefType() != schema.RefNone || a.IsArray() || a.IsList())
}

func param(p *schema.Parameter) (Value, bool) {
	v := Value{Name: p.Name(), Elem: p.Resolved(), Ref: p.RefType(), Const: p.IsConst()}
	if v.Elem == nil || modifiedAlias(p) {
		return v, false
	}
	if p.IsList() {
		v.Kind = KindList
		ref := p.RefType()
		return v, (ref == schema.RefNone || ref == schema.RefNonOptional) && scalarOrString(v.Elem)
	}
	return v, classify(&v)
}

func result(c callable) (Value, bool) {
	v := Value{Elem: c.Resolved(), Ref: c.RefType(), Const: c.IsConst()}
	if v.Elem == nil || modifiedAlias(c) || c.IsArray() || c.IsList() {
		return v, false
	}
	if c.IsVoid() {
		v.Kind = KindVoid
		return v, true
	}
	if v.Elem.Kind() == schema.KindClass {
		v.Kind = KindHandle
		return v, v.Ref == schema.RefRaw || v.Ref == schema.RefUnique || v.Ref == schema.RefNonOptional
	}
	return v, classify(&v)
}

// classify sets the kind of a single, non-container value.
func classify(v *Value) bool {
	switch v.Elem.Kind() {
	case schema.KindPrimitive:
		if v.Ref != schema.RefNone && v.Ref != schema.RefNonOptional {
			return false
		}
		v.Kind = KindScalar
		if v.Elem.IsString() {
			v.Kind = KindString
		}
		return true
	case schema.KindEnum:
		v.Kind = KindEnum
		return v.Ref == schema.RefNone
	case schema.KindClass:
		v.Kind = KindHandle
		return v.Ref == schema.RefRaw || v.Ref == schema.RefNonOptional
	}
	return false
}

func scalarOrString(t schema.Type) bool {
	return t.Kind() == schema.KindPrimitive && !t.IsVoid()
}

// TypeName returns the C spelling of t. Aliases are flattened to their
// resolved type and strings are char pointers.
func TypeName(t schema.Type) string {
	if t == nil {
		return ""
	}
	r := t.Resolved()
	if r.IsString() {
		return "char*"
	}
	return cpp.TypeName(r)
}

// Decl returns the C declaration of v as a parameter.
func (v Value) Decl() string {
	switch v.Kind {
	case KindList:
		return fmt.Sprintf("const %s* %s, uint32_t %s_count", TypeName(v.Elem), v.Name, v.Name)
	case KindString:
		return "const char* " + v.Name
	case KindHandle:
		return handle(v) + " " + v.Name
	}
	return TypeName(v.Elem) + " " + v.Name
}

// ReturnDecl returns the C return type of v.
func (v Value) ReturnDecl() string {
	switch v.Kind {
	case KindVoid:
		return "void"
	case KindHandle:
		return handle(v)
	}
	return TypeName(v.Elem)
}

func handle(v Value) string {
	if v.Const {
		return "const " + v.Elem.Name() + "*"
	}
	return v.Elem.Name() + "*"
}

// Decl returns the C prototype of w, without the trailing semicolon.
func (w *Wrapper) Decl() string {
	var params []string
	if w.Class != nil && !w.Static {
		self := w.Class.Name() + "* self"
		if w.ConstSelf {
			self = "const " + self
		}
		params = append(params, self)
	}
	for _, p := range w.Params {
		params = append(params, p.Decl())
	}
	return fmt.Sprintf("%s %s(%s)", w.Result.ReturnDecl(), w.Symbol, strings.Join(params, ", "))
}

// body returns the statements forwarding w to the C++ interface in
// namespace ns.
func (w *Wrapper) body(ns string) []string {
	var (
		lines []string
		args  = make([]string, len(w.Params))
	)
	for i, p := range w.Params {
		switch p.Kind {
		case KindString:
			lines = append(lines, fmt.Sprintf("std::string %s_arg(%s);", p.Name, p.Name))
			args[i] = p.Name + "_arg"
		case KindList:
			lines = append(lines, fmt.Sprintf("std::vector<%s> %s_arg(%s, %s + %s_count);",
				cpp.TypeName(p.Elem), p.Name, p.Name, p.Name, p.Name))
			args[i] = p.Name + "_arg"
		case KindEnum:
			args[i] = fmt.Sprintf("static_cast<%s::%s>(%s)", ns, p.Elem.Name(), p.Name)
		case KindHandle:
			cast := fmt.Sprintf("reinterpret_cast<%s%s::%s*>(%s)", constOf(p.Const), ns, p.Elem.Name(), p.Name)
			if p.Ref == schema.RefNonOptional {
				cast = "*" + cast
			}
			args[i] = cast
		default:
			args[i] = p.Name
		}
	}

	var call string
	switch {
	case w.Class == nil:
		call = fmt.Sprintf("%s::%s(%s)", ns, w.Target, strings.Join(args, ", "))
	case w.Static:
		call = fmt.Sprintf("%s::%s::%s(%s)", ns, w.Class.Name(), w.Target, strings.Join(args, ", "))
	default:
		call = fmt.Sprintf("reinterpret_cast<%s%s::%s*>(self)->%s(%s)",
			constOf(w.ConstSelf), ns, w.Class.Name(), w.Target, strings.Join(args, ", "))
	}

	r := w.Result
	switch r.Kind {
	case KindVoid:
		return append(lines, call+";")
	case KindString:
		return append(lines, fmt.Sprintf("return bng_make_api_string(%s.c_str());", call))
	case KindEnum:
		return append(lines, fmt.Sprintf("return static_cast<%s>(%s);", r.Elem.Name(), call))
	case KindHandle:
		switch r.Ref {
		case schema.RefUnique:
			call += ".release()"
		case schema.RefNonOptional:
			call = "&" + call
		}
		return append(lines, fmt.Sprintf("return reinterpret_cast<%s>(%s);", handle(r), call))
	}
	return append(lines, "return "+call+";")
}

func constOf(c bool) string {
	if c {
		return "const "
	}
	return ""
}
