package wasm

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// handleType is the C++ type carrying class instances across embind.
const handleType = "intptr_t"

// export is an exported wrapper function: a class method taking the
// receiver handle first, or a free function.
type export struct {
	symbol string
	class  *schema.Class
	static bool
	target string
	params []arg
	result result
}

type arg struct {
	name   string
	spec   string // C++ parameter declaration
	handle *schema.Class
	ref    schema.RefType
	list   bool
	// vector is the registered vector name of a list parameter.
	vector string
}

type result struct {
	spec   string
	handle bool
	ref    schema.RefType
	class  *schema.Class
	void   bool
	policy bool // take_ownership on the returned value
}

type callable interface {
	gen.Typed
	Parameters() []*schema.Parameter
}

func exportMethod(c *schema.Class, m *schema.Method) (*export, bool) {
	x := &export{symbol: c.Name() + "_" + m.Name(), class: c, static: m.IsStatic(), target: m.Name()}
	return x, x.bind(m)
}

func exportFunction(api *schema.API, fn *schema.Function) (*export, bool) {
	x := &export{symbol: api.Name() + "_" + fn.Name(), target: fn.Name()}
	return x, x.bind(fn)
}

func (x *export) bind(c callable) bool {
	for _, p := range c.Parameters() {
		a := arg{name: p.Name(), ref: p.RefType(), list: p.IsList()}
		if p.IsList() {
			a.vector = VectorName(p.Resolved())
		}
		if cls, ok := p.Resolved().(*schema.Class); ok && !p.IsList() && !p.IsArray() {
			if a.ref != schema.RefRaw && a.ref != schema.RefNonOptional {
				return false
			}
			a.handle = cls
			a.spec = handleType + " " + p.Name()
		} else {
			a.spec = cpp.ParamSpec(p)
		}
		x.params = append(x.params, a)
	}

	r := result{ref: c.RefType(), void: c.IsVoid()}
	resolved := c.Resolved()
	switch cls, ok := resolved.(*schema.Class); {
	case ok && !c.IsList() && !c.IsArray():
		if r.ref != schema.RefRaw && r.ref != schema.RefUnique && r.ref != schema.RefNonOptional {
			return false
		}
		r.handle, r.class, r.spec = true, cls, handleType
	case r.ref != schema.RefNone && !c.IsList() && !c.IsArray():
		// pointers and references to values have no JS rendition
		return false
	default:
		r.spec = cpp.ReturnSpec(c)
		r.policy = !r.void && (!c.IsPrimitive() || c.IsString())
	}
	x.result = r
	return true
}

// decl returns the C++ prototype of x.
func (x *export) decl() string {
	var params []string
	if x.class != nil && !x.static {
		params = append(params, handleType+" handle")
	}
	for _, a := range x.params {
		params = append(params, a.spec)
	}
	return fmt.Sprintf("BNG_API_EXPORT %s %s(%s)", x.result.spec, x.symbol, strings.Join(params, ", "))
}

// body returns the statement forwarding x to the C++ interface.
func (x *export) body() string {
	args := make([]string, len(x.params))
	for i, a := range x.params {
		switch {
		case a.handle == nil:
			args[i] = a.name
		case a.ref == schema.RefNonOptional:
			args[i] = fmt.Sprintf("*(%s*)%s", a.handle.Name(), a.name)
		default:
			args[i] = fmt.Sprintf("(%s*)%s", a.handle.Name(), a.name)
		}
	}
	var call string
	switch {
	case x.class == nil:
		call = fmt.Sprintf("%s(%s)", x.target, strings.Join(args, ", "))
	case x.static:
		call = fmt.Sprintf("%s::%s(%s)", x.class.Name(), x.target, strings.Join(args, ", "))
	default:
		call = fmt.Sprintf("((%s*)handle)->%s(%s)", x.class.Name(), x.target, strings.Join(args, ", "))
	}
	r := x.result
	switch {
	case r.void:
		return call + ";"
	case r.handle && r.ref == schema.RefUnique:
		return fmt.Sprintf("return (%s)%s.release();", handleType, call)
	case r.handle && r.ref == schema.RefNonOptional:
		return fmt.Sprintf("return (%s)&%s;", handleType, call)
	case r.handle:
		return fmt.Sprintf("return (%s)%s;", handleType, call)
	}
	return "return " + call + ";"
}

// VectorName returns the name a list element type's vector is registered
// under: float64 lists use Float64Vector.
func VectorName(t schema.Type) string {
	name := t.Name()
	return strings.ToUpper(name[:1]) + name[1:] + "Vector"
}
