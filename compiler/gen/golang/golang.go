// Package golang generates a Go rendition of an API: constants, enums as
// typed constants, aliases, structs, and the classes and free functions as
// interfaces a Go implementation or a cgo bridge satisfies.
package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Generator emits the Go source.
type Generator struct{}

// New returns the Go generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (*Generator) Name() string { return "go" }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return gen.LineComment("// ")(text) }

// PackageName returns the Go package name for api: the last element of the
// configured package, or the API name without underscores.
func PackageName(api *schema.API, cfg *gen.Config) string {
	if cfg.Package != "" {
		p := path.Base(cfg.Package)
		return p[strings.LastIndex(p, ".")+1:]
	}
	return strings.ReplaceAll(api.Name(), "_", "")
}

// Generate implements gen.Generator.
func (g *Generator) Generate(api *schema.API, cfg *gen.Config, _, src *gen.Context) error {
	f := g.File(api, PackageName(api, cfg))
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", src.Name(), err)
	}
	out, err := imports.Process(src.Name(), buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format %s: %w", src.Name(), err)
	}
	src.AddLines(strings.TrimSuffix(string(out), "\n"))
	return nil
}

// File builds the jennifer file for api.
func (g *Generator) File(api *schema.API, pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by apigen. DO NOT EDIT.")

	if len(api.Constants()) > 0 {
		defs := make([]jen.Code, len(api.Constants()))
		for i, c := range api.Constants() {
			defs[i] = constant(gen.Pascal(c.Name()), c)
		}
		consts(f, defs)
	}
	for _, en := range api.Enums() {
		enum(f, en)
	}
	for _, a := range api.Aliases() {
		f.Commentf("%s is an alias of %s.", a.Name(), a.BaseTypeName())
		f.Type().Id(ident(a.Name())).Op("=").Add(aliasType(a))
	}
	for _, s := range api.Structs() {
		fields := make([]jen.Code, len(s.Members()))
		for i, m := range s.Members() {
			fields[i] = jen.Id(gen.Pascal(m.Name())).Add(Type(m)).Tag(map[string]string{"json": m.Name()})
		}
		f.Type().Id(ident(s.Name())).Struct(fields...)
	}
	for _, c := range api.Classes() {
		class(f, c)
	}
	if len(api.Functions()) > 0 {
		methods := make([]jen.Code, len(api.Functions()))
		for i, fn := range api.Functions() {
			methods[i] = signature(fn)
		}
		f.Commentf("Functions holds the free functions of %s.", api.Name())
		f.Type().Id("Functions").Interface(methods...)
	}
	return f
}

func constant(name string, c *schema.Constant) jen.Code {
	return jen.Id(name).Add(BaseType(c.Type())).Op("=").Add(value(c))
}

// value returns the untyped literal of c. Unsigned values are written as
// plain digits, since jen.Lit wraps uint64 in a conversion.
func value(c *schema.Constant) jen.Code {
	switch {
	case c.HasFloatValue():
		return jen.Lit(c.Float())
	case c.IsUnsigned():
		return jen.Id(strconv.FormatUint(c.Uint(), 10))
	}
	return jen.Lit(int(c.Int()))
}

// ident returns name, suffixed with "_" when it is a Go keyword.
func ident(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// consts declares defs as one const or a const group.
func consts(f *jen.File, defs []jen.Code) {
	switch len(defs) {
	case 0:
	case 1:
		f.Const().Add(defs[0])
	default:
		f.Const().Defs(defs...)
	}
}

func enum(f *jen.File, en *schema.Enum) {
	f.Type().Id(ident(en.Name())).Add(BaseType(en.BaseType()))
	defs := make([]jen.Code, len(en.Members()))
	for i, m := range en.Members() {
		defs[i] = jen.Id(en.Name() + gen.Pascal(m.Name())).Id(ident(en.Name())).Op("=").Add(value(&m.Constant))
	}
	consts(f, defs)
}

func class(f *jen.File, c *schema.Class) {
	if len(c.Constants()) > 0 {
		defs := make([]jen.Code, len(c.Constants()))
		for i, k := range c.Constants() {
			defs[i] = constant(c.Name()+gen.Pascal(k.Name()), k)
		}
		consts(f, defs)
	}
	var methods, statics []jen.Code
	taken := make(map[string]bool, len(c.Methods()))
	for _, m := range c.Methods() {
		taken[gen.Pascal(m.Name())] = true
		if m.IsStatic() {
			statics = append(statics, signature(m))
			continue
		}
		methods = append(methods, signature(m))
	}
	for _, m := range c.Members() {
		accessor := jen.Id(accessorName(m.Name(), taken)).Params().Add(Type(m))
		if m.IsStatic() {
			statics = append(statics, accessor)
			continue
		}
		methods = append(methods, accessor)
	}
	f.Commentf("%s is implemented by the native %s class.", c.Name(), c.Name())
	f.Type().Id(ident(c.Name())).Interface(methods...)
	if len(statics) > 0 {
		f.Commentf("%sStatic holds the static members of %s.", c.Name(), c.Name())
		f.Type().Id(c.Name() + "Static").Interface(statics...)
	}
}

// accessorName returns the interface method reading member name, prefixed
// with Get when a method of the class already uses the plain name.
func accessorName(name string, taken map[string]bool) string {
	n := gen.Pascal(name)
	if taken[n] {
		return "Get" + n
	}
	return n
}

type callable interface {
	gen.Typed
	Parameters() []*schema.Parameter
}

func signature(c callable) jen.Code {
	params := make([]jen.Code, len(c.Parameters()))
	for i, p := range c.Parameters() {
		params[i] = jen.Id(ident(gen.Camel(p.Name()))).Add(Type(p))
	}
	s := jen.Id(gen.Pascal(c.Name())).Params(params...)
	if !c.IsVoid() {
		s.Add(Type(c))
	}
	return s
}

// BaseType returns the Go type of t, without modifiers.
func BaseType(t schema.Type) *jen.Statement {
	p, ok := t.(*schema.Primitive)
	if !ok {
		return jen.Id(ident(t.Name()))
	}
	switch p.Name() {
	case schema.TypeIntptr:
		return jen.Int()
	case schema.TypeFloat32:
		return jen.Float32()
	case schema.TypeFloat64:
		return jen.Float64()
	}
	return jen.Id(p.Name())
}

// Type returns the Go type of v. Class values are interfaces whatever their
// reference, raw references to values are pointers.
func Type(v gen.Typed) *jen.Statement {
	elem := BaseType(v.Type())
	r := v.Resolved()
	if v.RefType() == schema.RefRaw && r != nil && r.Kind() != schema.KindClass {
		elem = jen.Op("*").Add(elem)
	}
	switch {
	case v.IsList():
		return jen.Index().Add(elem)
	case v.IsArray():
		return jen.Index(jen.Lit(v.ArrayCount())).Add(elem)
	}
	return elem
}

func aliasType(a *schema.Alias) *jen.Statement {
	elem := BaseType(a.Base())
	if a.RefType() == schema.RefRaw && a.Resolved().Kind() != schema.KindClass {
		elem = jen.Op("*").Add(elem)
	}
	switch {
	case a.IsList():
		return jen.Index().Add(elem)
	case a.IsArray():
		return jen.Index(jen.Lit(a.ArrayCount())).Add(elem)
	}
	return elem
}
