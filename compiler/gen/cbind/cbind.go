// Package cbind generates a C wrapper over the C++ interface of an API. The
// header declares C enums, plain structs, opaque class handles and wrapper
// prototypes; the source defines the wrappers, forwarding each call to the
// C++ interface.
//
// Only signatures with a C rendition are wrapped: scalars, strings, lists of
// scalars or strings, enums and class handles held by raw or non_optional
// reference. Returned strings are malloc'd copies owned by the caller.
package cbind

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Generator emits the C wrapper header and source.
type Generator struct {
	name string
}

// New returns the C wrapper generator.
func New() *Generator { return Named("c") }

// Named returns a C wrapper generator reporting name, for toolchains that
// consume the wrapper under their own target.
func Named(name string) *Generator { return &Generator{name: name} }

// Name implements gen.Generator.
func (g *Generator) Name() string { return g.name }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputHeader | gen.OutputSource }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return cpp.Comment(text) }

// Generate implements gen.Generator.
func (g *Generator) Generate(api *schema.API, cfg *gen.Config, hdr, src *gen.Context) error {
	if cfg.APIHeader == "" {
		return gen.NewConfigError("api_h", nil, g.name+" requires the C++ API header")
	}
	if err := g.header(api, hdr); err != nil {
		return err
	}
	return g.source(api, cfg, hdr.Name(), src)
}

func (g *Generator) header(api *schema.API, ctx *gen.Context) error {
	e := gen.NewEmitter(ctx)
	cpp.Pragma(ctx, "once")
	cpp.Include(ctx, "stdlib.h", "stdint.h", "stdbool.h", "api/api_util.h")
	e.AddLines("")
	ec, err := cpp.PushExternC(ctx)
	if err != nil {
		return err
	}
	for _, en := range api.Enums() {
		g.enum(e, en)
	}
	for _, s := range api.Structs() {
		g.structure(e, s)
	}
	for _, c := range api.Classes() {
		e.AddLines(
			"struct "+c.Name()+";",
			fmt.Sprintf("typedef struct %s %s;", c.Name(), c.Name()),
			"",
		)
	}
	for _, c := range api.Classes() {
		e.AddLines(fmt.Sprintf("BNG_API_EXPORT void %s(%s* self);", DestroySymbol(c), c.Name()))
		for _, m := range c.Methods() {
			w, ok := WrapMethod(c, m)
			declare(e, w, ok)
		}
		e.AddLines("")
	}
	for _, fn := range api.Functions() {
		w, ok := WrapFunction(api, fn)
		declare(e, w, ok)
	}
	e.Pop(ec)
	return e.Err()
}

func declare(e *gen.Emitter, w *Wrapper, ok bool) {
	if !ok {
		e.AddLines(fmt.Sprintf("// %s: signature not representable in C", w.Symbol))
		return
	}
	if w.Result.Kind == KindString {
		e.AddLines(
			"// contract: returned memory buffer ownership passes to caller.",
			"//           must release with free()",
		)
	}
	e.AddLines("BNG_API_EXPORT " + w.Decl() + ";")
}

// EnumPrefix returns the prefix of the C enumerators of en: the upper case
// letters of its name and an underscore.
func EnumPrefix(en *schema.Enum) string {
	var b strings.Builder
	for _, r := range en.Name() {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	return b.String() + "_"
}

func (*Generator) enum(e *gen.Emitter, en *schema.Enum) {
	decl := "enum " + en.Name()
	typedef := fmt.Sprintf("typedef %s %s;", decl, en.Name())
	members := en.Members()
	if len(members) == 0 {
		e.AddLines(decl+";", typedef, "")
		return
	}
	b := e.PushBlock(decl+" {", gen.Indent(), gen.PostPop("};"))
	pfx := EnumPrefix(en)
	for i, m := range members {
		sep := ","
		if i == len(members)-1 {
			sep = ""
		}
		e.AddLines(fmt.Sprintf("%s%s = %s%s", pfx, m.Name(), m.Value(), sep))
	}
	e.Pop(b)
	e.AddLines(typedef, "")
}

func (*Generator) structure(e *gen.Emitter, s *schema.Struct) {
	b := e.PushBlock("struct "+s.Name()+" {", gen.Indent(), gen.PostPop("};"))
	for _, m := range s.Members() {
		e.AddLines(MemberDecl(m)...)
	}
	e.Pop(b)
	e.AddLines(fmt.Sprintf("typedef struct %s %s;", s.Name(), s.Name()), "")
}

// MemberDecl returns the C declaration of a struct member. Lists become a
// pointer and a count; class values are always held by pointer.
func MemberDecl(m *schema.Member) []string {
	cnst := ""
	if m.IsConst() {
		cnst = "const "
	}
	spec := TypeName(m.Type())
	r := m.Resolved()
	if m.RefType().IsPointerLike() || (r != nil && r.Kind() == schema.KindClass) {
		spec += "*"
	}
	switch {
	case m.IsList():
		return []string{
			fmt.Sprintf("%s%s* %s;", cnst, spec, m.Name()),
			fmt.Sprintf("uint32_t %s_count;", m.Name()),
		}
	case m.IsArray():
		return []string{fmt.Sprintf("%s%s %s[%d];", cnst, spec, m.Name(), m.ArrayCount())}
	}
	return []string{fmt.Sprintf("%s%s %s;", cnst, spec, m.Name())}
}

func (*Generator) source(api *schema.API, cfg *gen.Config, hdrName string, ctx *gen.Context) error {
	e := gen.NewEmitter(ctx)
	cpp.Include(ctx, hdrName, cfg.APIHeader, "cstring", "string", "vector")
	e.AddLines("")
	ec, err := cpp.PushExternC(ctx)
	if err != nil {
		return err
	}
	ns := cpp.Namespace(api)
	for _, c := range api.Classes() {
		b := e.PushBlock(fmt.Sprintf("BNG_API_EXPORT void %s(%s* self) {", DestroySymbol(c), c.Name()),
			gen.Indent(), gen.PostPop("}", ""))
		e.AddLines(fmt.Sprintf("delete reinterpret_cast<%s::%s*>(self);", ns, c.Name()))
		e.Pop(b)
		for _, m := range c.Methods() {
			if w, ok := WrapMethod(c, m); ok {
				define(e, w, ns)
			}
		}
	}
	for _, fn := range api.Functions() {
		if w, ok := WrapFunction(api, fn); ok {
			define(e, w, ns)
		}
	}
	e.Pop(ec)
	return e.Err()
}

func define(e *gen.Emitter, w *Wrapper, ns string) {
	b := e.PushBlock("BNG_API_EXPORT "+w.Decl()+" {", gen.Indent(), gen.PostPop("}", ""))
	e.AddLines(w.body(ns)...)
	e.Pop(b)
}
