// Package cpp generates the C++ interface header of an API: the abstract
// classes, value types and free function declarations the library author
// implements. The other C-family backends build on its helpers.
//
// Generated header structure:
//
//	#pragma once
//	#include <array> ... "api/api_util.h"
//
//	namespace a::b {
//	  using Alias = ...;             // aliases
//	  static constexpr T NAME = v;   // constants
//	  enum class E : int32_t { ... };
//	  struct S { ... };
//	  class C { ... };               // abstract interfaces
//	  R function(...);               // free functions
//	} // namespace a::b
package cpp

import (
	"fmt"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Generator emits the C++ interface header.
type Generator struct{}

// New returns the C++ interface generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (*Generator) Name() string { return "cpp" }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputHeader }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return Comment(text) }

// Generate implements gen.Generator.
func (g *Generator) Generate(api *schema.API, _ *gen.Config, hdr, _ *gen.Context) error {
	e := gen.NewEmitter(hdr)
	Pragma(hdr, "once")
	Include(hdr, "array", "memory", "string", "vector", "api/api_util.h")

	ns := Namespace(api)
	nsBlock := e.PushBlock("\nnamespace "+ns+" {", gen.Indent(), gen.PostPop("} // namespace "+ns))

	if len(api.Aliases()) > 0 {
		for _, a := range api.Aliases() {
			e.AddLines(AliasDecl(a))
		}
		e.AddLines("")
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
	for _, fn := range api.Functions() {
		e.AddLines(fmt.Sprintf("%s %s(%s);", ReturnSpec(fn), fn.Name(), Params(fn.Parameters())))
	}
	e.Pop(nsBlock)
	return e.Err()
}

// AliasDecl returns the using declaration of a.
func AliasDecl(a *schema.Alias) string {
	base := TypeName(a.Base())
	var spec string
	if ref := a.RefType(); ref.IsOwning() {
		spec = smartPtr(ref, base)
	} else {
		spec = base + ref.Symbol()
		if a.IsConst() {
			spec = "const " + spec
		}
	}
	switch {
	case a.IsArray():
		spec = fmt.Sprintf("std::array<%s, %d>", spec, a.ArrayCount())
	case a.IsList():
		spec = fmt.Sprintf("std::vector<%s>", spec)
	}
	return fmt.Sprintf("using %s = %s;", a.Name(), spec)
}

// ConstantDecl returns the constexpr declaration of c.
func ConstantDecl(c *schema.Constant) string {
	return fmt.Sprintf("static constexpr %s %s = %s;", TypeName(c.Type()), c.Name(), ConstantValue(c))
}

func (*Generator) enum(e *gen.Emitter, en *schema.Enum) {
	b := e.PushBlock(fmt.Sprintf("enum class %s : %s {", en.Name(), TypeName(en.BaseType())),
		gen.Indent(), gen.PostPop("};\n"))
	members := en.Members()
	for i, m := range members {
		sep := ","
		if i == len(members)-1 {
			sep = ""
		}
		e.AddLines(fmt.Sprintf("%s = %s%s", m.Name(), m.Value(), sep))
	}
	e.Pop(b)
}

func (*Generator) structure(e *gen.Emitter, s *schema.Struct) {
	b := e.PushBlock("struct "+s.Name()+" {", gen.Indent(), gen.PostPop("};\n"))
	for _, m := range s.Members() {
		e.AddLines(MemberSpec(m) + ";")
	}
	e.Pop(b)
}

func (g *Generator) class(e *gen.Emitter, c *schema.Class) {
	cb := e.PushBlock("class "+c.Name()+" {", gen.PostPop("};\n"))

	pb := e.PushBlock("protected:", gen.Indent(), gen.PostPop(""))
	e.AddLines(c.Name() + "() = default;")
	e.Pop(pb)

	pub := e.PushBlock("public:", gen.Indent())
	if len(c.Constants()) > 0 {
		for _, k := range c.Constants() {
			e.AddLines(ConstantDecl(k))
		}
		e.AddLines("")
	}
	e.AddLines(fmt.Sprintf("virtual ~%s() = default;", c.Name()))
	for _, m := range c.Methods() {
		e.AddLines(MethodDecl(m, true))
	}
	for _, m := range c.Members() {
		if m.IsStatic() {
			e.AddLines("static inline " + MemberSpec(m) + "{};")
			continue
		}
		e.AddLines(MemberSpec(m) + ";")
	}
	e.Pop(pub)
	e.Pop(cb)
}

// MethodDecl returns the declaration of m. Non-static methods of an
// abstract class are pure virtual.
func MethodDecl(m *schema.Method, abstract bool) string {
	decorator := ""
	switch {
	case m.IsStatic():
		decorator = "static "
	case abstract:
		decorator = "virtual "
	}
	qualifier := ""
	if m.IsConstMethod() {
		qualifier = " const"
	}
	if abstract && !m.IsStatic() {
		qualifier += " = 0"
	}
	return fmt.Sprintf("%s%s %s(%s)%s;", decorator, ReturnSpec(m), m.Name(), Params(m.Parameters()), qualifier)
}
