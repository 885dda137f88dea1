// Package wasm generates the WebAssembly bindings of an API: an embind
// source exporting one wrapper function per class method over intptr_t
// handles, and an ES module wrapping those exports in JS classes.
package wasm

import (
	"fmt"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Generator emits the embind binding source.
type Generator struct{}

// New returns the wasm binding generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (*Generator) Name() string { return "wasm" }

// Outputs implements gen.Generator.
func (*Generator) Outputs() gen.Outputs { return gen.OutputSource }

// Comment implements gen.Generator.
func (*Generator) Comment(text string) []string { return cpp.Comment(text) }

// Generate implements gen.Generator.
func (g *Generator) Generate(api *schema.API, cfg *gen.Config, _, src *gen.Context) error {
	if cfg.APIHeader == "" {
		return gen.NewConfigError("api_h", nil, "wasm requires the C++ API header")
	}
	e := gen.NewEmitter(src)
	cpp.Include(src, cfg.APIHeader, "core/core.h", "api/api_util.h", "<emscripten/bind.h>")
	e.AddLines("", fmt.Sprintf("using namespace %s;", cpp.Namespace(api)), "")

	var exports []*export
	for _, c := range api.Classes() {
		for _, m := range c.Methods() {
			x, ok := exportMethod(c, m)
			if !ok {
				e.AddLines(fmt.Sprintf("// %s: signature not representable in JS", x.symbol), "")
				continue
			}
			define(e, x)
			exports = append(exports, x)
		}
		b := e.PushBlock(fmt.Sprintf("BNG_API_EXPORT void %s_destroy(%s handle) {", c.Name(), handleType),
			gen.Indent(), gen.PostPop("}", ""))
		e.AddLines(fmt.Sprintf("delete (%s*)handle;", c.Name()))
		e.Pop(b)
	}
	for _, fn := range api.Functions() {
		x, ok := exportFunction(api, fn)
		if !ok {
			e.AddLines(fmt.Sprintf("// %s: signature not representable in JS", x.symbol), "")
			continue
		}
		define(e, x)
		exports = append(exports, x)
	}
	g.bindings(e, api, exports)
	return e.Err()
}

func define(e *gen.Emitter, x *export) {
	b := e.PushBlock(x.decl()+" {", gen.Indent(), gen.PostPop("}", ""))
	e.AddLines(x.body())
	e.Pop(b)
}

func (*Generator) bindings(e *gen.Emitter, api *schema.API, exports []*export) {
	b := e.PushBlock(fmt.Sprintf("EMSCRIPTEN_BINDINGS(%s) {", api.Name()), gen.Indent(),
		gen.PostPop("} // EMSCRIPTEN_BINDINGS"))

	if len(api.Enums()) > 0 {
		e.AddLines(cpp.Comment("enum bindings")...)
		for _, en := range api.Enums() {
			eb := e.PushBlock(fmt.Sprintf("emscripten::enum_<%s>(\"%s\")", en.Name(), en.Name()),
				gen.Indent(), gen.PostPop(";"))
			for _, m := range en.Members() {
				e.AddLines(fmt.Sprintf(".value(\"%s\", %s::%s)", m.Name(), en.Name(), m.Name()))
			}
			e.Pop(eb)
		}
		e.AddLines("")
	}

	if len(api.Structs()) > 0 {
		e.AddLines(cpp.Comment("structure <-> object bindings")...)
		for _, s := range api.Structs() {
			sb := e.PushBlock(fmt.Sprintf("emscripten::value_object<%s>(\"%s\")", s.Name(), s.Name()),
				gen.Indent(), gen.PostPop(";", ""))
			for _, m := range s.Members() {
				e.AddLines(fmt.Sprintf(".field(\"%s\", &%s::%s)", m.Name(), s.Name(), m.Name()))
			}
			e.Pop(sb)
		}
	}

	if len(api.Classes()) > 0 || len(api.Functions()) > 0 {
		e.AddLines(cpp.Comment("class, method and function bindings")...)
		for _, c := range api.Classes() {
			e.AddLines(fmt.Sprintf("emscripten::class_<%s>(\"%s\");", c.Name(), c.Name()))
		}
		for _, x := range exports {
			policy := ""
			if x.result.policy {
				policy = ", emscripten::return_value_policy::take_ownership()"
			}
			e.AddLines(fmt.Sprintf("emscripten::function(\"%s\", &%s%s);", x.symbol, x.symbol, policy))
		}
		for _, c := range api.Classes() {
			e.AddLines(fmt.Sprintf("emscripten::function(\"%s_destroy\", &%s_destroy);", c.Name(), c.Name()))
		}
		e.AddLines("")
	}

	usage := api.Usage()
	if len(usage.ListTypes()) > 0 || len(usage.ArrayUsages()) > 0 {
		e.AddLines(cpp.Comment("register list and array usages")...)
		for _, lt := range usage.ListTypes() {
			e.AddLines(fmt.Sprintf("emscripten::register_vector<%s>(\"%s\");", cpp.TypeName(lt), VectorName(lt)))
		}
		for _, au := range usage.ArrayUsages() {
			tn := cpp.TypeName(au.Type)
			for _, n := range au.DistinctCounts() {
				ab := e.PushBlock(
					fmt.Sprintf("emscripten::value_array<std::array<%s, %d>>(\"array_%s_%d\")", tn, n, au.Type.Name(), n),
					gen.Indent(), gen.PostPop(";"))
				for i := 0; i < n; i++ {
					e.AddLines(fmt.Sprintf(".element(emscripten::index<%d>())", i))
				}
				e.Pop(ab)
			}
		}
	}
	e.Pop(b)
}
