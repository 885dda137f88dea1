package cbind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cbind"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/gentest"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

func generate(t *testing.T, api *schema.API) (hdr, src *gen.Context) {
	t.Helper()
	hdr, src, err := gen.Run(cbind.New(), api, "unused.h", "unused.cpp",
		gentest.Options(gen.WithAPIHeader("test_api.h"))...)
	require.NoError(t, err)
	return hdr, src
}

func TestMinimal(t *testing.T) {
	hdr, src := generate(t, gentest.Minimal(t))
	assert.Greater(t, hdr.LineCount(), 1)
	assert.Greater(t, src.LineCount(), 1)
	assert.Contains(t, hdr.Lines(), `extern "C" {`)
	assert.Contains(t, src.Lines(), `#include "test_api.h"`)
}

func TestMissingAPIHeader(t *testing.T) {
	_, _, err := gen.Run(cbind.New(), gentest.Minimal(t), "a.h", "a.cpp", gentest.Options()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, gen.ErrMissingConfig)
	assert.True(t, gen.IsGenerationError(err))
}

func TestHeader(t *testing.T) {
	hdr, _ := generate(t, gentest.Full(t))
	lines := hdr.Lines()
	for _, want := range []string{
		"#pragma once",
		"#include <stdint.h>",
		"#include <stdbool.h>",
		`#include "api/api_util.h"`,
		"#if defined(__cplusplus)",
		`extern "C" {`,
		`} // extern "C"`,
		"enum Color {",
		"  C_red = 0,",
		"  C_green = 1",
		"typedef enum Color Color;",
		"struct Row {",
		"  double* cells;",
		"  uint32_t cells_count;",
		"  int8_t tag[4];",
		"  Color color;",
		"typedef struct Row Row;",
		"struct Widget;",
		"typedef struct Widget Widget;",
		"BNG_API_EXPORT void Widget_destroy(Widget* self);",
		"BNG_API_EXPORT Widget* Widget_create();",
		"BNG_API_EXPORT double Widget_area(const Widget* self, const double* sides, uint32_t sides_count);",
		"//           must release with free()",
		"BNG_API_EXPORT char* Widget_label(Widget* self, const char* prefix);",
		"BNG_API_EXPORT void Widget_paint(Widget* self, Color color);",
		"// Widget_first_row: signature not representable in C",
		"BNG_API_EXPORT char* test_api_version();",
	} {
		assert.Contains(t, lines, want)
	}
}

func TestSource(t *testing.T) {
	_, src := generate(t, gentest.Full(t))
	lines := src.Lines()
	for _, want := range []string{
		`#include "unused.h"`,
		`#include "test_api.h"`,
		"#include <cstring>",
		"BNG_API_EXPORT void Widget_destroy(Widget* self) {",
		"  delete reinterpret_cast<test::api::Widget*>(self);",
		"  return reinterpret_cast<Widget*>(test::api::Widget::create());",
		"  std::vector<double> sides_arg(sides, sides + sides_count);",
		"  return reinterpret_cast<const test::api::Widget*>(self)->area(sides_arg);",
		"  std::string prefix_arg(prefix);",
		"  return bng_make_api_string(reinterpret_cast<test::api::Widget*>(self)->label(prefix_arg).c_str());",
		"  reinterpret_cast<test::api::Widget*>(self)->paint(static_cast<test::api::Color>(color));",
		"  return bng_make_api_string(test::api::version().c_str());",
	} {
		assert.Contains(t, lines, want)
	}
	text, err := src.Text()
	require.NoError(t, err)
	assert.NotContains(t, text, "Widget_first_row")
}

func TestWrapHandles(t *testing.T) {
	api, err := schema.NewAPI(schema.Attrs{
		"name":    "refs",
		"version": "1",
		"classes": []any{gentest.M{
			"name": "Node",
			"methods": []any{
				gentest.M{"name": "make", "type": "Node", "is_static": true, "is_factory": true, "ref_type": "unique"},
				gentest.M{"name": "parent", "type": "Node", "ref_type": "non_optional"},
				gentest.M{"name": "shared", "type": "Node", "ref_type": "shared"},
				gentest.M{
					"name": "attach", "type": "void",
					"parameters": []any{gentest.M{"name": "child", "type": "Node", "ref_type": "non_optional", "is_const": true}},
				},
				gentest.M{"name": "corners", "type": "int32", "array_count": 4},
				gentest.M{
					"name": "fill", "type": "void",
					"parameters": []any{gentest.M{"name": "cells", "type": "Quad"}},
				},
			},
		}},
		"aliases": []any{gentest.M{"name": "Quad", "base_type": "int32", "array_count": 4}},
	})
	require.NoError(t, err)
	node, ok := api.Class("Node")
	require.True(t, ok)

	method := func(name string) *schema.Method {
		m, ok := node.Method(name)
		require.True(t, ok, name)
		return m
	}

	w, ok := cbind.WrapMethod(node, method("make"))
	require.True(t, ok)
	assert.Equal(t, "Node* Node_make()", w.Decl())
	assert.Equal(t, cbind.KindHandle, w.Result.Kind)

	w, ok = cbind.WrapMethod(node, method("attach"))
	require.True(t, ok)
	assert.Equal(t, "void Node_attach(Node* self, const Node* child)", w.Decl())

	assert.True(t, cbind.Representable(node, method("parent")))
	assert.False(t, cbind.Representable(node, method("shared")))
	assert.False(t, cbind.Representable(node, method("corners")))
	assert.False(t, cbind.Representable(node, method("fill")))

	hdr, src := generate(t, api)
	htext, err := hdr.Text()
	require.NoError(t, err)
	assert.Contains(t, htext, "// Node_corners: signature not representable in C")
	assert.Contains(t, htext, "// Node_fill: signature not representable in C")
	lines := src.Lines()
	assert.Contains(t, lines, "  return reinterpret_cast<Node*>(refs::Node::make().release());")
	assert.Contains(t, lines, "  return reinterpret_cast<Node*>(&reinterpret_cast<refs::Node*>(self)->parent());")
	assert.Contains(t, lines, "  reinterpret_cast<refs::Node*>(self)->attach(*reinterpret_cast<const refs::Node*>(child));")
}

func TestEnumPrefix(t *testing.T) {
	api := gentest.Full(t)
	require.Len(t, api.Enums(), 1)
	assert.Equal(t, "C_", cbind.EnumPrefix(api.Enums()[0]))
}
