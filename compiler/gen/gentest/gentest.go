// Package gentest provides the documents the backend tests generate from.
package gentest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// M is shorthand for a document node.
type M = map[string]any

// Version is the generator version stamped into test outputs.
const Version = "test-0.0.0"

// Options returns the generator options used by backend tests: a fixed
// clock and the test generator version.
func Options(extra ...gen.Option) []gen.Option {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return append([]gen.Option{
		gen.WithGenVersion(Version),
		gen.WithNow(func() time.Time { return now }),
	}, extra...)
}

// Minimal is a document with a single int32 constant.
func Minimal(t testing.TB) *schema.API {
	t.Helper()
	return build(t, schema.Attrs{
		"name":      "test_api",
		"version":   "1.2.3",
		"constants": []any{M{"type": "int32", "name": "the_const", "value": "1"}},
	})
}

// WithList is a document with one class taking and holding lists.
func WithList(t testing.TB) *schema.API {
	t.Helper()
	return build(t, schema.Attrs{
		"name":    "test_api",
		"version": "1.2.3",
		"classes": []any{M{
			"name": "TheClass",
			"methods": []any{M{
				"type": "float64", "name": "list_sum",
				"parameters": []any{
					M{"name": "label", "type": "string", "is_const": true},
					M{"name": "the_row", "type": "float64", "is_const": true, "is_list": true},
				},
			}},
			"members": []any{M{"name": "the_list", "type": "string", "is_list": true, "is_const": true}},
		}},
	})
}

// Full is a document using every kind of declaration.
func Full(t testing.TB) *schema.API {
	t.Helper()
	return build(t, schema.Attrs{
		"name":    "test_api",
		"version": "1.2.3",
		"constants": []any{
			M{"name": "the_const", "type": "int32", "value": "1"},
			M{"name": "the_ratio", "type": "float32", "value": "0.5"},
			M{"name": "the_scale", "type": "float64", "value": "2"},
		},
		"enums": []any{M{
			"name": "Color",
			"members": []any{
				M{"name": "red", "value": "0"},
				M{"name": "green", "value": "1"},
			},
		}},
		"aliases": []any{M{"name": "Handle", "base_type": "int64"}},
		"structs": []any{M{
			"name": "Row",
			"members": []any{
				M{"name": "cells", "type": "float64", "is_list": true},
				M{"name": "tag", "type": "int8", "array_count": 4},
				M{"name": "color", "type": "Color"},
			},
		}},
		"classes": []any{M{
			"name": "Widget",
			"constants": []any{M{"name": "MAX_SIDES", "type": "int32", "value": "8"}},
			"members": []any{M{"name": "id", "type": "Handle"}},
			"methods": []any{
				M{"name": "create", "type": "Widget", "is_static": true, "is_factory": true, "ref_type": "raw"},
				M{
					"name": "area", "type": "float64", "is_const_method": true,
					"parameters": []any{M{"name": "sides", "type": "float64", "is_list": true, "is_const": true}},
				},
				M{
					"name": "label", "type": "string",
					"parameters": []any{M{"name": "prefix", "type": "string", "is_const": true}},
				},
				M{
					"name": "paint", "type": "void",
					"parameters": []any{M{"name": "color", "type": "Color"}},
				},
				M{
					"name": "first_row", "type": "Row",
				},
			},
		}},
		"functions": []any{M{"name": "version", "type": "string"}},
	})
}

func build(t testing.TB, attrs schema.Attrs) *schema.API {
	t.Helper()
	api, err := schema.NewAPI(attrs)
	require.NoError(t, err)
	return api
}
