package schema_test

import (
	"testing"

	"github.com/benn-herrera/letterboxed-mp/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type M = map[string]any

func seeded(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	require.NoError(t, reg.SeedPrimitives())
	return reg
}

func TestRegistry(t *testing.T) {
	t.Run("distinct_names", func(t *testing.T) {
		reg := seeded(t)
		assert.Equal(t, len(schema.Primitives), reg.Len())
		assert.Equal(t, schema.Primitives, reg.Names())
		require.NoError(t, reg.Register(schema.NewPrimitive("my_type")))
		assert.True(t, reg.Has("my_type"))
	})

	t.Run("redefinition", func(t *testing.T) {
		reg := seeded(t)
		err := reg.Register(schema.NewPrimitive(schema.TypeInt32))
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrRedefinition)
		var rerr *schema.RedefinitionError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "int32", rerr.Name)
		assert.Contains(t, err.Error(), "already defined as Primitive int32")
	})

	t.Run("reset", func(t *testing.T) {
		reg := seeded(t)
		_, err := reg.Lookup(schema.TypeInt32)
		require.NoError(t, err)
		reg.Reset()
		_, err = reg.Lookup(schema.TypeInt32)
		assert.ErrorIs(t, err, schema.ErrUnknownType)
		assert.Contains(t, err.Error(), `"int32"`)
		assert.Zero(t, reg.Len())
	})
}

func TestPrimitiveClassification(t *testing.T) {
	tests := []struct {
		name                           string
		isInt, isFloat, isBool, isVoid bool
		isString                       bool
	}{
		{name: "void", isVoid: true},
		{name: "bool", isBool: true},
		{name: "int8", isInt: true},
		{name: "uint64", isInt: true},
		{name: "intptr", isInt: true},
		{name: "float32", isFloat: true},
		{name: "float64", isFloat: true},
		{name: "string", isString: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schema.NewPrimitive(tt.name)
			assert.Equal(t, tt.isInt, p.IsInt())
			assert.Equal(t, tt.isFloat, p.IsFloat())
			assert.Equal(t, tt.isBool, p.IsBool())
			assert.Equal(t, tt.isVoid, p.IsVoid())
			assert.Equal(t, tt.isString, p.IsString())
			assert.Equal(t, tt.isInt || tt.isFloat, p.IsNumber())
			assert.True(t, p.IsPrimitive())
			assert.Same(t, p, p.Resolved())
		})
	}
}

func TestFieldBinding(t *testing.T) {
	t.Run("unexpected_and_missing_reported_together", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewStruct(reg, schema.Attrs{"colour": "red", "members": []any{}})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrUnexpectedField)
		assert.ErrorIs(t, err, schema.ErrMissingField)
		assert.True(t, schema.IsFieldError(err))

		var ferr *schema.FieldError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, []string{"colour"}, ferr.Unexpected)
		assert.Equal(t, []string{"name"}, ferr.Missing)
	})

	t.Run("all_missing_fields", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewConstant(reg, schema.Attrs{"nme": "MAX", "value": "1"})
		var ferr *schema.FieldError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, []string{"nme"}, ferr.Unexpected)
		assert.Equal(t, []string{"name", "type"}, ferr.Missing)
	})

	t.Run("wrong_shapes", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewMember(reg, schema.Attrs{
			"name":     "m",
			"type":     "int32",
			"is_list":  "yes",
			"ref_type": "weak",
		})
		var ferr *schema.FieldError
		require.ErrorAs(t, err, &ferr)
		assert.Len(t, ferr.Invalid, 2)
		assert.NotErrorIs(t, err, schema.ErrMissingField)
		assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	})

	t.Run("optional_fields", func(t *testing.T) {
		reg := seeded(t)
		m, err := schema.NewMember(reg, schema.Attrs{"name": "m", "type": "int32", "is_const": true})
		require.NoError(t, err)
		assert.True(t, m.IsConst())
		m, err = schema.NewMember(reg, schema.Attrs{"name": "m", "type": "int32"})
		require.NoError(t, err)
		assert.False(t, m.IsConst())
		assert.Equal(t, schema.RefNone, m.RefType())
	})
}

func TestListArrayExclusive(t *testing.T) {
	tests := []struct {
		name    string
		attrs   schema.Attrs
		wantErr bool
	}{
		{name: "neither", attrs: schema.Attrs{}},
		{name: "list", attrs: schema.Attrs{"is_list": true}},
		{name: "array", attrs: schema.Attrs{"array_count": 4}},
		{name: "both", attrs: schema.Attrs{"is_list": true, "array_count": 4}, wantErr: true},
		{name: "zero_count", attrs: schema.Attrs{"array_count": 0}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := seeded(t)
			attrs := schema.Attrs{"name": "m", "type": "float32"}
			for k, v := range tt.attrs {
				attrs[k] = v
			}
			m, err := schema.NewMember(reg, attrs)
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrInvalidSchema)
				assert.True(t, schema.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, m.IsFloat())
		})
	}
}

func TestVoidRestriction(t *testing.T) {
	reg := seeded(t)

	m, err := schema.NewMethod(reg, schema.Attrs{"name": "run", "type": "void"})
	require.NoError(t, err)
	assert.True(t, m.ReturnsVoid())

	_, err = schema.NewParameter(reg, schema.Attrs{"name": "p", "type": "void"})
	require.NoError(t, err)

	for _, mod := range []schema.Attrs{
		{"is_const": true},
		{"is_list": true},
		{"array_count": 2},
	} {
		attrs := schema.Attrs{"name": "run", "type": "void"}
		for k, v := range mod {
			attrs[k] = v
		}
		_, err := schema.NewMethod(reg, attrs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "void type can't be const, array, or list")
	}

	_, err = schema.NewMember(reg, schema.Attrs{"name": "m", "type": "void"})
	assert.ErrorContains(t, err, "can't have a void type")

	_, err = schema.NewAlias(reg, schema.Attrs{"name": "nothing", "base_type": "void"})
	assert.ErrorContains(t, err, "can't alias void type")
}

func TestAliasResolution(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewAlias(reg, schema.Attrs{"name": "B", "base_type": "int32"})
		require.NoError(t, err)
		a, err := schema.NewAlias(reg, schema.Attrs{"name": "A", "base_type": "B"})
		require.NoError(t, err)

		i32, err := reg.Lookup("int32")
		require.NoError(t, err)
		assert.True(t, a.IsInt())
		assert.Same(t, i32, a.Resolved())
		assert.Equal(t, "B", a.Base().Name())

		m, err := schema.NewMember(reg, schema.Attrs{"name": "m", "type": "A"})
		require.NoError(t, err)
		assert.Equal(t, schema.KindAlias, m.Type().Kind())
		assert.Same(t, i32, m.Resolved())
		assert.True(t, m.IsInt())
	})

	t.Run("forward_reference", func(t *testing.T) {
		api, err := schema.NewAPI(schema.Attrs{
			"name":    "fwd",
			"version": "1",
			"aliases": []any{
				M{"name": "A", "base_type": "B"},
				M{"name": "B", "base_type": "C"},
				M{"name": "C", "base_type": "float64"},
			},
			"constants": []any{M{"name": "K", "type": "A", "value": "2.5"}},
		})
		require.NoError(t, err)
		a, err := api.Lookup("A")
		require.NoError(t, err)
		assert.Equal(t, "float64", a.Resolved().Name())
		assert.True(t, api.Constants()[0].IsFloat())
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := schema.NewAPI(schema.Attrs{
			"name":    "loop",
			"version": "1",
			"aliases": []any{
				M{"name": "A", "base_type": "B"},
				M{"name": "B", "base_type": "A"},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrAliasCycle)
		var cerr *schema.CycleError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{"A", "B", "A"}, cerr.Chain)
	})

	t.Run("unknown", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewMember(reg, schema.Attrs{"name": "m", "type": "Nope"})
		assert.ErrorIs(t, err, schema.ErrUnknownType)
		assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	})
}

func TestEnum(t *testing.T) {
	members := []any{M{"name": "red", "value": 0}, M{"name": "green", "value": "1"}}

	t.Run("default_base_type", func(t *testing.T) {
		reg := seeded(t)
		e, err := schema.NewEnum(reg, schema.Attrs{"name": "Color", "members": members})
		require.NoError(t, err)
		assert.Equal(t, "int32", e.BaseTypeName())
		assert.True(t, e.IsInt())
		require.Len(t, e.Members(), 2)
		green, ok := e.Member("green")
		require.True(t, ok)
		assert.Equal(t, int64(1), green.Int())
		assert.Same(t, e, green.Resolved())
	})

	t.Run("string_base_type", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewEnum(reg, schema.Attrs{"name": "Color", "base_type": "string", "members": members})
		require.Error(t, err)
		assert.ErrorContains(t, err, "is not integral")
	})

	t.Run("fractional_value", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewEnum(reg, schema.Attrs{"name": "Color", "members": []any{M{"name": "red", "value": "0.5"}}})
		assert.ErrorContains(t, err, "assigns a float value to an int type")
	})

	t.Run("redeclared_value", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewEnum(reg, schema.Attrs{"name": "Color", "members": []any{
			M{"name": "red", "value": 0},
			M{"name": "red", "value": 1},
		}})
		assert.ErrorContains(t, err, `value "red" redeclared`)
	})
}

func TestConstant(t *testing.T) {
	tests := []struct {
		name    string
		attrs   schema.Attrs
		wantErr string
	}{
		{name: "string_type", attrs: schema.Attrs{"type": "string", "value": "1"}, wantErr: "not a simple numeric type"},
		{name: "float_value", attrs: schema.Attrs{"type": "float32", "value": "1.5"}},
		{name: "float_value_int_type", attrs: schema.Attrs{"type": "int32", "value": "1.5"}, wantErr: "assigns a float value to an int type"},
		{name: "json_float_int_type", attrs: schema.Attrs{"type": "int32", "value": 1.5}, wantErr: "assigns a float value to an int type"},
		{name: "int_value", attrs: schema.Attrs{"type": "int64", "value": 42}},
		{name: "list", attrs: schema.Attrs{"type": "int32", "value": "1", "is_list": true}, wantErr: "not a simple numeric type"},
		{name: "ref", attrs: schema.Attrs{"type": "int32", "value": "1", "ref_type": "raw"}, wantErr: "not a simple numeric type"},
		{name: "not_a_number", attrs: schema.Attrs{"type": "float64", "value": "pi"}, wantErr: "is not a number"},
		{name: "uint64_max", attrs: schema.Attrs{"type": "uint64", "value": "18446744073709551615"}},
		{name: "uint64_negative", attrs: schema.Attrs{"type": "uint64", "value": "-1"}, wantErr: "is not an unsigned integer"},
		{name: "int64_overflow", attrs: schema.Attrs{"type": "int64", "value": "18446744073709551615"}, wantErr: "is not an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := seeded(t)
			attrs := schema.Attrs{"name": "the_const"}
			for k, v := range tt.attrs {
				attrs[k] = v
			}
			c, err := schema.NewConstant(reg, attrs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				assert.ErrorContains(t, err, "constant the_const")
				return
			}
			require.NoError(t, err)
			assert.True(t, c.IsNumber())
		})
	}
}

func TestUnsignedConstant(t *testing.T) {
	reg := seeded(t)
	c, err := schema.NewConstant(reg, schema.Attrs{"name": "all_bits", "type": "uint64", "value": "18446744073709551615"})
	require.NoError(t, err)
	assert.True(t, c.IsUnsigned())
	assert.Equal(t, uint64(18446744073709551615), c.Uint())

	c, err = schema.NewConstant(reg, schema.Attrs{"name": "low", "type": "int32", "value": "-3"})
	require.NoError(t, err)
	assert.False(t, c.IsUnsigned())
	assert.Equal(t, int64(-3), c.Int())

	api, err := schema.NewAPI(schema.Attrs{
		"name": "n", "version": "1",
		"enums": []any{schema.Attrs{"name": "Flags", "base_type": "uint64", "members": []any{
			schema.Attrs{"name": "top", "value": "18446744073709551615"},
		}}},
	})
	require.NoError(t, err)
	top, ok := api.Enums()[0].Member("top")
	require.True(t, ok)
	assert.True(t, top.IsUnsigned())
	assert.Equal(t, uint64(18446744073709551615), top.Uint())
}

func TestCallable(t *testing.T) {
	reg := seeded(t)
	_, err := schema.NewClass(reg, schema.Attrs{"name": "Widget"})
	require.NoError(t, err)

	t.Run("factory_defaults", func(t *testing.T) {
		m, err := schema.NewMethod(reg, schema.Attrs{
			"name": "create", "type": "Widget", "is_factory": true, "is_const": true,
		})
		require.NoError(t, err)
		assert.Equal(t, schema.RefRaw, m.RefType())
		assert.False(t, m.IsConst())
		assert.True(t, m.IsFactory())
	})

	t.Run("factory_owning_ref", func(t *testing.T) {
		fn, err := schema.NewFunction(reg, schema.Attrs{
			"name": "make_widget", "type": "Widget", "is_factory": true, "ref_type": "unique",
		})
		require.NoError(t, err)
		assert.Equal(t, schema.RefUnique, fn.RefType())
	})

	t.Run("factory_non_optional", func(t *testing.T) {
		_, err := schema.NewMethod(reg, schema.Attrs{
			"name": "create", "type": "Widget", "is_factory": true, "ref_type": "non_optional",
		})
		assert.ErrorContains(t, err, "ref_type must be 'raw', 'shared', or 'unique'")
	})

	t.Run("factory_not_class", func(t *testing.T) {
		_, err := schema.NewFunction(reg, schema.Attrs{"name": "count", "type": "int32", "is_factory": true})
		assert.ErrorContains(t, err, "is not a class")
	})

	t.Run("static_const_method", func(t *testing.T) {
		_, err := schema.NewMethod(reg, schema.Attrs{
			"name": "f", "type": "void", "is_static": true, "is_const_method": true,
		})
		assert.ErrorContains(t, err, "can't be both static and const method")
	})

	t.Run("array_parameter", func(t *testing.T) {
		_, err := schema.NewFunction(reg, schema.Attrs{
			"name": "f", "type": "void",
			"parameters": []any{M{"name": "v", "type": "float32", "array_count": 3}},
		})
		assert.ErrorContains(t, err, "can't pass arrays as parameters")
	})

	t.Run("redeclared_parameter", func(t *testing.T) {
		_, err := schema.NewFunction(reg, schema.Attrs{
			"name": "f", "type": "void",
			"parameters": []any{M{"name": "v", "type": "float32"}, M{"name": "v", "type": "int32"}},
		})
		assert.ErrorContains(t, err, `parameter "v" redeclared`)
	})
}

func TestAggregates(t *testing.T) {
	t.Run("struct_static_member", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewStruct(reg, schema.Attrs{
			"name":    "S",
			"members": []any{M{"name": "x", "type": "int32", "is_static": true}},
		})
		assert.ErrorContains(t, err, "structs can't have static members")
	})

	t.Run("redeclared_member", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewStruct(reg, schema.Attrs{
			"name":    "S",
			"members": []any{M{"name": "x", "type": "int32"}, M{"name": "x", "type": "float32"}},
		})
		assert.ErrorContains(t, err, `member "x" redeclared`)
	})

	t.Run("invalid_identifier", func(t *testing.T) {
		reg := seeded(t)
		_, err := schema.NewStruct(reg, schema.Attrs{"name": "my struct"})
		assert.ErrorContains(t, err, "is not a valid identifier")
	})

	t.Run("class_lookups", func(t *testing.T) {
		reg := seeded(t)
		c, err := schema.NewClass(reg, schema.Attrs{
			"name":      "Board",
			"constants": []any{M{"name": "SIZE", "type": "int32", "value": 4}},
			"members":   []any{M{"name": "cells", "type": "int8", "array_count": 16}},
			"methods": []any{
				M{"name": "clear", "type": "void"},
				M{"name": "clone", "type": "Board", "is_factory": true, "is_const_method": true, "ref_type": "shared"},
			},
		})
		require.NoError(t, err)
		_, ok := c.Member("cells")
		assert.True(t, ok)
		_, ok = c.Method("clear")
		assert.True(t, ok)
		f, ok := c.StaticFactory()
		require.True(t, ok)
		assert.Equal(t, "clone", f.Name())
		assert.Len(t, c.Factories(), 1)
		assert.Equal(t, int64(4), c.Constants()[0].Int())
	})
}

func TestAPI(t *testing.T) {
	t.Run("no_api", func(t *testing.T) {
		_, err := schema.NewAPI(schema.Attrs{"name": "test_api", "version": "1.2.3"})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrEmptyAPI)
		assert.ErrorContains(t, err, "defines no api")
	})

	t.Run("minimal", func(t *testing.T) {
		api, err := schema.NewAPI(schema.Attrs{
			"name":      "test_api",
			"version":   "1.2.3",
			"constants": []any{M{"type": "int32", "name": "the_const", "value": "1"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "test_api", api.Name())
		assert.Equal(t, "1.2.3", api.Version())
	})

	t.Run("redefinition", func(t *testing.T) {
		_, err := schema.NewAPI(schema.Attrs{
			"name":    "dup",
			"version": "1",
			"structs": []any{M{"name": "Thing"}},
			"classes": []any{M{"name": "Thing"}},
		})
		assert.ErrorIs(t, err, schema.ErrRedefinition)
		assert.ErrorContains(t, err, "already defined as Struct Thing, can't redefine as Class Thing")
	})

	t.Run("fresh_registry_per_document", func(t *testing.T) {
		doc := schema.Attrs{"name": "twice", "version": "1", "structs": []any{M{"name": "Thing"}}}
		_, err := schema.NewAPI(doc)
		require.NoError(t, err)
		_, err = schema.NewAPI(doc)
		require.NoError(t, err)
	})
}

func TestUsage(t *testing.T) {
	api, err := schema.NewAPI(schema.Attrs{
		"name":    "usage",
		"version": "1",
		"structs": []any{M{
			"name": "Row",
			"members": []any{
				M{"name": "values", "type": "float64", "is_list": true},
				M{"name": "bytes", "type": "int8", "array_count": 4},
			},
		}},
		"classes": []any{M{
			"name": "Grid",
			"members": []any{
				M{"name": "more", "type": "int8", "array_count": 4},
				M{"name": "other", "type": "int8", "array_count": 8},
			},
		}},
	})
	require.NoError(t, err)

	u := api.Usage()
	assert.Same(t, u, api.Usage())

	f64, _ := api.Lookup("float64")
	i8, _ := api.Lookup("int8")
	assert.Equal(t, []schema.Type{f64}, u.ListTypes())
	assert.True(t, u.UsedInList(f64))
	assert.False(t, u.UsedInList(i8))
	assert.Equal(t, []int{4, 4, 8}, u.ArrayCounts(i8))
	require.Len(t, u.ArrayUsages(), 1)
	assert.Equal(t, []int{4, 8}, u.ArrayUsages()[0].DistinctCounts())
	assert.Nil(t, u.ArrayCounts(f64))
}

func TestAPIConstantDocument(t *testing.T) {
	api, err := schema.NewAPI(schema.Attrs{
		"name":      "demo",
		"version":   "1.0",
		"constants": []any{M{"name": "MAX", "type": "int32", "value": "10"}},
	})
	require.NoError(t, err)
	require.Len(t, api.Constants(), 1)
	c := api.Constants()[0]
	assert.Equal(t, "MAX", c.Name())
	assert.Equal(t, "int32", c.Resolved().Name())
	assert.Equal(t, int64(10), c.Int())
	assert.True(t, api.Usage().Empty())
}

func TestClassFactoryAndListUsage(t *testing.T) {
	api, err := schema.NewAPI(schema.Attrs{
		"name":    "demo",
		"version": "1.0",
		"classes": []any{M{
			"name": "Widget",
			"methods": []any{
				M{"name": "create", "type": "Widget", "is_static": true, "is_factory": true, "ref_type": "raw"},
				M{
					"name": "area", "type": "float64",
					"parameters": []any{M{"name": "sides", "type": "float64", "is_list": true}},
				},
			},
		}},
	})
	require.NoError(t, err)
	w, ok := api.Class("Widget")
	require.True(t, ok)
	f, ok := w.StaticFactory()
	require.True(t, ok)
	assert.Equal(t, "create", f.Name())
	assert.True(t, f.IsStatic())

	f64, _ := api.Lookup("float64")
	assert.True(t, api.Usage().UsedInList(f64))
}

func TestSnapshot(t *testing.T) {
	api, err := schema.NewAPI(schema.Attrs{
		"name":    "snap",
		"version": "2",
		"aliases": []any{M{"name": "Id", "base_type": "uint64"}},
		"functions": []any{M{
			"name": "lookup", "type": "string",
			"parameters": []any{M{"name": "ids", "type": "Id", "is_list": true}},
		}},
	})
	require.NoError(t, err)
	s := api.Snapshot()
	assert.Equal(t, "snap", s.Name)
	assert.Contains(t, s.Types, "Id")
	require.Len(t, s.Aliases, 1)
	assert.Equal(t, "uint64", s.Aliases[0].Resolved)
	require.Len(t, s.Functions, 1)
	assert.Equal(t, "lookup", s.Functions[0].Returns.Name)
	assert.Equal(t, []string{"uint64"}, s.Usage.Lists)
}

func TestRefType(t *testing.T) {
	for _, name := range []string{"raw", "non_optional", "shared", "unique"} {
		r, err := schema.ParseRefType(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.String())
	}
	_, err := schema.ParseRefType("weak")
	assert.Error(t, err)
	assert.Equal(t, "*", schema.RefRaw.Symbol())
	assert.Equal(t, "&", schema.RefNonOptional.Symbol())
	assert.True(t, schema.RefShared.IsOwning())
}
