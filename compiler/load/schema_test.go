package load_test

import (
	"encoding/json"
	"testing"

	"github.com/benn-herrera/letterboxed-mp/compiler/load"
	"github.com/benn-herrera/letterboxed-mp/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]load.Format{
		"api.json":    load.FormatJSON,
		"API.JSON":    load.FormatJSON,
		"api.yaml":    load.FormatYAML,
		"dir/api.yml": load.FormatYAML,
	} {
		got, err := load.FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := load.FormatOf("api.toml")
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	for _, path := range []string{"testdata/valid.json", "testdata/valid.yaml"} {
		t.Run(path, func(t *testing.T) {
			api, err := load.File(path)
			require.NoError(t, err)
			assert.Equal(t, "test_api", api.Name())
			assert.Equal(t, "1.2.3", api.Version())
			require.Len(t, api.Constants(), 2)
			assert.Equal(t, int64(1), api.Constants()[0].Int())
			assert.Equal(t, "0.5", api.Constants()[1].Value())

			w, ok := api.Class("Widget")
			require.True(t, ok)
			f, ok := w.StaticFactory()
			require.True(t, ok)
			assert.Equal(t, schema.RefRaw, f.RefType())

			id, ok := w.Member("id")
			require.True(t, ok)
			assert.True(t, id.IsInt())

			f64, err := api.Lookup("float64")
			require.NoError(t, err)
			assert.True(t, api.Usage().UsedInList(f64))
		})
	}
}

func TestFileErrors(t *testing.T) {
	t.Run("failure", func(t *testing.T) {
		_, err := load.File("testdata/failure.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrUnexpectedField)
		assert.Contains(t, err.Error(), "testdata/failure.json")
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := load.File("testdata/cycle.json")
		assert.ErrorIs(t, err, schema.ErrAliasCycle)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := load.File("testdata/malformed.json")
		assert.ErrorContains(t, err, "decode json")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := load.File("testdata/nope.json")
		assert.Error(t, err)
	})
}

func TestFiles(t *testing.T) {
	apis, err := load.Files("testdata/valid.json", "testdata/cycle.json", "testdata/valid.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrAliasCycle)
	assert.Len(t, apis, 2)
}

func TestAttrs(t *testing.T) {
	attrs, err := load.Attrs([]byte(`{"name": "n", "version": "1", "constants": [{"value": 1.0}]}`), load.FormatJSON)
	require.NoError(t, err)
	list, ok := attrs["constants"].([]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1.0"), list[0].(map[string]any)["value"])

	_, err = load.Attrs([]byte(`null`), load.FormatJSON)
	assert.Error(t, err)
	_, err = load.Attrs([]byte(`{}`), load.Format("toml"))
	assert.Error(t, err)
}

func TestAttrsYAMLNumbers(t *testing.T) {
	attrs, err := load.Attrs([]byte("name: n\nversion: '1'\nconstants:\n  - {value: 1.0, array_count: 4, is_list: true}\n"), load.FormatYAML)
	require.NoError(t, err)
	list, ok := attrs["constants"].([]any)
	require.True(t, ok)
	c := list[0].(map[string]any)
	assert.Equal(t, json.Number("1.0"), c["value"])
	assert.Equal(t, json.Number("4"), c["array_count"])
	assert.Equal(t, true, c["is_list"])
	assert.Equal(t, "1", attrs["version"])

	_, err = load.Attrs([]byte("- a\n- b\n"), load.FormatYAML)
	assert.ErrorContains(t, err, "not a mapping")
	_, err = load.Attrs([]byte(""), load.FormatYAML)
	assert.ErrorContains(t, err, "empty document")
}

func TestFractionalIntConstant(t *testing.T) {
	_, err := load.File("testdata/float_int.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	assert.ErrorContains(t, err, "assigns a float value to an int type")

	_, err = load.Bytes([]byte(`{"name": "n", "version": "1", "constants": [{"name": "max", "type": "int32", "value": 1.0}]}`), load.FormatJSON)
	assert.ErrorContains(t, err, "assigns a float value to an int type")
}
