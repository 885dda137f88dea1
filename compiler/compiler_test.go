package compiler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/benn-herrera/letterboxed-mp/compiler"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/gentest"
)

func TestTargets(t *testing.T) {
	assert.Equal(t, []string{"c", "cpp", "go", "jni", "js", "kotlin", "swift", "swift-binding", "wasm"}, compiler.Targets())
	for _, name := range compiler.Targets() {
		g, err := compiler.NewGenerator(name)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name())
	}
	_, err := compiler.NewGenerator("cobol")
	assert.ErrorIs(t, err, compiler.ErrUnknownTarget)
}

func targets(dir string) []compiler.Target {
	return []compiler.Target{
		{Name: compiler.TargetCPP, Header: filepath.Join(dir, "test_api.h")},
		{Name: compiler.TargetC, Header: filepath.Join(dir, "c", "test_api_c.h"), Source: filepath.Join(dir, "c", "test_api_c.cpp")},
		{Name: compiler.TargetKotlin, Source: filepath.Join(dir, "kt", "TestApi.kt")},
		{Name: compiler.TargetGo, Source: filepath.Join(dir, "go", "testapi.go")},
	}
}

func TestGenerateAndCheck(t *testing.T) {
	dir := t.TempDir()
	api := gentest.Full(t)
	ctx := context.Background()

	c, err := compiler.New(api, gentest.Options(gen.WithAPIHeader("test_api.h"))...)
	require.NoError(t, err)
	require.NoError(t, c.WithTargets(targets(dir)...).Generate(ctx))
	for _, p := range []string{"test_api.h", "c/test_api_c.h", "c/test_api_c.cpp", "kt/TestApi.kt", "go/testapi.go"} {
		assert.FileExists(t, filepath.Join(dir, p))
	}

	stale, err := c.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	// A later run differs only in its header comment.
	later := gentest.Options(gen.WithAPIHeader("test_api.h"),
		gen.WithNow(func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }))
	c2, err := compiler.New(api, later...)
	require.NoError(t, err)
	stale, err = c2.WithTargets(targets(dir)...).Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	hdr := filepath.Join(dir, "test_api.h")
	f, err := os.OpenFile(hdr, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("// edited\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, os.Remove(filepath.Join(dir, "go", "testapi.go")))

	stale, err = c.Check(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, compiler.Stale{Path: hdr}, stale[0])
	assert.Equal(t, compiler.Stale{Path: filepath.Join(dir, "go", "testapi.go"), Missing: true}, stale[1])
	assert.Equal(t, hdr+": out of date", stale[0].String())
}

func TestRenderErrors(t *testing.T) {
	api := gentest.Minimal(t)

	_, err := compiler.New(nil)
	assert.ErrorIs(t, err, gen.ErrMissingConfig)

	c, err := compiler.New(api, gentest.Options()...)
	require.NoError(t, err)
	_, err = c.Render()
	assert.ErrorIs(t, err, gen.ErrMissingConfig)

	_, err = c.WithTargets(compiler.Target{Name: "cobol", Source: "x.cbl"}).Render()
	assert.ErrorIs(t, err, compiler.ErrUnknownTarget)

	c, err = compiler.New(api, gentest.Options()...)
	require.NoError(t, err)
	_, err = c.WithTargets(compiler.Target{Name: compiler.TargetCPP, Source: "api.cpp"}).Render()
	assert.ErrorIs(t, err, gen.ErrMissingConfig)
}

func TestTargetOverrides(t *testing.T) {
	c, err := compiler.New(gentest.WithList(t), gentest.Options()...)
	require.NoError(t, err)
	outputs, err := c.WithTargets(compiler.Target{
		Name:      compiler.TargetJNI,
		Source:    "jni.cpp",
		APIHeader: "test_api.h",
		Package:   "com.test.api",
	}).Render()
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Nil(t, outputs[0].Header)
	require.Len(t, outputs[0].Units(), 1)
	assert.Contains(t, outputs[0].Source.Lines(), `#include "test_api.h"`)
	assert.Equal(t, "jni (jni.cpp)", outputs[0].Target.String())
}

func TestExport(t *testing.T) {
	api := gentest.Full(t)

	var buf bytes.Buffer
	require.NoError(t, compiler.Export(&buf, api, compiler.FormatJSON))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test_api", doc["name"])
	assert.Equal(t, "1.2.3", doc["version"])

	buf.Reset()
	require.NoError(t, compiler.Export(&buf, api, compiler.FormatYAML))
	doc = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test_api", doc["name"])

	buf.Reset()
	require.NoError(t, compiler.Export(&buf, api, compiler.FormatMsgpack))
	doc = nil
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test_api", doc["name"])

	assert.Error(t, compiler.Export(&buf, api, "xml"))
}

func TestParseFormat(t *testing.T) {
	f, err := compiler.ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, compiler.FormatYAML, f)
	_, err = compiler.ParseFormat("toml")
	assert.Error(t, err)
}
