package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benn-herrera/letterboxed-mp/compiler"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
)

func testdata(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "compiler", "load", "testdata", name))
	require.NoError(t, err)
	return p
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTargetCommand(t *testing.T) {
	dir := t.TempDir()
	hdr := filepath.Join(dir, "api", "test_api.h")
	_, err := execute("cpp-interface", "--api-def", testdata(t, "valid.json"), "--out-h", hdr)
	require.NoError(t, err)
	buf, err := os.ReadFile(hdr)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "namespace test::api {")

	src := filepath.Join(dir, "jni.cpp")
	_, err = execute("generate-jni-binding", "--api-def", testdata(t, "valid.yaml"),
		"--api-h", "api/test_api.h", "--api-pkg", "com.test.api", "--out-cpp", src)
	require.NoError(t, err)
	assert.FileExists(t, src)
}

func TestTargetCommandRequiredFlags(t *testing.T) {
	_, err := execute("c-wrapper", "--api-def", testdata(t, "valid.json"), "--out-h", "a.h", "--out-cpp", "a.cpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api-h")
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "apigen.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGenerateAndCheck(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `api_def: `+testdata(t, "valid.json")+`
api_h: api/test_api.h
package: testapi
targets:
  - name: cpp
    header: out/api/test_api.h
  - name: c
    header: out/c/test_api_c.h
    source: out/c/test_api_c.cpp
  - name: go
    source: out/go/testapi.go
`)
	_, err := execute("generate", "--config", cfg)
	require.NoError(t, err)
	for _, p := range []string{"out/api/test_api.h", "out/c/test_api_c.h", "out/c/test_api_c.cpp", "out/go/testapi.go"} {
		assert.FileExists(t, filepath.Join(dir, p))
	}

	out, err := execute("check", "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, os.Remove(filepath.Join(dir, "out", "go", "testapi.go")))
	out, err = execute("check", "--config", cfg)
	assert.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out, filepath.Join(dir, "out", "go", "testapi.go")+": missing")
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()

	cfg := writeConfig(t, dir, "api_def: api.json\n")
	_, err := execute("generate", "--config", cfg)
	assert.ErrorIs(t, err, gen.ErrMissingConfig)

	cfg = writeConfig(t, dir, "api_def: api.json\ntargets:\n  - name: cobol\n    source: a.cbl\n")
	_, err = execute("check", "--config", cfg)
	assert.ErrorIs(t, err, compiler.ErrUnknownTarget)

	_, err = execute("generate", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := execute("validate", testdata(t, "valid.json"), testdata(t, "failure.json"), testdata(t, "valid.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, testdata(t, "valid.json")+": ok test_api v1.2.3")
	assert.Contains(t, out, testdata(t, "failure.json")+": FAIL")
	assert.Contains(t, out, testdata(t, "valid.yaml")+": ok test_api v1.2.3")
}

func TestDump(t *testing.T) {
	out, err := execute("dump", "--format", "yaml", testdata(t, "valid.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "name: test_api")

	file := filepath.Join(t.TempDir(), "api.msgpack")
	_, err = execute("dump", "-f", "msgpack", "-o", file, testdata(t, "valid.json"))
	require.NoError(t, err)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = execute("dump", "--format", "toml", testdata(t, "valid.json"))
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(doc, []byte("{}"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, zap.NewNop().Sugar(), []string{doc}, 20*time.Millisecond, func() error {
			select {
			case runs <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// The watcher is registered asynchronously, so keep writing until a run
	// is observed.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(doc, []byte(`{"name": "x"}`), 0o644)
		select {
		case <-runs:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
