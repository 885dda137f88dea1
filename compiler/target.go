package compiler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cbind"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/cpp"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/golang"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/kotlin"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/swift"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen/wasm"
)

// Generator names.
const (
	TargetCPP          = "cpp"
	TargetC            = "c"
	TargetJNI          = "jni"
	TargetKotlin       = "kotlin"
	TargetSwiftBinding = "swift-binding"
	TargetSwift        = "swift"
	TargetWASM         = "wasm"
	TargetJS           = "js"
	TargetGo           = "go"
)

// ErrUnknownTarget is returned for a target naming no generator.
var ErrUnknownTarget = errors.New("apigen: unknown target")

var generators = map[string]func() gen.Generator{
	TargetCPP:          func() gen.Generator { return cpp.New() },
	TargetC:            func() gen.Generator { return cbind.New() },
	TargetJNI:          func() gen.Generator { return kotlin.NewJNI() },
	TargetKotlin:       func() gen.Generator { return kotlin.New() },
	TargetSwiftBinding: func() gen.Generator { return swift.NewBinding() },
	TargetSwift:        func() gen.Generator { return swift.New() },
	TargetWASM:         func() gen.Generator { return wasm.New() },
	TargetJS:           func() gen.Generator { return wasm.NewJS() },
	TargetGo:           func() gen.Generator { return golang.New() },
}

// Targets returns the generator names in sorted order.
func Targets() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewGenerator returns the generator registered under name.
func NewGenerator(name string) (gen.Generator, error) {
	newGen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTarget, name)
	}
	return newGen(), nil
}

// Target is one generator run over a document: the generator name, its
// output paths and the settings overriding the run-wide configuration.
type Target struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Header string `mapstructure:"header" yaml:"header,omitempty"`
	Source string `mapstructure:"source" yaml:"source,omitempty"`

	APIHeader   string `mapstructure:"api_h" yaml:"api_h,omitempty"`
	Package     string `mapstructure:"package" yaml:"package,omitempty"`
	SwiftHeader string `mapstructure:"swift_h" yaml:"swift_h,omitempty"`
}

// String returns the target name followed by its outputs.
func (t Target) String() string {
	switch {
	case t.Header != "" && t.Source != "":
		return fmt.Sprintf("%s (%s, %s)", t.Name, t.Header, t.Source)
	case t.Header != "":
		return fmt.Sprintf("%s (%s)", t.Name, t.Header)
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Source)
}

// options returns the overrides of t as generator options.
func (t Target) options() []gen.Option {
	var opts []gen.Option
	if t.APIHeader != "" {
		opts = append(opts, gen.WithAPIHeader(t.APIHeader))
	}
	if t.Package != "" {
		opts = append(opts, gen.WithPackage(t.Package))
	}
	if t.SwiftHeader != "" {
		opts = append(opts, gen.WithSwiftHeader(t.SwiftHeader))
	}
	return opts
}
