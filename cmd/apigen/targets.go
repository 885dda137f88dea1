package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benn-herrera/letterboxed-mp/compiler"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/load"
)

// Flags of the single target commands.
const (
	flagAPIDef = "api-def"
	flagAPIH   = "api-h"
	flagAPIPkg = "api-pkg"
	flagSwiftH = "swift-h"
	flagGoPkg  = "go-pkg"
	flagOutH   = "out-h"
	flagOutCPP = "out-cpp"
	flagOutKt  = "out-kt"
	flagOutSw  = "out-swift"
	flagOutJS  = "out-js"
	flagOutGo  = "out-go"
)

// targetCmdSpec describes a command running a single generator.
type targetCmdSpec struct {
	use    string
	target string
	short  string
	// header and source name the output path flags; empty when the
	// generator has no such output.
	header string
	source string
	// settings lists the required setting flags among api-h, api-pkg,
	// swift-h and go-pkg.
	settings []string
	optional []string
}

var targetCmds = []targetCmdSpec{
	{use: "cpp-interface", target: compiler.TargetCPP, short: "generate the C++ interface header the API author implements",
		header: flagOutH},
	{use: "c-wrapper", target: compiler.TargetC, short: "generate the extern \"C\" wrapper of the C++ interface",
		header: flagOutH, source: flagOutCPP, settings: []string{flagAPIH}},
	{use: "jni-binding", target: compiler.TargetJNI, short: "generate the JNI binding source of the Kotlin wrapper",
		source: flagOutCPP, settings: []string{flagAPIH, flagAPIPkg}},
	{use: "kt-wrapper", target: compiler.TargetKotlin, short: "generate the Kotlin wrapper",
		source: flagOutKt, optional: []string{flagAPIPkg}},
	{use: "swift-binding", target: compiler.TargetSwiftBinding, short: "generate the C binding the Swift wrapper bridges to",
		header: flagOutH, source: flagOutCPP, settings: []string{flagAPIH}},
	{use: "swift-wrapper", target: compiler.TargetSwift, short: "generate the Swift wrapper",
		source: flagOutSw, settings: []string{flagSwiftH}},
	{use: "wasm-binding", target: compiler.TargetWASM, short: "generate the emscripten binding source",
		source: flagOutCPP, settings: []string{flagAPIH}},
	{use: "js-wrapper", target: compiler.TargetJS, short: "generate the JavaScript wrapper of the wasm binding",
		source: flagOutJS},
	{use: "go-binding", target: compiler.TargetGo, short: "generate the Go declarations of the API",
		source: flagOutGo, optional: []string{flagGoPkg}},
}

var settingUsage = map[string]string{
	flagAPIH:   "include path of the C++ interface header, as in api/engine_api.h",
	flagAPIPkg: "package of the Kotlin wrapper, as in com.company.library",
	flagSwiftH: "bridging header of the Swift binding",
	flagGoPkg:  "package name of the generated Go file",
}

func (a *app) targetCmd(spec targetCmdSpec) *cobra.Command {
	var (
		apiDef   string
		header   string
		source   string
		settings = map[string]*string{}
	)
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: []string{"generate-" + spec.use},
		Short:   spec.short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := load.File(apiDef)
			if err != nil {
				return err
			}
			t := compiler.Target{Name: spec.target, Header: header, Source: source}
			for name, value := range settings {
				switch name {
				case flagAPIH:
					t.APIHeader = *value
				case flagAPIPkg, flagGoPkg:
					t.Package = *value
				case flagSwiftH:
					t.SwiftHeader = *value
				}
			}
			c, err := compiler.New(api, gen.WithLogger(a.log))
			if err != nil {
				return err
			}
			if err := c.WithTargets(t).Generate(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", spec.use, err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&apiDef, flagAPIDef, "", "API description document (.json, .yaml)")
	_ = cmd.MarkFlagRequired(flagAPIDef)
	if spec.header != "" {
		f.StringVar(&header, spec.header, "", "output path of the generated header")
		_ = cmd.MarkFlagRequired(spec.header)
	}
	if spec.source != "" {
		f.StringVar(&source, spec.source, "", "output path of the generated source")
		_ = cmd.MarkFlagRequired(spec.source)
	}
	for _, name := range spec.settings {
		settings[name] = f.String(name, "", settingUsage[name])
		_ = cmd.MarkFlagRequired(name)
	}
	for _, name := range spec.optional {
		settings[name] = f.String(name, "", settingUsage[name])
	}
	return cmd
}
