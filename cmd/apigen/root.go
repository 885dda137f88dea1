package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v   *viper.Viper
	log *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop().Sugar()}
	a.v.SetEnvPrefix("APIGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "apigen",
		Short: "Generate cross-language bindings from an API description",
		Long: `apigen reads an API description document (constants, enums, aliases,
structs, classes and functions) and generates the C++ interface its
implementation derives from, along with the bindings exposing it.

Single targets:
  apigen cpp-interface --api-def engine.json --out-h api/engine_api.h
  apigen c-wrapper --api-def engine.json --api-h api/engine_api.h --out-h c/engine.h --out-cpp c/engine.cpp

Every target of a configuration file:
  apigen generate --config apigen.yaml [--watch]
  apigen check --config apigen.yaml`,
		Version:       gen.DefaultGenVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(a.v.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log generation details")
	root.PersistentFlags().String("config", "apigen.yaml", "configuration file of generate and check")
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	for _, tc := range targetCmds {
		root.AddCommand(a.targetCmd(tc))
	}
	root.AddCommand(
		a.generateCmd(),
		a.checkCmd(),
		a.validateCmd(),
		a.dumpCmd(),
	)
	return root
}

// newLogger returns a console logger writing to stderr, at debug level when
// verbose is set.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
