package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benn-herrera/letterboxed-mp/compiler"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/compiler/load"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// ErrStale is returned by check when an output differs from its document.
var ErrStale = errors.New("generated outputs are out of date")

// compilerFor loads the configured document and returns its compiler.
func (a *app) compilerFor(cfg *Config) (*compiler.Compiler, error) {
	api, err := load.File(cfg.APIDef)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.options(), gen.WithLogger(a.log))
	c, err := compiler.New(api, opts...)
	if err != nil {
		return nil, err
	}
	return c.WithTargets(cfg.Targets...), nil
}

func (a *app) config() (*Config, error) {
	return loadConfig(a.v, a.v.GetString("config"))
}

func (a *app) generateCmd() *cobra.Command {
	var watchFlag bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate every target of the configuration file",
		Long: `Generate every target listed in the configuration file. With --watch,
the document and the configuration file are watched and the targets are
regenerated whenever either changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			run := func() error {
				c, err := a.compilerFor(cfg)
				if err != nil {
					return err
				}
				return c.Generate(cmd.Context())
			}
			if err := run(); err != nil {
				if !watchFlag {
					return err
				}
				a.log.Errorw("generate failed", "error", err)
			}
			if !watchFlag {
				return nil
			}
			a.log.Infow("watching", "api_def", cfg.APIDef, "config", cfg.path)
			return watch(cmd.Context(), a.log, []string{cfg.APIDef, cfg.path}, 200*time.Millisecond, func() error {
				reloaded, err := a.config()
				if err != nil {
					return err
				}
				cfg = reloaded
				return run()
			})
		},
	}
	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "regenerate when the document or configuration changes")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "report generated outputs that differ from the configuration's document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			c, err := a.compilerFor(cfg)
			if err != nil {
				return err
			}
			stale, err := c.Check(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range stale {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			if len(stale) > 0 {
				return fmt.Errorf("%w: %d file(s)", ErrStale, len(stale))
			}
			a.log.Infow("outputs up to date", "api_def", cfg.APIDef)
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate DOCUMENT...",
		Short: "load documents and print a summary of each",
		Long: `Load and validate each document. A failing document is reported and
the remaining documents are still validated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				api, err := load.File(path)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: FAIL\n", path)
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok %s\n", path, summary(api))
			}
			return errors.Join(errs...)
		},
	}
}

// summary returns the name, version and declaration counts of api.
func summary(api *schema.API) string {
	return fmt.Sprintf("%s v%s: %d constants, %d enums, %d aliases, %d structs, %d classes, %d functions",
		api.Name(), api.Version(), len(api.Constants()), len(api.Enums()), len(api.Aliases()),
		len(api.Structs()), len(api.Classes()), len(api.Functions()))
}

func (a *app) dumpCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	formats := make([]string, len(compiler.Formats()))
	for i, f := range compiler.Formats() {
		formats[i] = string(f)
	}
	cmd := &cobra.Command{
		Use:   "dump DOCUMENT",
		Short: "export the validated model of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compiler.ParseFormat(format)
			if err != nil {
				return err
			}
			api, err := load.File(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return compiler.Export(cmd.OutOrStdout(), api, f)
			}
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := compiler.Export(file, api, f); err != nil {
				_ = file.Close()
				return err
			}
			return file.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(compiler.FormatJSON), "snapshot encoding: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	return cmd
}
